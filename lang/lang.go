package lang

import (
	"log/slog"

	"github.com/ardnew/xeval/log"
)

// DefaultSourceLabel is the label attached to errors when the caller
// does not provide one.
const DefaultSourceLabel = "<expression>"

// Parser is the single entry point of the expression language: it owns
// an immutable environment and evaluates one expression string per
// Parse call. A Parser is safe to share across goroutines as long as
// the caller does not mutate the injected maps while a call is in
// flight; parsing itself holds no shared state.
type Parser struct {
	env    *Env
	logger log.Logger
}

// options collects the constructor configuration.
type options struct {
	variables map[string]any
	functions map[string]Function
	logger    log.Logger
}

// Option configures a Parser during construction.
type Option func(*options)

// WithVariables supplies the variable environment. Names resolve here
// before the builtin constants; names colliding with builtin constants
// make New fail with a NameError.
func WithVariables(variables map[string]any) Option {
	return func(o *options) { o.variables = variables }
}

// WithFunctions supplies the function environment. Names resolve here
// before the builtin functions.
func WithFunctions(functions map[string]Function) Option {
	return func(o *options) { o.functions = functions }
}

// WithLogger supplies a structured logger for trace-level diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New constructs a Parser. It fails with a NameError when any injected
// variable name collides with a builtin constant name.
func New(opts ...Option) (*Parser, error) {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	env, err := NewEnv(o.variables, o.functions)
	if err != nil {
		return nil, err
	}

	return &Parser{env: env, logger: o.logger}, nil
}

// Env returns the parser's resolution environment.
func (p *Parser) Env() *Env { return p.env }

// Parse evaluates one expression string and returns its value, or one
// of the error kinds described in the package documentation.
func (p *Parser) Parse(expression string) (any, error) {
	return p.ParseNamed(expression, DefaultSourceLabel)
}

// ParseNamed is Parse with an explicit source label attached to any
// resulting error.
func (p *Parser) ParseNamed(expression, label string) (any, error) {
	p.logger.Trace("parse expression",
		slog.String("label", label),
		slog.Int("length", len(expression)),
	)

	root, err := parseSource(expression)
	if err != nil {
		return nil, normalize(err, expression, label)
	}

	ctx := &evalContext{env: p.env, logger: p.logger}

	value, err := ctx.eval(root)
	if err != nil {
		return nil, normalize(err, expression, label)
	}

	p.logger.Trace("parse complete",
		slog.String("label", label),
		slog.String("type", typeName(value)),
	)

	return value, nil
}
