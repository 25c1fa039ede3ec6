package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/xeval/lang"
	"github.com/ardnew/xeval/log"
)

// Eval evaluates one or more expressions and prints their results.
//
// Expressions given as arguments are evaluated in order. With no
// arguments, expressions are read from stdin one per line.
type Eval struct {
	Exprs []string `arg:"" help:"Expression(s) to evaluate" name:"expr" optional:""`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context, parser *lang.Parser) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if len(e.Exprs) > 0 {
		return e.evalArgs(ctx, parser)
	}

	return e.evalLines(ctx, parser, os.Stdin)
}

// evalArgs evaluates each command-line argument as one expression.
func (e *Eval) evalArgs(ctx context.Context, parser *lang.Parser) error {
	failed := 0

	for _, expr := range e.Exprs {
		if !evalPrint(ctx, parser, expr, lang.DefaultSourceLabel) {
			failed++
		}
	}

	if failed > 0 {
		return ErrEvalFailed.With(slog.Int("failed", failed))
	}

	return nil
}

// evalLines evaluates each line read from r as one expression.
// Blank lines are skipped.
func (e *Eval) evalLines(
	ctx context.Context,
	parser *lang.Parser,
	r io.Reader,
) error {
	failed := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if isBlank(line) {
			continue
		}

		if !evalPrint(ctx, parser, line, "<stdin>") {
			failed++
		}
	}

	if err := scanner.Err(); err != nil {
		return ErrReadInput.Wrap(err)
	}

	if failed > 0 {
		return ErrEvalFailed.With(slog.Int("failed", failed))
	}

	return nil
}

// evalPrint evaluates a single expression, printing its formatted result
// to stdout or its error to stderr. It reports whether evaluation
// succeeded.
func evalPrint(
	ctx context.Context,
	parser *lang.Parser,
	expr, label string,
) bool {
	result, err := parser.ParseNamed(expr, label)
	if err != nil {
		log.TraceContext(ctx, "eval failed",
			slog.String("expr", expr),
			slog.Any("error", err),
		)
		fmt.Fprintln(os.Stderr, err)

		return false
	}

	fmt.Println(lang.FormatValue(result))

	return true
}

func isBlank(line string) bool {
	for _, r := range line {
		if r != ' ' && r != '\t' && r != '\r' {
			return false
		}
	}

	return true
}
