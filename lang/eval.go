package lang

import (
	"log/slog"

	"github.com/ardnew/xeval/log"
)

// evalContext holds the state for one tree walk: the resolution
// environment and a logger. It never mutates the environment.
type evalContext struct {
	env    *Env
	logger log.Logger
}

// eval reduces a node to a value. Dispatch is by node kind; reaching
// the default arm means the parser and evaluator disagree on the
// grammar, which must surface as a failure, never a value.
func (ctx *evalContext) eval(node Node) (any, error) {
	switch n := node.(type) {
	case *Literal:
		return n.Value, nil

	case *Name:
		return ctx.evalName(n)

	case *UnaryOp:
		return ctx.evalUnary(n)

	case *BinaryOp:
		return ctx.evalBinary(n)

	case *BoolOp:
		return ctx.evalBoolOp(n)

	case *Compare:
		return ctx.evalCompare(n)

	case *Conditional:
		return ctx.evalConditional(n)

	case *Call:
		return ctx.evalCall(n)

	default:
		line, col := 1, 0
		if node != nil {
			line, col = node.Pos()
		}

		return nil, newSyntaxErrorf(line, col, "node %T not allowed", node)
	}
}

// evalName resolves an identifier through the environment.
func (ctx *evalContext) evalName(n *Name) (any, error) {
	if v, ok := ctx.env.LookupVariable(n.Ident); ok {
		return v, nil
	}

	return nil, &NameError{
		Name: n.Ident,
		Line: n.Line,
		Col:  n.Col,
		Msg:  "name " + quoted(n.Ident) + " is not defined",
	}
}

func quoted(s string) string { return `"` + s + `"` }

func (ctx *evalContext) evalUnary(n *UnaryOp) (any, error) {
	operand, err := ctx.eval(n.Operand)
	if err != nil {
		return nil, err
	}

	return applyUnary(n.Op, operand)
}

// evalBinary evaluates left then right, then applies the operator.
func (ctx *evalContext) evalBinary(n *BinaryOp) (any, error) {
	left, err := ctx.eval(n.Left)
	if err != nil {
		return nil, err
	}

	right, err := ctx.eval(n.Right)
	if err != nil {
		return nil, err
	}

	return applyBinary(n.Op, left, right)
}

// evalBoolOp reduces an and/or chain strictly left to right with
// short-circuit: "and" returns the first falsy operand value, "or" the
// first truthy one, and either returns the last operand value
// otherwise. Truthiness requires evaluating each operand, so operands
// past the deciding one are never evaluated.
func (ctx *evalContext) evalBoolOp(n *BoolOp) (any, error) {
	result, err := ctx.eval(n.Values[0])
	if err != nil {
		return nil, err
	}

	for _, value := range n.Values[1:] {
		switch n.Op {
		case OpAnd:
			if !truthy(result) {
				return result, nil
			}

		case OpOr:
			if truthy(result) {
				return result, nil
			}
		}

		result, err = ctx.eval(value)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// evalCompare reduces a comparison chain by running-value replacement:
// the left value seeds the result, and each comparator is evaluated
// and compared against the result so far, which is then replaced by
// that comparison's outcome. Every comparator is evaluated regardless
// of earlier results; there is no short-circuit.
func (ctx *evalContext) evalCompare(n *Compare) (any, error) {
	result, err := ctx.eval(n.Left)
	if err != nil {
		return nil, err
	}

	for i, op := range n.Ops {
		comparator, err := ctx.eval(n.Comparators[i])
		if err != nil {
			return nil, err
		}

		result, err = applyCompare(op, result, comparator)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// evalConditional evaluates the test and then exactly one branch; the
// untaken branch is never evaluated.
func (ctx *evalContext) evalConditional(n *Conditional) (any, error) {
	test, err := ctx.eval(n.Test)
	if err != nil {
		return nil, err
	}

	if truthy(test) {
		return ctx.eval(n.Body)
	}

	return ctx.eval(n.OrElse)
}

// evalCall resolves the callee, evaluates positional arguments in
// order and keyword arguments in order (later duplicate names
// overwrite earlier ones), and invokes the callee. Callee failures
// propagate for normalization at the Parse boundary.
func (ctx *evalContext) evalCall(n *Call) (any, error) {
	fn, ok := ctx.env.LookupFunction(n.Func)
	if !ok {
		return nil, &NameError{
			Name: n.Func,
			Line: n.Line,
			Col:  n.Col,
			Msg:  "function " + quoted(n.Func) + " is not defined",
		}
	}

	args := make([]any, len(n.Args))

	for i, arg := range n.Args {
		value, err := ctx.eval(arg)
		if err != nil {
			return nil, err
		}

		args[i] = value
	}

	var kwargs map[string]any

	if len(n.Keywords) > 0 {
		kwargs = make(map[string]any, len(n.Keywords))

		for _, kw := range n.Keywords {
			value, err := ctx.eval(kw.Value)
			if err != nil {
				return nil, err
			}

			kwargs[kw.Name] = value
		}
	}

	ctx.logger.Trace("invoke function",
		slog.String("name", n.Func),
		slog.Int("args", len(args)),
		slog.Int("kwargs", len(kwargs)),
	)

	return fn(args, kwargs)
}
