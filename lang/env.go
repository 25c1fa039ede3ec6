package lang

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Function is the signature for caller-injected and builtin functions.
// Positional arguments arrive in source order; keyword arguments arrive
// as a name-to-value mapping with later duplicates already collapsed.
// A returned error propagates through Parse, normalized per its kind.
type Function func(args []any, kwargs map[string]any) (any, error)

// builtinConstants are the immutable named constants available to every
// expression. Caller variables may not shadow them.
var builtinConstants = map[string]any{
	"True":  true,
	"False": false,
	"None":  nil,
}

// builtinFunctions are the whitelisted coercion functions available to
// every expression. Caller functions resolve first and may shadow them.
var builtinFunctions = map[string]Function{
	"int":   builtinInt,
	"float": builtinFloat,
	"bool":  builtinBool,
}

// Env is the name resolution context for evaluation: caller-supplied
// variable and function mappings plus the builtin constant and function
// sets. The evaluator never mutates it, so a single Env is safe to
// share across concurrent Parse calls as long as the caller does not
// mutate the backing maps mid-call.
type Env struct {
	variables map[string]any
	functions map[string]Function
}

// NewEnv validates and wraps the caller's variable and function
// mappings. Both may be nil. It fails with a NameError when any
// variable name collides with a builtin constant, because constant
// shadowing would silently change evaluation semantics.
func NewEnv(variables map[string]any, functions map[string]Function) (*Env, error) {
	var forbidden []string

	for name := range variables {
		if _, ok := builtinConstants[name]; ok {
			forbidden = append(forbidden, name)
		}
	}

	if len(forbidden) > 0 {
		slices.Sort(forbidden)

		keyword := "keyword"
		if len(forbidden) > 1 {
			keyword = "keywords"
		}

		return nil, &NameError{
			Name: strings.Join(forbidden, ", "),
			Msg: "cannot override " + keyword + " " +
				strings.Join(forbidden, ", "),
		}
	}

	return &Env{variables: variables, functions: functions}, nil
}

// LookupVariable resolves a name, checking caller variables before the
// builtin constants.
func (e *Env) LookupVariable(name string) (any, bool) {
	if v, ok := e.variables[name]; ok {
		return v, true
	}

	v, ok := builtinConstants[name]

	return v, ok
}

// LookupFunction resolves a call target, checking caller functions
// before the builtin functions.
func (e *Env) LookupFunction(name string) (Function, bool) {
	if f, ok := e.functions[name]; ok {
		return f, true
	}

	f, ok := builtinFunctions[name]

	return f, ok
}

// VariableNames returns every resolvable variable name, sorted. Used by
// the REPL completer.
func (e *Env) VariableNames() []string {
	names := slices.Collect(maps.Keys(builtinConstants))
	names = slices.AppendSeq(names, maps.Keys(e.variables))
	slices.Sort(names)

	return slices.Compact(names)
}

// FunctionNames returns every resolvable function name, sorted. Used by
// the REPL completer.
func (e *Env) FunctionNames() []string {
	names := slices.Collect(maps.Keys(builtinFunctions))
	names = slices.AppendSeq(names, maps.Keys(e.functions))
	slices.Sort(names)

	return slices.Compact(names)
}

// ---------------------------------------------------------------------------
// Builtin coercion functions
// ---------------------------------------------------------------------------

func builtinInt(args []any, kwargs map[string]any) (any, error) {
	if len(kwargs) != 0 {
		return nil, newTypeErrorf("int() takes no keyword arguments")
	}

	switch len(args) {
	case 0:
		return int64(0), nil

	case 1:
		switch v := args[0].(type) {
		case bool:
			if v {
				return int64(1), nil
			}

			return int64(0), nil

		case int64:
			return v, nil

		case float64:
			// Truncation toward zero.
			return int64(v), nil

		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, newValueErrorf(
					"invalid literal for int(): %q", v)
			}

			return n, nil

		default:
			return nil, newTypeErrorf(
				"int() argument must be a string or a number, not %q",
				typeName(args[0]))
		}

	default:
		return nil, newTypeErrorf(
			"int() takes at most 1 argument (%d given)", len(args))
	}
}

func builtinFloat(args []any, kwargs map[string]any) (any, error) {
	if len(kwargs) != 0 {
		return nil, newTypeErrorf("float() takes no keyword arguments")
	}

	switch len(args) {
	case 0:
		return float64(0), nil

	case 1:
		switch v := args[0].(type) {
		case bool:
			if v {
				return float64(1), nil
			}

			return float64(0), nil

		case int64:
			return float64(v), nil

		case float64:
			return v, nil

		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, newValueErrorf(
					"could not convert string to float: %q", v)
			}

			return f, nil

		default:
			return nil, newTypeErrorf(
				"float() argument must be a string or a number, not %q",
				typeName(args[0]))
		}

	default:
		return nil, newTypeErrorf(
			"float() takes at most 1 argument (%d given)", len(args))
	}
}

func builtinBool(args []any, kwargs map[string]any) (any, error) {
	if len(kwargs) != 0 {
		return nil, newTypeErrorf("bool() takes no keyword arguments")
	}

	switch len(args) {
	case 0:
		return false, nil

	case 1:
		return truthy(args[0]), nil

	default:
		return nil, newTypeErrorf(
			"bool() takes at most 1 argument (%d given)", len(args))
	}
}
