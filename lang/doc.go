// Package lang implements a sandboxed expression language: a closed
// grammar of arithmetic, boolean, comparison, conditional, and
// whitelisted function-call expressions, parsed into a tree and
// evaluated against caller-supplied variable and function environments.
//
// The grammar is a security boundary. Anything not explicitly part of
// it — statements, assignment, attribute or subscript access, aggregate
// displays, lambdas, star arguments — is rejected with a position-tagged
// [SyntaxError], never silently ignored.
//
// # Grammar
//
// Lowest to highest precedence:
//
//	Expr        → BoolOr ['if' BoolOr 'else' Expr]
//	BoolOr      → BoolAnd ('or' BoolAnd)*
//	BoolAnd     → NotTest ('and' NotTest)*
//	NotTest     → 'not' NotTest | Comparison
//	Comparison  → BitOr (CompOp BitOr)*
//	CompOp      → '==' '!=' '<' '<=' '>' '>=' 'is' ['not'] ['not'] 'in'
//	BitOr       → BitXor ('|' BitXor)*
//	BitXor      → BitAnd ('^' BitAnd)*
//	BitAnd      → Shift ('&' Shift)*
//	Shift       → Additive (('<<' | '>>') Additive)*
//	Additive    → Term (('+' | '-') Term)*
//	Term        → Factor (('*' | '/' | '%' | '//') Factor)*
//	Factor      → ('+' | '-' | '~') Factor | Power
//	Power       → Atom ['**' Factor]
//	Atom        → literal | identifier | '(' Expr ')' | Call
//	Call        → identifier '(' (Expr | identifier '=' Expr)* ')'
//
// Exactly one expression must be provided per input.
//
// # Usage
//
//	p, err := lang.New(
//		lang.WithVariables(map[string]any{"data": []any{int64(1), int64(2)}}),
//		lang.WithFunctions(map[string]lang.Function{"x2": double}),
//	)
//	if err != nil { ... }
//
//	value, err := p.Parse("x2(21) if 1 in data else 0")
//
// Variables resolve before the builtin constants True, False, and None;
// functions resolve before the builtin coercions int, float, and bool.
// Caller variable names may not shadow the builtin constants; [New]
// fails with a [NameError] when they do.
//
// # Errors
//
// Parse surfaces two primary kinds, both position-tagged: [SyntaxError]
// for grammar violations and [NameError] for undefined names. Failures
// raised by invoked callees (for example a [TypeError] from a builtin)
// are normalized into a [SyntaxError] whose message is prefixed with
// the original failure's kind name, so every failure renders with the
// same (label, line, column, source) shape.
package lang
