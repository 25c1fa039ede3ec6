package lang

import (
	"maps"
	"slices"
)

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	// TokenEOF marks the end of input.
	TokenEOF TokenKind = iota

	// TokenIdent is an identifier or name reference.
	TokenIdent

	// TokenKeyword is an operator keyword (and, or, not, if, else, is, in).
	TokenKeyword

	// TokenReserved is a statement keyword that can never appear in an
	// expression (for, while, import, lambda, ...). The lexer classifies
	// these so the parser can name the disallowed construct.
	TokenReserved

	// TokenInt is an integer literal in decimal, binary, octal, or hex form.
	TokenInt

	// TokenFloat is a floating-point literal.
	TokenFloat

	// TokenString is a quoted string literal.
	TokenString

	// TokenOp is an operator or punctuation symbol.
	TokenOp

	// TokenLParen, TokenRParen, and TokenComma delimit calls and groups.
	TokenLParen
	TokenRParen
	TokenComma

	// TokenSep separates top-level expressions: a semicolon, or a newline
	// outside parentheses.
	TokenSep
)

// String returns a human-readable name for the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenKeyword:
		return "keyword"
	case TokenReserved:
		return "reserved keyword"
	case TokenInt:
		return "integer literal"
	case TokenFloat:
		return "float literal"
	case TokenString:
		return "string literal"
	case TokenOp:
		return "operator"
	case TokenLParen:
		return `"("`
	case TokenRParen:
		return `")"`
	case TokenComma:
		return `","`
	case TokenSep:
		return "expression separator"
	default:
		return "unknown token"
	}
}

// Token is a lexical unit with its source span. Line and Col are
// 1-based and 0-based respectively, matching the positions reported in
// diagnostics.
type Token struct {
	Kind  TokenKind
	Text  string // source spelling
	Value any    // decoded literal value for Int/Float/String tokens
	Line  int
	Col   int
}

// Keywords returns the operator keywords of the expression grammar,
// sorted. Used by the REPL completer.
func Keywords() []string {
	return slices.Sorted(maps.Keys(keywords))
}

// operator keywords participate in the expression grammar.
var keywords = map[string]bool{
	"and":  true,
	"or":   true,
	"not":  true,
	"if":   true,
	"else": true,
	"is":   true,
	"in":   true,
}

// reserved maps statement keywords to the construct they introduce.
// The parser uses the construct name in its rejection message.
var reserved = map[string]string{
	"assert":   "assert statement",
	"async":    "async construct",
	"await":    "await expression",
	"break":    "break statement",
	"class":    "class definition",
	"continue": "continue statement",
	"def":      "function definition",
	"del":      "del statement",
	"elif":     "elif clause",
	"except":   "except clause",
	"finally":  "finally clause",
	"for":      "for loop",
	"from":     "import",
	"global":   "global statement",
	"import":   "import",
	"lambda":   "lambda expression",
	"nonlocal": "nonlocal statement",
	"pass":     "pass statement",
	"raise":    "raise statement",
	"return":   "return statement",
	"try":      "try statement",
	"while":    "while loop",
	"with":     "with statement",
	"yield":    "yield expression",
}
