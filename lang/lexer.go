package lang

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// lexer scans expression source into position-tagged tokens.
type lexer struct {
	input string
	pos   int
	line  int
	col   int
	depth int // open parenthesis depth; newlines inside parens are whitespace
}

func newLexer(input string) *lexer {
	return &lexer{input: input, line: 1, col: 0}
}

// eof reports whether the scanner has consumed all input.
func (l *lexer) eof() bool { return l.pos >= len(l.input) }

// peek returns the rune at the current position without consuming it.
func (l *lexer) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])

	return r
}

// peekAt returns the byte at offset from the current position, or 0.
func (l *lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}

	return l.input[l.pos+offset]
}

// advance consumes one rune and updates the line/column counters.
func (l *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size

	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}

	return r
}

// skipSpace consumes whitespace and comments. Newlines are consumed
// only inside parentheses; at depth zero they are expression
// separators and left for next to tokenize.
func (l *lexer) skipSpace() {
	for !l.eof() {
		switch r := l.peek(); {
		case r == '\n':
			if l.depth == 0 {
				return
			}

			l.advance()

		case unicode.IsSpace(r):
			l.advance()

		case r == '#':
			for !l.eof() && l.peek() != '\n' {
				l.advance()
			}

		default:
			return
		}
	}
}

// next scans and returns the next token.
func (l *lexer) next() (Token, error) {
	l.skipSpace()

	line, col := l.line, l.col

	if l.eof() {
		return Token{Kind: TokenEOF, Line: line, Col: col}, nil
	}

	r := l.peek()

	switch {
	case r == '\n' || r == ';':
		l.advance()

		return Token{Kind: TokenSep, Text: string(r), Line: line, Col: col}, nil

	case r == '(':
		l.advance()
		l.depth++

		return Token{Kind: TokenLParen, Text: "(", Line: line, Col: col}, nil

	case r == ')':
		l.advance()

		if l.depth > 0 {
			l.depth--
		}

		return Token{Kind: TokenRParen, Text: ")", Line: line, Col: col}, nil

	case r == ',':
		l.advance()

		return Token{Kind: TokenComma, Text: ",", Line: line, Col: col}, nil

	case r == '\'' || r == '"':
		return l.scanString()

	case unicode.IsDigit(r):
		return l.scanNumber()

	case r == '.' && unicode.IsDigit(rune(l.peekAt(1))):
		return l.scanNumber()

	case isIdentStart(r):
		return l.scanIdent()

	default:
		return l.scanOperator()
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scanIdent scans an identifier, operator keyword, or reserved keyword.
func (l *lexer) scanIdent() (Token, error) {
	line, col := l.line, l.col
	start := l.pos

	for !l.eof() && isIdentPart(l.peek()) {
		l.advance()
	}

	text := l.input[start:l.pos]

	kind := TokenIdent

	switch {
	case keywords[text]:
		kind = TokenKeyword

	case reserved[text] != "":
		kind = TokenReserved
	}

	return Token{Kind: kind, Text: text, Line: line, Col: col}, nil
}

// scanNumber scans an integer or float literal. Integers accept the
// 0b, 0o, and 0x base prefixes; floats accept fraction and exponent
// parts.
func (l *lexer) scanNumber() (Token, error) {
	line, col := l.line, l.col
	start := l.pos

	// Base-prefixed integers have no fraction or exponent.
	if l.peek() == '0' {
		switch prefix := l.peekAt(1); prefix {
		case 'b', 'B', 'o', 'O', 'x', 'X':
			l.advance()
			l.advance()

			for !l.eof() && (isIdentPart(l.peek())) {
				l.advance()
			}

			text := l.input[start:l.pos]

			value, err := strconv.ParseInt(text, 0, 64)
			if err != nil {
				return Token{}, newSyntaxErrorf(line, col,
					"invalid integer literal %q", text)
			}

			return Token{
				Kind: TokenInt, Text: text, Value: value, Line: line, Col: col,
			}, nil
		}
	}

	isFloat := false

	for !l.eof() {
		switch r := l.peek(); {
		case unicode.IsDigit(r):
			l.advance()

		case r == '.' && !isFloat:
			isFloat = true

			l.advance()

		case (r == 'e' || r == 'E') &&
			(unicode.IsDigit(rune(l.peekAt(1))) ||
				((l.peekAt(1) == '+' || l.peekAt(1) == '-') &&
					unicode.IsDigit(rune(l.peekAt(2))))):
			isFloat = true

			l.advance() // e
			l.advance() // sign or first digit

		default:
			goto done
		}
	}

done:
	text := l.input[start:l.pos]

	if isFloat {
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, newSyntaxErrorf(line, col,
				"invalid float literal %q", text)
		}

		return Token{
			Kind: TokenFloat, Text: text, Value: value, Line: line, Col: col,
		}, nil
	}

	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, newSyntaxErrorf(line, col,
			"invalid integer literal %q", text)
	}

	return Token{
		Kind: TokenInt, Text: text, Value: value, Line: line, Col: col,
	}, nil
}

// scanString scans a single- or double-quoted string literal.
func (l *lexer) scanString() (Token, error) {
	line, col := l.line, l.col
	start := l.pos
	quote := l.advance()

	var sb strings.Builder

	for {
		if l.eof() || l.peek() == '\n' {
			return Token{}, newSyntaxErrorf(line, col,
				"unterminated string literal")
		}

		r := l.advance()

		if r == quote {
			break
		}

		if r != '\\' {
			sb.WriteRune(r)

			continue
		}

		if l.eof() {
			return Token{}, newSyntaxErrorf(line, col,
				"unterminated string literal")
		}

		switch esc := l.advance(); esc {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\', '\'', '"':
			sb.WriteRune(esc)
		case '0':
			sb.WriteByte(0)
		default:
			// Unrecognized escapes keep the backslash verbatim.
			sb.WriteByte('\\')
			sb.WriteRune(esc)
		}
	}

	text := l.input[start:l.pos]

	return Token{
		Kind: TokenString, Text: text, Value: sb.String(), Line: line, Col: col,
	}, nil
}

// multi-character operators, longest first so maximal munch applies.
var operators = []string{
	"**", "//", "<<", ">>", "<=", ">=", "==", "!=",
	"+", "-", "*", "/", "%", "~", "|", "^", "&", "<", ">", "=",
	".", "[", "]", "{", "}", ":", "@",
}

// scanOperator scans an operator or punctuation symbol. Symbols that
// the grammar cannot use anywhere (like "." or "[") are still
// tokenized here so the parser can reject them with a message naming
// the construct they would introduce.
func (l *lexer) scanOperator() (Token, error) {
	line, col := l.line, l.col

	for _, op := range operators {
		if strings.HasPrefix(l.input[l.pos:], op) {
			for range op {
				l.advance()
			}

			return Token{Kind: TokenOp, Text: op, Line: line, Col: col}, nil
		}
	}

	return Token{}, newSyntaxErrorf(line, col,
		"unexpected character %q", l.peek())
}
