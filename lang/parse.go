package lang

// Recursive-descent parser for the whitelisted expression grammar. One
// production method per precedence level, lowest binding first. The
// parser maintains a two-token window: kwarg detection (name '=') and
// the two-word comparison operators ("is not", "not in") need one token
// of lookahead.

type parser struct {
	lex   *lexer
	tok   Token // current token
	ahead Token // lookahead token
}

func newParser(input string) (*parser, error) {
	p := &parser{lex: newLexer(input)}

	// Prime the two-token window.
	if err := p.advance(); err != nil {
		return nil, err
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	return p, nil
}

// advance shifts the token window forward by one.
func (p *parser) advance() error {
	p.tok = p.ahead

	tok, err := p.lex.next()
	if err != nil {
		return err
	}

	p.ahead = tok

	return nil
}

// parseSource parses input as exactly one expression and returns the
// root node.
func parseSource(input string) (Node, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}

	// Leading separators (blank lines) are not expressions.
	for p.tok.Kind == TokenSep {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if p.tok.Kind == TokenEOF {
		return nil, newSyntaxErrorf(1, 0,
			"exactly one expression must be provided")
	}

	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	// Assignment is a statement, not an expression; name it explicitly
	// since "x = 1" is the most common way to fall outside the grammar.
	if p.tok.Kind == TokenOp && p.tok.Text == "=" {
		return nil, newSyntaxErrorf(p.tok.Line, p.tok.Col,
			"assignment is not allowed")
	}

	// Anything left after the expression other than separators and EOF
	// is a second expression (or garbage partway through this one).
	sawSep := false

	for p.tok.Kind == TokenSep {
		sawSep = true

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if p.tok.Kind != TokenEOF {
		if sawSep {
			return nil, newSyntaxErrorf(p.tok.Line, p.tok.Col,
				"exactly one expression must be provided")
		}

		return nil, p.unexpected()
	}

	return root, nil
}

// unexpected builds the catch-all rejection for a token the grammar has
// no use for at the current position.
func (p *parser) unexpected() error {
	tok := p.tok

	switch tok.Kind {
	case TokenEOF:
		return newSyntaxErrorf(tok.Line, tok.Col, "unexpected end of input")

	case TokenReserved:
		return newSyntaxErrorf(tok.Line, tok.Col,
			"%s is not allowed", reserved[tok.Text])

	case TokenOp:
		switch tok.Text {
		case ".":
			return newSyntaxErrorf(tok.Line, tok.Col,
				"attribute access is not allowed")
		case "[":
			return newSyntaxErrorf(tok.Line, tok.Col,
				"list display or subscript is not allowed")
		case "{":
			return newSyntaxErrorf(tok.Line, tok.Col,
				"dict display is not allowed")
		case "=":
			return newSyntaxErrorf(tok.Line, tok.Col,
				"assignment is not allowed")
		case ":":
			return newSyntaxErrorf(tok.Line, tok.Col,
				"unexpected %q", tok.Text)
		}

		return newSyntaxErrorf(tok.Line, tok.Col,
			"unexpected operator %q", tok.Text)

	default:
		return newSyntaxErrorf(tok.Line, tok.Col,
			"unexpected %s %q", tok.Kind, tok.Text)
	}
}

// at reports whether the current token is the given operator symbol.
func (p *parser) at(op string) bool {
	return p.tok.Kind == TokenOp && p.tok.Text == op
}

// atKeyword reports whether the current token is the given operator
// keyword.
func (p *parser) atKeyword(kw string) bool {
	return p.tok.Kind == TokenKeyword && p.tok.Text == kw
}

// parseExpr parses a full expression: a conditional or anything below
// it. The conditional is right-associative through its orelse branch.
func (p *parser) parseExpr() (Node, error) {
	body, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if !p.atKeyword("if") {
		return body, nil
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	test, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if !p.atKeyword("else") {
		return nil, newSyntaxErrorf(p.tok.Line, p.tok.Col,
			`expected "else" in conditional expression`)
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	orElse, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	line, col := body.Pos()

	return &Conditional{
		span:   span{Line: line, Col: col},
		Test:   test,
		Body:   body,
		OrElse: orElse,
	}, nil
}

// parseOr parses an "or" chain. Consecutive operands collapse into a
// single BoolOp node, mirroring how chains evaluate left to right.
func (p *parser) parseOr() (Node, error) {
	return p.parseBoolOp(OpOr, "or", p.parseAnd)
}

// parseAnd parses an "and" chain.
func (p *parser) parseAnd() (Node, error) {
	return p.parseBoolOp(OpAnd, "and", p.parseNot)
}

func (p *parser) parseBoolOp(
	op BoolOpKind,
	kw string,
	operand func() (Node, error),
) (Node, error) {
	first, err := operand()
	if err != nil {
		return nil, err
	}

	if !p.atKeyword(kw) {
		return first, nil
	}

	values := []Node{first}

	for p.atKeyword(kw) {
		if err := p.advance(); err != nil {
			return nil, err
		}

		next, err := operand()
		if err != nil {
			return nil, err
		}

		values = append(values, next)
	}

	line, col := first.Pos()

	return &BoolOp{
		span:   span{Line: line, Col: col},
		Op:     op,
		Values: values,
	}, nil
}

// parseNot parses a "not" chain, which binds tighter than and/or but
// looser than comparisons.
func (p *parser) parseNot() (Node, error) {
	if !p.atKeyword("not") {
		return p.parseComparison()
	}

	tok := p.tok

	if err := p.advance(); err != nil {
		return nil, err
	}

	operand, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	return &UnaryOp{
		span:    span{Line: tok.Line, Col: tok.Col},
		Op:      OpNot,
		Operand: operand,
	}, nil
}

// compareOp recognizes a comparison operator at the current position
// and consumes it, returning ok=false without consuming otherwise.
func (p *parser) compareOp() (CmpOpKind, bool, error) {
	var op CmpOpKind

	switch {
	case p.at("=="):
		op = OpEq
	case p.at("!="):
		op = OpNotEq
	case p.at("<"):
		op = OpLt
	case p.at("<="):
		op = OpLtE
	case p.at(">"):
		op = OpGt
	case p.at(">="):
		op = OpGtE
	case p.atKeyword("in"):
		op = OpIn

	case p.atKeyword("is"):
		if err := p.advance(); err != nil {
			return 0, false, err
		}

		if p.atKeyword("not") {
			if err := p.advance(); err != nil {
				return 0, false, err
			}

			return OpIsNot, true, nil
		}

		return OpIs, true, nil

	case p.atKeyword("not") &&
		p.ahead.Kind == TokenKeyword && p.ahead.Text == "in":
		if err := p.advance(); err != nil {
			return 0, false, err
		}

		if err := p.advance(); err != nil {
			return 0, false, err
		}

		return OpNotIn, true, nil

	default:
		return 0, false, nil
	}

	if err := p.advance(); err != nil {
		return 0, false, err
	}

	return op, true, nil
}

// parseComparison parses a comparison chain: a chain of N comparators
// yields N-1 pairwise operator applications.
func (p *parser) parseComparison() (Node, error) {
	left, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}

	var (
		ops         []CmpOpKind
		comparators []Node
	)

	for {
		op, ok, err := p.compareOp()
		if err != nil {
			return nil, err
		}

		if !ok {
			break
		}

		right, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}

		ops = append(ops, op)
		comparators = append(comparators, right)
	}

	if len(ops) == 0 {
		return left, nil
	}

	line, col := left.Pos()

	return &Compare{
		span:        span{Line: line, Col: col},
		Left:        left,
		Ops:         ops,
		Comparators: comparators,
	}, nil
}

// binaryChain parses a left-associative chain of the given operator
// symbols over the next-tighter production.
func (p *parser) binaryChain(
	symbols map[string]BinOpKind,
	operand func() (Node, error),
) (Node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for {
		if p.tok.Kind != TokenOp {
			return left, nil
		}

		op, ok := symbols[p.tok.Text]
		if !ok {
			return left, nil
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := operand()
		if err != nil {
			return nil, err
		}

		line, col := left.Pos()

		left = &BinaryOp{
			span:  span{Line: line, Col: col},
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

func (p *parser) parseBitOr() (Node, error) {
	return p.binaryChain(map[string]BinOpKind{"|": OpBitOr}, p.parseBitXor)
}

func (p *parser) parseBitXor() (Node, error) {
	return p.binaryChain(map[string]BinOpKind{"^": OpBitXor}, p.parseBitAnd)
}

func (p *parser) parseBitAnd() (Node, error) {
	return p.binaryChain(map[string]BinOpKind{"&": OpBitAnd}, p.parseShift)
}

func (p *parser) parseShift() (Node, error) {
	return p.binaryChain(
		map[string]BinOpKind{"<<": OpLShift, ">>": OpRShift},
		p.parseAdditive,
	)
}

func (p *parser) parseAdditive() (Node, error) {
	return p.binaryChain(
		map[string]BinOpKind{"+": OpAdd, "-": OpSub},
		p.parseTerm,
	)
}

func (p *parser) parseTerm() (Node, error) {
	return p.binaryChain(
		map[string]BinOpKind{
			"*": OpMul, "/": OpDiv, "%": OpMod, "//": OpFloorDiv,
		},
		p.parseFactor,
	)
}

// parseFactor parses unary +, -, and ~, which bind tighter than the
// multiplicative operators but looser than power on its left operand.
func (p *parser) parseFactor() (Node, error) {
	var op UnaryOpKind

	switch {
	case p.at("+"):
		op = OpUAdd
	case p.at("-"):
		op = OpUSub
	case p.at("~"):
		op = OpInvert
	default:
		return p.parsePower()
	}

	tok := p.tok

	if err := p.advance(); err != nil {
		return nil, err
	}

	operand, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	return &UnaryOp{
		span:    span{Line: tok.Line, Col: tok.Col},
		Op:      op,
		Operand: operand,
	}, nil
}

// parsePower parses the right-associative ** operator: the exponent
// recurses through parseFactor so that 2**-1 and 2**3**2 both group
// per convention.
func (p *parser) parsePower() (Node, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	if !p.at("**") {
		return base, nil
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	exp, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	line, col := base.Pos()

	return &BinaryOp{
		span:  span{Line: line, Col: col},
		Op:    OpPow,
		Left:  base,
		Right: exp,
	}, nil
}

// parseAtom parses literals, names, calls, and parenthesized
// expressions, then rejects the postfix forms the grammar excludes.
func (p *parser) parseAtom() (Node, error) {
	tok := p.tok

	var atom Node

	switch tok.Kind {
	case TokenInt, TokenFloat, TokenString:
		if err := p.advance(); err != nil {
			return nil, err
		}

		atom = &Literal{
			span:  span{Line: tok.Line, Col: tok.Col},
			Value: tok.Value,
		}

	case TokenIdent:
		if p.ahead.Kind == TokenLParen {
			call, err := p.parseCall()
			if err != nil {
				return nil, err
			}

			atom = call

			break
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		atom = &Name{
			span:  span{Line: tok.Line, Col: tok.Col},
			Ident: tok.Text,
		}

	case TokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if p.tok.Kind != TokenRParen {
			return nil, newSyntaxErrorf(p.tok.Line, p.tok.Col,
				`expected ")"`)
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		atom = inner

	default:
		return nil, p.unexpected()
	}

	return p.checkPostfix(atom)
}

// checkPostfix rejects the postfix constructs the grammar excludes:
// attribute access, subscripts, and calls on anything but a bare name.
func (p *parser) checkPostfix(atom Node) (Node, error) {
	switch {
	case p.at("."):
		return nil, newSyntaxErrorf(p.tok.Line, p.tok.Col,
			"attribute access is not allowed")

	case p.at("["):
		return nil, newSyntaxErrorf(p.tok.Line, p.tok.Col,
			"subscript is not allowed")

	case p.tok.Kind == TokenLParen:
		return nil, newSyntaxErrorf(p.tok.Line, p.tok.Col,
			"only named functions can be called")
	}

	return atom, nil
}

// parseCall parses identifier '(' arguments ')'. Star arguments are a
// grammar-level rejection; positional arguments may not follow keyword
// arguments.
func (p *parser) parseCall() (Node, error) {
	name := p.tok

	if err := p.advance(); err != nil { // identifier
		return nil, err
	}

	if err := p.advance(); err != nil { // "("
		return nil, err
	}

	var (
		args     []Node
		kwargs   []Keyword
		sawKwarg bool
	)

	for p.tok.Kind != TokenRParen {
		if p.tok.Kind == TokenEOF {
			return nil, newSyntaxErrorf(p.tok.Line, p.tok.Col,
				`expected ")"`)
		}

		if p.at("*") || p.at("**") {
			return nil, newSyntaxErrorf(p.tok.Line, p.tok.Col,
				"star arguments are not supported")
		}

		if p.tok.Kind == TokenIdent &&
			p.ahead.Kind == TokenOp && p.ahead.Text == "=" {
			kwName := p.tok.Text

			if err := p.advance(); err != nil { // name
				return nil, err
			}

			if err := p.advance(); err != nil { // "="
				return nil, err
			}

			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			kwargs = append(kwargs, Keyword{Name: kwName, Value: value})
			sawKwarg = true
		} else {
			if sawKwarg {
				return nil, newSyntaxErrorf(p.tok.Line, p.tok.Col,
					"positional argument follows keyword argument")
			}

			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)
		}

		if p.tok.Kind == TokenComma {
			if err := p.advance(); err != nil {
				return nil, err
			}

			continue
		}

		if p.tok.Kind != TokenRParen {
			return nil, newSyntaxErrorf(p.tok.Line, p.tok.Col,
				`expected "," or ")"`)
		}
	}

	if err := p.advance(); err != nil { // ")"
		return nil, err
	}

	return &Call{
		span:     span{Line: name.Line, Col: name.Col},
		Func:     name.Text,
		Args:     args,
		Keywords: kwargs,
	}, nil
}
