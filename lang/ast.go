package lang

// Node is an expression tree node. Every node records the line and
// column of its originating token for diagnostics. Nodes are immutable
// once constructed and form a tree, never shared or cyclic.
type Node interface {
	// Pos returns the node's source position (1-based line, 0-based column).
	Pos() (line, col int)

	node()
}

// span carries a node's source position.
type span struct {
	Line int
	Col  int
}

func (s span) Pos() (int, int) { return s.Line, s.Col }
func (span) node()             {}

// Literal is a number or string literal.
type Literal struct {
	span

	Value any
}

// Name is an identifier reference resolved through the environment.
type Name struct {
	span

	Ident string
}

// UnaryOp applies a unary operator to its operand.
type UnaryOp struct {
	span

	Op      UnaryOpKind
	Operand Node
}

// BinaryOp applies a binary operator to two operands.
type BinaryOp struct {
	span

	Op    BinOpKind
	Left  Node
	Right Node
}

// BoolOp is an and/or chain of two or more operands, evaluated left to
// right with short-circuit.
type BoolOp struct {
	span

	Op     BoolOpKind
	Values []Node
}

// Compare is a comparison chain: Left followed by pairwise operators
// and comparators. Ops and Comparators always have equal length.
type Compare struct {
	span

	Left        Node
	Ops         []CmpOpKind
	Comparators []Node
}

// Conditional is an inline if/else expression. Only the branch selected
// by Test is ever evaluated.
type Conditional struct {
	span

	Test   Node
	Body   Node
	OrElse Node
}

// Keyword is a single name=value argument in a call.
type Keyword struct {
	Name  string
	Value Node
}

// Call invokes a named function with positional and keyword arguments.
// Later duplicate keyword names overwrite earlier ones at evaluation.
type Call struct {
	span

	Func     string
	Args     []Node
	Keywords []Keyword
}

// BoolOpKind enumerates boolean chain operators.
type BoolOpKind int

const (
	OpAnd BoolOpKind = iota
	OpOr
)

// String returns the source spelling of the operator.
func (op BoolOpKind) String() string {
	switch op {
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return "?"
	}
}

// BinOpKind enumerates binary operators.
type BinOpKind int

const (
	OpAdd BinOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpLShift
	OpRShift
	OpBitOr
	OpBitXor
	OpBitAnd
	OpFloorDiv
)

// String returns the source spelling of the operator.
func (op BinOpKind) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	case OpLShift:
		return "<<"
	case OpRShift:
		return ">>"
	case OpBitOr:
		return "|"
	case OpBitXor:
		return "^"
	case OpBitAnd:
		return "&"
	case OpFloorDiv:
		return "//"
	default:
		return "?"
	}
}

// UnaryOpKind enumerates unary operators.
type UnaryOpKind int

const (
	OpInvert UnaryOpKind = iota
	OpNot
	OpUAdd
	OpUSub
)

// String returns the source spelling of the operator.
func (op UnaryOpKind) String() string {
	switch op {
	case OpInvert:
		return "~"
	case OpNot:
		return "not"
	case OpUAdd:
		return "+"
	case OpUSub:
		return "-"
	default:
		return "?"
	}
}

// CmpOpKind enumerates comparison operators.
type CmpOpKind int

const (
	OpEq CmpOpKind = iota
	OpNotEq
	OpLt
	OpLtE
	OpGt
	OpGtE
	OpIs
	OpIsNot
	OpIn
	OpNotIn
)

// String returns the source spelling of the operator.
func (op CmpOpKind) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpNotEq:
		return "!="
	case OpLt:
		return "<"
	case OpLtE:
		return "<="
	case OpGt:
		return ">"
	case OpGtE:
		return ">="
	case OpIs:
		return "is"
	case OpIsNot:
		return "is not"
	case OpIn:
		return "in"
	case OpNotIn:
		return "not in"
	default:
		return "?"
	}
}
