package uast

// BinaryOperator identifies an infix operator.
type BinaryOperator int

// Binary operators.
const (
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEqual
	OpNotEqual
	OpGreater
	OpLess
	OpGreaterEqual
	OpLessEqual
	OpLogicalAnd
	OpLogicalOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShiftLeft
	OpShiftRight
)

//nolint:gochecknoglobals // lookup tables
var binaryText = [...]string{
	OpAdd:          "+",
	OpSub:          "-",
	OpMul:          "*",
	OpDiv:          "/",
	OpMod:          "%",
	OpEqual:        "==",
	OpNotEqual:     "!=",
	OpGreater:      ">",
	OpLess:         "<",
	OpGreaterEqual: ">=",
	OpLessEqual:    "<=",
	OpLogicalAnd:   "&&",
	OpLogicalOr:    "||",
	OpBitAnd:       "&",
	OpBitOr:        "|",
	OpBitXor:       "^",
	OpShiftLeft:    "<<",
	OpShiftRight:   ">>",
}

// String returns the operator's source text.
func (op BinaryOperator) String() string {
	if op < 0 || int(op) >= len(binaryText) {
		return "?"
	}
	return binaryText[op]
}

// ParseBinaryOperator maps source text to a binary operator.
func ParseBinaryOperator(text string) (BinaryOperator, bool) {
	for i, t := range binaryText {
		if t == text {
			return BinaryOperator(i), true
		}
	}
	return 0, false
}

// UnaryOperator identifies a prefix or postfix operator.
type UnaryOperator int

// Unary operators.
const (
	OpNegate UnaryOperator = iota
	OpPlus
	OpNot
	OpComplement
	OpPreIncrement
	OpPreDecrement
	OpPostIncrement
	OpPostDecrement
)

//nolint:gochecknoglobals // lookup tables
var unaryText = [...]string{
	OpNegate:        "-",
	OpPlus:          "+",
	OpNot:           "!",
	OpComplement:    "~",
	OpPreIncrement:  "++",
	OpPreDecrement:  "--",
	OpPostIncrement: "++",
	OpPostDecrement: "--",
}

// String returns the operator's source text.
func (op UnaryOperator) String() string {
	if op < 0 || int(op) >= len(unaryText) {
		return "?"
	}
	return unaryText[op]
}

// IsPostfix reports whether the operator follows its operand.
func (op UnaryOperator) IsPostfix() bool {
	return op == OpPostIncrement || op == OpPostDecrement
}

// ParsePrefixOperator maps source text to a prefix unary operator.
func ParsePrefixOperator(text string) (UnaryOperator, bool) {
	for i, t := range unaryText[:OpPostIncrement] {
		if t == text {
			return UnaryOperator(i), true
		}
	}
	return 0, false
}

// AssignmentOperator identifies a simple or compound assignment.
type AssignmentOperator int

// Assignment operators.
const (
	OpAssign AssignmentOperator = iota
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpAndAssign
	OpOrAssign
	OpXorAssign
	OpShiftLeftAssign
	OpShiftRightAssign
	OpCoalesceAssign
)

//nolint:gochecknoglobals // lookup tables
var assignText = [...]string{
	OpAssign:           "=",
	OpAddAssign:        "+=",
	OpSubAssign:        "-=",
	OpMulAssign:        "*=",
	OpDivAssign:        "/=",
	OpModAssign:        "%=",
	OpAndAssign:        "&=",
	OpOrAssign:         "|=",
	OpXorAssign:        "^=",
	OpShiftLeftAssign:  "<<=",
	OpShiftRightAssign: ">>=",
	OpCoalesceAssign:   "??=",
}

// String returns the operator's source text.
func (op AssignmentOperator) String() string {
	if op < 0 || int(op) >= len(assignText) {
		return "?"
	}
	return assignText[op]
}

// ParseAssignmentOperator maps source text to an assignment operator.
func ParseAssignmentOperator(text string) (AssignmentOperator, bool) {
	for i, t := range assignText {
		if t == text {
			return AssignmentOperator(i), true
		}
	}
	return 0, false
}
