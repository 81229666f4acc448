package ast

// Op is the operator of unary, update, binary, logical and assignment expressions.
type Op uint8

const (
	OpNone Op = iota

	// binary
	OpEq
	OpNotEq
	OpStrictEq
	OpStrictNotEq
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpShl
	OpShr
	OpUShr
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpExp
	OpBitOr
	OpBitXor
	OpBitAnd
	OpIn
	OpInstanceof

	// logical
	OpAnd
	OpOr
	OpCoalesce

	// unary
	OpNeg
	OpPlus
	OpNot
	OpBitNot
	OpTypeof
	OpVoid
	OpDelete

	// update
	OpInc
	OpDec

	// assignment
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpRemAssign
	OpExpAssign
	OpShlAssign
	OpShrAssign
	OpUShrAssign
	OpBitOrAssign
	OpBitXorAssign
	OpBitAndAssign
	OpAndAssign
	OpOrAssign
	OpCoalesceAssign

	opCount
)

var opText = [opCount]string{
	OpEq: "==", OpNotEq: "!=", OpStrictEq: "===", OpStrictNotEq: "!==",
	OpLess: "<", OpLessEq: "<=", OpGreater: ">", OpGreaterEq: ">=",
	OpShl: "<<", OpShr: ">>", OpUShr: ">>>",
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpRem: "%", OpExp: "**",
	OpBitOr: "|", OpBitXor: "^", OpBitAnd: "&", OpIn: "in", OpInstanceof: "instanceof",
	OpAnd: "&&", OpOr: "||", OpCoalesce: "??",
	OpNeg: "-", OpPlus: "+", OpNot: "!", OpBitNot: "~", OpTypeof: "typeof", OpVoid: "void", OpDelete: "delete",
	OpInc: "++", OpDec: "--",
	OpAssign: "=", OpAddAssign: "+=", OpSubAssign: "-=", OpMulAssign: "*=", OpDivAssign: "/=",
	OpRemAssign: "%=", OpExpAssign: "**=", OpShlAssign: "<<=", OpShrAssign: ">>=", OpUShrAssign: ">>>=",
	OpBitOrAssign: "|=", OpBitXorAssign: "^=", OpBitAndAssign: "&=",
	OpAndAssign: "&&=", OpOrAssign: "||=", OpCoalesceAssign: "??=",
}

func (o Op) String() string {
	if o < opCount {
		return opText[o]
	}
	return "?"
}

// IsEquality covers ==, !=, === and !==.
func (o Op) IsEquality() bool {
	return o >= OpEq && o <= OpStrictNotEq
}

// OpClass selects which operator family a token is looked up in; "-" is
// both a binary and a unary operator.
type OpClass uint8

const (
	OpClassBinary OpClass = iota
	OpClassLogical
	OpClassUnary
	OpClassUpdate
	OpClassAssign
)

var opRanges = map[OpClass][2]Op{
	OpClassBinary:  {OpEq, OpInstanceof},
	OpClassLogical: {OpAnd, OpCoalesce},
	OpClassUnary:   {OpNeg, OpDelete},
	OpClassUpdate:  {OpInc, OpDec},
	OpClassAssign:  {OpAssign, OpCoalesceAssign},
}

// LookupOp finds the operator spelled text within class.
func LookupOp(class OpClass, text string) (Op, bool) {
	r, ok := opRanges[class]
	if !ok {
		return OpNone, false
	}
	for o := r[0]; o <= r[1]; o++ {
		if opText[o] == text {
			return o, true
		}
	}
	return OpNone, false
}
