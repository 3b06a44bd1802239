package expr

import "github.com/hocevar-remez/goremez/breal"

// Kind tags the variant of an Op, per the tagged-sum opcode model.
type Kind uint8

const (
	OpVar Kind = iota
	OpConst
	OpUnary
	OpBinary
)

// UnaryOp enumerates the single-operand opcodes.
type UnaryOp uint8

const (
	Neg UnaryOp = iota
	Pos
	Abs
	Sqrt
	Cbrt
	ExpOp
	Exp2Op
	ErfOp
	LogOp
	Log2Op
	Log10Op
	SinOp
	CosOp
	TanOp
	AsinOp
	AcosOp
	AtanOp
	SinhOp
	CoshOp
	TanhOp
	CastFloat
	CastDouble
	CastLongDouble
)

// BinaryOp enumerates the two-operand opcodes.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	FmodOp
	Atan2Op
	PowOp
	MinOp
	MaxOp
)

// Op is one instruction of a compiled Program.
type Op struct {
	Kind   Kind
	Unary  UnaryOp
	Binary BinaryOp
	Const  int // valid when Kind == OpConst: index into Program.Constants
}

// Program is a compiled expression: a postfix opcode sequence plus the
// constant pool referenced by OpConst operations.
type Program struct {
	Ops       []Op
	Constants []breal.Real

	constant bool // true if the program never reads the variable x
	usesY    bool // true if the program referenced the reserved identifier y
}

// IsConstant reports whether the program's value does not depend on x.
// remez.NewSolver uses it to detect a constant weight and reject one that
// is identically zero.
func (p *Program) IsConstant() bool { return p.constant }

// UsesY reports whether the source text referenced the reserved (and
// currently unused) second variable y.
func (p *Program) UsesY() bool { return p.usesY }
