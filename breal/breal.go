// Package breal implements the arbitrary-precision real arithmetic used
// throughout the solver: everything is a thin wrapper around math/big.Float,
// with the elementary function set the expression evaluator and Remez engine
// require built on top of github.com/ALTree/bigfloat plus a handful of
// iterative algorithms for the functions bigfloat does not provide.
package breal

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// defaultPrec is the working precision used when a Real is constructed
// through a path that does not carry its own precision (e.g. small integer
// literals). It is fixed process-wide by SetPrecision, mirroring the
// solver's "process-wide global state, fixed once at Init time" model.
var defaultPrec uint = 128

// SetPrecision fixes the module-wide working precision, in bits. It must be
// called before constructing any Real that relies on the default precision,
// and is not safe to call concurrently with in-flight computation.
func SetPrecision(bits uint) {
	if bits < 32 {
		bits = 32
	}
	defaultPrec = bits
}

// Precision returns the current module-wide working precision, in bits.
func Precision() uint { return defaultPrec }

// Real is an arbitrary-precision real number.
type Real struct {
	v big.Float
}

// New returns the zero Real at the working precision.
func New() Real {
	var r Real
	r.v.SetPrec(defaultPrec)
	return r
}

// NewFloat builds a Real from x at prec bits of precision. Valid types for x
// are int, int64, uint, uint64, float64, string, *big.Int and *big.Float.
func NewFloat(x interface{}, prec uint) Real {
	var r Real
	r.v.SetPrec(prec)

	switch x := x.(type) {
	case nil:
	case int:
		r.v.SetInt64(int64(x))
	case int64:
		r.v.SetInt64(x)
	case uint:
		r.v.SetUint64(uint64(x))
	case uint64:
		r.v.SetUint64(x)
	case float64:
		r.v.SetFloat64(x)
	case string:
		if _, ok := r.v.SetString(x); !ok {
			panic(fmt.Sprintf("breal: invalid numeric literal %q", x))
		}
	case *big.Int:
		r.v.SetInt(x)
	case *big.Float:
		r.v.Set(x)
	case Real:
		r.v.Set(&x.v)
	default:
		panic(fmt.Sprintf("breal: invalid type %T for NewFloat", x))
	}
	return r
}

// Const is a convenience constructor at the current working precision.
func Const(x interface{}) Real { return NewFloat(x, defaultPrec) }

// Prec returns the receiver's precision in bits.
func (r Real) Prec() uint { return r.v.Prec() }

// SetPrec returns a copy of r rounded to prec bits.
func (r Real) SetPrec(prec uint) Real {
	var out Real
	out.v.SetPrec(prec).Set(&r.v)
	return out
}

// Clone returns an independent copy of r.
func (r Real) Clone() Real {
	var out Real
	out.v.Set(&r.v)
	return out
}

// Float64 returns the nearest float64 to r.
func (r Real) Float64() float64 {
	f, _ := r.v.Float64()
	return f
}

// String renders r in decimal, at a digit count proportional to its precision.
func (r Real) String() string {
	digits := int(float64(r.v.Prec())*0.30103) + 2
	return r.v.Text('g', digits)
}

// BigFloat exposes the underlying *big.Float, for callers that need direct
// access. Mutating the result mutates r.
func (r *Real) BigFloat() *big.Float { return &r.v }

func result(prec uint) Real {
	var r Real
	r.v.SetPrec(prec)
	return r
}

// --- comparisons ---

// Cmp compares r and o as math/big.Float.Cmp does.
func (r Real) Cmp(o Real) int { return r.v.Cmp(&o.v) }

// IsZero reports whether r is exactly zero.
func (r Real) IsZero() bool { return r.v.Sign() == 0 }

// Sign returns -1, 0 or +1 matching the sign of r.
func (r Real) Sign() int { return r.v.Sign() }

// --- arithmetic ---

func (r Real) prec(o Real) uint {
	if r.v.Prec() > o.v.Prec() {
		return r.v.Prec()
	}
	return o.v.Prec()
}

func (r Real) Add(o Real) Real {
	out := result(r.prec(o))
	out.v.Add(&r.v, &o.v)
	return out
}

func (r Real) Sub(o Real) Real {
	out := result(r.prec(o))
	out.v.Sub(&r.v, &o.v)
	return out
}

func (r Real) Mul(o Real) Real {
	out := result(r.prec(o))
	out.v.Mul(&r.v, &o.v)
	return out
}

func (r Real) Quo(o Real) Real {
	out := result(r.prec(o))
	out.v.Quo(&r.v, &o.v)
	return out
}

func (r Real) Neg() Real {
	out := result(r.v.Prec())
	out.v.Neg(&r.v)
	return out
}

func (r Real) Abs() Real {
	out := result(r.v.Prec())
	out.v.Abs(&r.v)
	return out
}

// Min and Max mirror the fmin/fmax opcodes: NaN-free, plain comparison.
func (r Real) Min(o Real) Real {
	if r.v.Cmp(&o.v) <= 0 {
		return r
	}
	return o
}

func (r Real) Max(o Real) Real {
	if r.v.Cmp(&o.v) >= 0 {
		return r
	}
	return o
}

// Mod implements the fmod opcode: r - trunc(r/o)*o.
func (r Real) Mod(o Real) Real {
	q := r.Quo(o)
	i, _ := q.v.Int(nil)
	trunc := result(q.v.Prec())
	trunc.v.SetInt(i)
	return r.Sub(trunc.Mul(o))
}

// Sqrt returns sqrt(r). r must be non-negative.
func (r Real) Sqrt() Real {
	out := result(r.v.Prec())
	out.v.Sqrt(&r.v)
	return out
}

// Cbrt returns the cube root of r via sign(r) * exp(log(|r|)/3), which
// bigfloat does not expose directly.
func (r Real) Cbrt() Real {
	if r.IsZero() {
		return r.Clone()
	}
	three := NewFloat(3, r.v.Prec())
	mag := Exp(Log(r.Abs()).Quo(three))
	if r.Sign() < 0 {
		return mag.Neg()
	}
	return mag
}

// Exp returns e^x.
func Exp(x Real) Real {
	out := result(x.v.Prec())
	out.v.Set(bigfloat.Exp(&x.v))
	return out
}

// Exp2 returns 2^x.
func Exp2(x Real) Real {
	return Pow(NewFloat(2, x.v.Prec()), x)
}

// Log returns ln(x). x must be positive.
func Log(x Real) Real {
	out := result(x.v.Prec())
	out.v.Set(bigfloat.Log(&x.v))
	return out
}

// Log2 returns log base 2 of x, via ln(x)/ln(2) computed at x's own
// precision so the result is correct at any working precision rather than
// relying on a fixed-length hardcoded constant.
func Log2(x Real) Real {
	ln2 := Log(NewFloat(2, x.v.Prec()))
	return Log(x).Quo(ln2)
}

// Log10 returns log base 10 of x, via ln(x)/ln(10).
func Log10(x Real) Real {
	ln10 := Log(NewFloat(10, x.v.Prec()))
	return Log(x).Quo(ln10)
}

// Pow returns x^y. A negative base is accepted with an integer exponent
// (the result is |x|^y, negated for odd y); a negative base with a
// non-integer exponent panics, as bigfloat.Pow does.
func Pow(x, y Real) Real {
	prec := x.prec(y)
	out := result(prec)
	if x.Sign() < 0 && y.v.IsInt() {
		out.v.Set(bigfloat.Pow(new(big.Float).Abs(&x.v), &y.v))
		if i, _ := y.v.Int(nil); i.Bit(0) == 1 {
			out.v.Neg(&out.v)
		}
		return out
	}
	out.v.Set(bigfloat.Pow(&x.v, &y.v))
	return out
}

// Cos is an iterative double-angle algorithm: error ~4^-k after
// k = prec/2 iterations (Johansson, "An elementary algorithm to evaluate
// trigonometric functions to high precision", 2018).
func Cos(x Real) Real {
	prec := x.v.Prec()
	tmp := new(big.Float).SetPrec(prec)

	t := new(big.Float).SetPrec(prec).SetFloat64(0.5)
	half := new(big.Float).SetPrec(prec).Copy(t)

	for i := uint(1); i < (prec>>1)-1; i++ {
		t.Mul(t, half)
	}

	s := new(big.Float).SetPrec(prec).Mul(&x.v, t)
	s.Mul(s, &x.v)
	s.Mul(s, t)

	four := new(big.Float).SetPrec(prec).SetFloat64(4.0)

	for i := uint(1); i < prec>>1; i++ {
		tmp.Sub(four, s)
		s.Mul(s, tmp)
	}

	out := result(prec)
	out.v.Quo(s, new(big.Float).SetPrec(prec).SetFloat64(2.0))
	out.v.Sub(new(big.Float).SetPrec(prec).SetFloat64(1.0), &out.v)
	return out
}

// Pi returns pi at prec bits.
func Pi(prec uint) Real {
	const piDigits = "3.1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679821480865132823066470938446095505822317253594081284811174502841027019385211055596446229489549303819644288109756659334461284756482337867831652712019091456485669234603486104543266482133936072602491412737245870066063155881748815209209628292540917153643678925903600113305305488204665213841469519415116094330572703657595919530921861173819326117931051185480744623799627495673518857527248912279381830119491298336733624406566430860213949463952247371907021798609437027705392171762931767523846748184676694051320005681271452635608277857713427577896091736371787214684409012249534301465495853710507922796892589235420199561121290219608640344181598136297747713099605187072113499999983729780499510597317328160963185950244594553469083026425223082533446850352619311881710100031378387528865875332083814206171776691473035982534904287554687311595628638823537875937519577818577805321712268066130019278766111959092164201989"
	out := result(prec)
	out.v.SetString(piDigits)
	return out
}

// Sin returns sin(x) via cos(x - pi/2).
func Sin(x Real) Real {
	prec := x.v.Prec()
	halfPi := Pi(prec).Quo(NewFloat(2, prec))
	return Cos(x.Sub(halfPi))
}

// Tan returns sin(x)/cos(x).
func Tan(x Real) Real {
	return Sin(x).Quo(Cos(x))
}

// SinH returns the hyperbolic sine of x.
func SinH(x Real) Real {
	prec := x.v.Prec()
	neg2x := x.Add(x).Neg()
	a := Exp(neg2x).Neg().Add(NewFloat(1, prec))
	denom := Exp(x.Neg())
	denom = denom.Add(denom)
	return a.Quo(denom)
}

// CosH returns the hyperbolic cosine of x.
func CosH(x Real) Real {
	ex := Exp(x)
	enx := Exp(x.Neg())
	return ex.Add(enx).Quo(NewFloat(2, x.v.Prec()))
}

// TanH returns the hyperbolic tangent of x.
func TanH(x Real) Real {
	prec := x.v.Prec()
	e2x := Exp(x.Add(x))
	num := e2x.Sub(NewFloat(1, prec))
	den := e2x.Add(NewFloat(1, prec))
	return num.Quo(den)
}

// newtonInverse refines y0 (a float64 seed) toward the solution of
// f(y) = target via Newton's method using df, doubling the working
// precision each pass (starting at 64 bits) until a pass has run at or
// above the target's precision. Used for the inverse
// trigonometric functions, which neither math/big nor bigfloat expose.
func newtonInverse(target Real, y0 float64, f, df func(Real) Real) Real {
	prec := target.v.Prec()
	y := NewFloat(y0, 64)
	for p := uint(64); p <= prec+16; p *= 2 {
		y = y.SetPrec(p)
		t := target.SetPrec(p)
		for i := 0; i < 8; i++ {
			delta := f(y).Sub(t).Quo(df(y))
			y = y.Sub(delta)
		}
		if p >= prec {
			break
		}
	}
	return y.SetPrec(prec)
}

// Asin returns arcsin(x), x in [-1, 1].
func Asin(x Real) Real {
	seed, _ := x.v.Float64()
	return newtonInverse(x, math.Asin(seed), Sin, Cos)
}

// Acos returns arccos(x) via pi/2 - asin(x).
func Acos(x Real) Real {
	prec := x.v.Prec()
	return Pi(prec).Quo(NewFloat(2, prec)).Sub(Asin(x))
}

// Atan returns arctan(x).
func Atan(x Real) Real {
	seed, _ := x.v.Float64()
	dtan := func(y Real) Real {
		c := Cos(y)
		return NewFloat(1, y.v.Prec()).Quo(c.Mul(c))
	}
	return newtonInverse(x, math.Atan(seed), Tan, dtan)
}

// Atan2 returns the angle of (x, y) using the standard quadrant rules,
// falling back to atan(y/x) plus/minus pi where x is negative or zero.
func Atan2(y, x Real) Real {
	prec := x.prec(y)
	pi := Pi(prec)
	zero := NewFloat(0, prec)
	switch {
	case x.Sign() > 0:
		return Atan(y.Quo(x))
	case x.Sign() < 0 && y.Sign() >= 0:
		return Atan(y.Quo(x)).Add(pi)
	case x.Sign() < 0 && y.Sign() < 0:
		return Atan(y.Quo(x)).Sub(pi)
	case x.IsZero() && y.Sign() > 0:
		return pi.Quo(NewFloat(2, prec))
	case x.IsZero() && y.Sign() < 0:
		return pi.Quo(NewFloat(2, prec)).Neg()
	default:
		return zero
	}
}

// Erf returns the error function of x via its Maclaurin series
// erf(x) = 2/sqrt(pi) * sum_{n=0}^inf (-1)^n x^(2n+1) / (n! (2n+1)),
// summed until the term underflows the working precision. No pack
// dependency exposes erf, so this is computed directly.
func Erf(x Real) Real {
	prec := x.v.Prec()
	terms := int(prec)/2 + 16

	sum := New()
	sum = sum.SetPrec(prec)
	// c tracks x^(2n+1)/n!, updated by c *= x^2/(n+1) each step.
	c := x.Clone()
	x2 := x.Mul(x)

	for n := 0; n < terms; n++ {
		contribution := c.Quo(NewFloat(2*n+1, prec))
		if n%2 == 0 {
			sum = sum.Add(contribution)
		} else {
			sum = sum.Sub(contribution)
		}
		if contribution.Abs().Sign() == 0 {
			break
		}
		c = c.Mul(x2).Quo(NewFloat(n+1, prec))
	}

	two := NewFloat(2, prec)
	sqrtPi := Pi(prec).Sqrt()
	return two.Quo(sqrtPi).Mul(sum)
}
