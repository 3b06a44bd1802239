package breal_test

import (
	"math"
	"testing"

	"github.com/hocevar-remez/goremez/breal"
	"github.com/stretchr/testify/require"
)

const testPrec = 128

func approxEqual(t *testing.T, got breal.Real, want float64, tol float64) {
	t.Helper()
	require.InDelta(t, want, got.Float64(), tol)
}

func TestArithmetic(t *testing.T) {
	a := breal.NewFloat(3.5, testPrec)
	b := breal.NewFloat(1.25, testPrec)

	approxEqual(t, a.Add(b), 4.75, 1e-12)
	approxEqual(t, a.Sub(b), 2.25, 1e-12)
	approxEqual(t, a.Mul(b), 4.375, 1e-12)
	approxEqual(t, a.Quo(b), 2.8, 1e-12)
	approxEqual(t, a.Neg(), -3.5, 1e-12)
}

func TestElementaryFunctions(t *testing.T) {
	x := breal.NewFloat(0.37, testPrec)

	approxEqual(t, breal.Exp(x), math.Exp(0.37), 1e-12)
	approxEqual(t, breal.Log(breal.NewFloat(2.1, testPrec)), math.Log(2.1), 1e-12)
	approxEqual(t, breal.Sin(x), math.Sin(0.37), 1e-12)
	approxEqual(t, breal.Cos(x), math.Cos(0.37), 1e-12)
	approxEqual(t, breal.Tan(x), math.Tan(0.37), 1e-10)
	approxEqual(t, breal.SinH(x), math.Sinh(0.37), 1e-12)
	approxEqual(t, breal.CosH(x), math.Cosh(0.37), 1e-12)
	approxEqual(t, breal.TanH(x), math.Tanh(0.37), 1e-12)
	approxEqual(t, x.Sqrt(), math.Sqrt(0.37), 1e-12)
	approxEqual(t, x.Cbrt(), math.Cbrt(0.37), 1e-10)
	approxEqual(t, breal.Log2(breal.NewFloat(8, testPrec)), 3, 1e-10)
	approxEqual(t, breal.Log10(breal.NewFloat(1000, testPrec)), 3, 1e-10)
	approxEqual(t, breal.Exp2(breal.NewFloat(5, testPrec)), 32, 1e-9)
}

func TestInverseTrig(t *testing.T) {
	x := breal.NewFloat(0.4, testPrec)
	approxEqual(t, breal.Asin(x), math.Asin(0.4), 1e-9)
	approxEqual(t, breal.Acos(x), math.Acos(0.4), 1e-9)
	approxEqual(t, breal.Atan(x), math.Atan(0.4), 1e-9)
	approxEqual(t,
		breal.Atan2(breal.NewFloat(1, testPrec), breal.NewFloat(-1, testPrec)),
		math.Atan2(1, -1), 1e-9)
}

func TestErf(t *testing.T) {
	approxEqual(t, breal.Erf(breal.NewFloat(0, testPrec)), 0, 1e-12)
	approxEqual(t, breal.Erf(breal.NewFloat(1, testPrec)), math.Erf(1), 1e-9)
	approxEqual(t, breal.Erf(breal.NewFloat(-0.5, testPrec)), math.Erf(-0.5), 1e-9)
}

func TestModMinMax(t *testing.T) {
	a := breal.NewFloat(5.5, testPrec)
	b := breal.NewFloat(2, testPrec)
	approxEqual(t, a.Mod(b), math.Mod(5.5, 2), 1e-12)
	approxEqual(t, a.Min(b), 2, 1e-12)
	approxEqual(t, a.Max(b), 5.5, 1e-12)
}

func TestPrecisionRoundTrip(t *testing.T) {
	orig := breal.Precision()
	defer breal.SetPrecision(orig)

	breal.SetPrecision(256)
	require.Equal(t, uint(256), breal.Precision())
}
