package remez

import (
	"testing"

	"github.com/hocevar-remez/goremez/breal"
	"github.com/stretchr/testify/require"
)

func TestExtremumBracketConvergesToMaximum(t *testing.T) {
	// error(x) = 1 - (x-0.2)^2, maximized at x = 0.2, on bracket [-1, 1].
	f := func(x breal.Real) breal.Real {
		d := x.Sub(breal.NewFloat(0.2, 128))
		return breal.NewFloat(1, 128).Sub(d.Mul(d))
	}

	a := breal.NewFloat(-1, 128)
	b := breal.NewFloat(1, 128)
	c := breal.NewFloat(-0.1, 128)

	e := extremumBracket{
		A: Point{X: a, Err: f(a)},
		B: Point{X: b, Err: f(b)},
		C: Point{X: c, Err: f(c)},
	}

	for i := 0; i < 200; i++ {
		if e.B.X.Sub(e.A.X).Float64() < 1e-9 {
			break
		}
		e.step(f)
	}

	require.InDelta(t, 0.2, e.C.X.Float64(), 1e-5)
}
