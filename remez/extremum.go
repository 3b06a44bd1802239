package remez

import "github.com/hocevar-remez/goremez/breal"

// extremumBracket tracks an [a, b] bracket known to contain a local
// extremum of the (relative) error function, with c the current best
// estimate strictly between a and b.
type extremumBracket struct {
	A, B, C Point
}

// step performs one successive-parabolic-interpolation refinement,
// mirroring the reference solver's worker_thread extremum branch exactly:
// fit a parabola through a, b, c, fall back to the midpoint when the fit
// escapes the bracket, and keep whichever of {a, b, c, d} brackets the
// larger error.
func (e *extremumBracket) step(evalError func(breal.Real) breal.Real) {
	a, b, c := e.A, e.B, e.C

	d1 := c.X.Sub(a.X)
	d2 := c.X.Sub(b.X)
	k1 := d1.Mul(c.Err.Sub(b.Err))
	k2 := d2.Mul(c.Err.Sub(a.Err))

	denom := k1.Sub(k2)
	var dx breal.Real
	if denom.IsZero() {
		dx = midpoint(a.X, b.X)
	} else {
		two := breal.NewFloat(2, c.X.Prec())
		dx = c.X.Sub(d1.Mul(k1).Sub(d2.Mul(k2)).Quo(denom).Quo(two))
	}

	if dx.Cmp(a.X) <= 0 || dx.Cmp(b.X) >= 0 {
		dx = midpoint(a.X, b.X)
	}

	d := Point{X: dx, Err: evalError(dx)}

	if d.Err.Cmp(c.Err) < 0 {
		if d.X.Cmp(c.X) > 0 {
			e.B = d
		} else {
			e.A = d
		}
	} else {
		if d.X.Cmp(c.X) > 0 {
			e.A = c
		} else {
			e.B = c
		}
		e.C = d
	}
}
