package remez

import "github.com/hocevar-remez/goremez/breal"

// RootFinder selects the update rule used to refine a zero bracket.
// Bisect mirrors the reference solver exactly; the other four are the
// dampened regula-falsi family that trades its occasional slow
// convergence for the superlinear convergence secant methods usually
// provide, guarding against the side-effect of the secant formula
// stalling on one side of the bracket.
type RootFinder int

const (
	Bisect RootFinder = iota
	RegulaFalsi
	Illinois
	Pegasus
	Ford
)

// Point is a single (x, err) sample of the error function, where err is
// estimate(x) - func(x) for a zero bracket or eval_error(x) for an
// extremum bracket.
type Point struct {
	X, Err breal.Real
}

// zeroBracket tracks an [a, b] bracket straddling a zero of the error
// function, plus the damping bookkeeping the non-bisection variants need.
type zeroBracket struct {
	A, B Point

	// lastC is the most recent trial point produced by step, which the
	// driver inspects to decide whether this bracket has converged.
	lastC Point

	// stale is -1 when the last step replaced A (B was retained), +1 when
	// it replaced B (A was retained), and 0 before the first step. When a
	// step replaces the same side as the previous one, the damped variants
	// scale the retained side's Err to avoid the secant method stalling
	// against it.
	stale int
}

func sameSign(a, b breal.Real) bool {
	return a.Sign() != 0 && b.Sign() != 0 && a.Sign() == b.Sign()
}

func secant(a, b Point) breal.Real {
	return a.X.Mul(b.Err).Sub(b.X.Mul(a.Err)).Quo(b.Err.Sub(a.Err))
}

func midpoint(a, b breal.Real) breal.Real {
	return a.Add(b).Quo(breal.NewFloat(2, a.Prec()))
}

// step performs a single refinement of the bracket and returns the new
// trial point c. a and b are updated in place to reflect the new bracket.
func (z *zeroBracket) step(rf RootFinder, evalErr func(breal.Real) breal.Real) Point {
	var cx breal.Real
	switch rf {
	case Bisect:
		cx = midpoint(z.A.X, z.B.X)
	default:
		cx = secant(z.A, z.B)
		if cx.Cmp(z.A.X) <= 0 || cx.Cmp(z.B.X) >= 0 {
			// Secant point fell outside the bracket (can happen near an
			// inflection point); fall back to the midpoint.
			cx = midpoint(z.A.X, z.B.X)
		}
	}

	c := Point{X: cx, Err: evalErr(cx)}

	if sameSign(z.A.Err, c.Err) {
		if rf != Bisect && z.stale == -1 {
			z.B.Err = dampen(rf, z.B.Err, z.A.Err, c.Err)
		}
		z.A = c
		z.stale = -1
	} else {
		if rf != Bisect && z.stale == 1 {
			z.A.Err = dampen(rf, z.A.Err, z.B.Err, c.Err)
		}
		z.B = c
		z.stale = 1
	}

	z.lastC = c
	return c
}

// dampen scales the stale endpoint's function value stale, given the
// endpoint being replaced (active) and the newest trial value c, per the
// chosen variant's update rule.
func dampen(rf RootFinder, stale, active, c breal.Real) breal.Real {
	switch rf {
	case Illinois:
		return stale.Mul(breal.NewFloat(0.5, stale.Prec()))
	case Pegasus:
		denom := active.Add(c)
		if denom.IsZero() {
			return stale.Mul(breal.NewFloat(0.5, stale.Prec()))
		}
		return stale.Mul(active.Quo(denom))
	case Ford:
		if active.IsZero() || stale.IsZero() {
			return stale.Mul(breal.NewFloat(0.5, stale.Prec()))
		}
		m := breal.NewFloat(1, stale.Prec()).Sub(c.Quo(active)).Sub(c.Quo(stale))
		if m.Sign() <= 0 {
			m = breal.NewFloat(0.5, stale.Prec())
		}
		return stale.Mul(m)
	default:
		return stale
	}
}
