// Package poly implements the two polynomial bases the Remez engine works
// in — Monomial and Chebyshev — plus the evaluation and change-of-basis
// machinery, adapted from a complex-valued polynomial representation down
// to plain arbitrary-precision reals.
package poly

import (
	"fmt"

	"github.com/hocevar-remez/goremez/breal"
)

// Basis selects the coefficient basis a Polynomial is expressed in.
type Basis int

const (
	Monomial Basis = iota
	Chebyshev
)

// Interval is the domain [A, B] a Chebyshev-basis polynomial is defined
// over; it is unused (zero value) for the Monomial basis.
type Interval struct {
	A, B breal.Real
}

// Polynomial is a dense coefficient vector in one of the two bases.
type Polynomial struct {
	Basis    Basis
	Interval Interval
	Coeffs   []breal.Real
}

// NewMonomial builds a Monomial-basis polynomial from low-to-high degree
// coefficients.
func NewMonomial(coeffs []breal.Real) *Polynomial {
	return &Polynomial{Basis: Monomial, Coeffs: coeffs}
}

// NewChebyshev builds a Chebyshev-basis polynomial over [a, b] from
// T0..Tn coefficients.
func NewChebyshev(coeffs []breal.Real, a, b breal.Real) *Polynomial {
	return &Polynomial{Basis: Chebyshev, Interval: Interval{A: a, B: b}, Coeffs: coeffs}
}

// Degree returns the polynomial's degree.
func (p *Polynomial) Degree() int { return len(p.Coeffs) - 1 }

// ChangeOfBasis returns the (scalar, constant) pair mapping x in
// [Interval.A, Interval.B] to u in [-1, 1]: u = scalar*x + constant.
// For Monomial it is the identity (scalar=1, constant=0).
func (p *Polynomial) ChangeOfBasis() (scalar, constant breal.Real) {
	switch p.Basis {
	case Monomial:
		return breal.NewFloat(1, p.Coeffs[0].Prec()), breal.NewFloat(0, p.Coeffs[0].Prec())
	case Chebyshev:
		width := p.Interval.B.Sub(p.Interval.A)
		scalar = breal.NewFloat(2, width.Prec()).Quo(width)
		constant = p.Interval.B.Add(p.Interval.A).Neg().Quo(width)
		return
	default:
		panic(fmt.Sprintf("poly: invalid basis %v", p.Basis))
	}
}

// Eval evaluates the polynomial at x via Horner's method (Monomial) or the
// three-term Chebyshev recurrence (Chebyshev), after mapping x into
// [-1, 1] with ChangeOfBasis.
func (p *Polynomial) Eval(x breal.Real) breal.Real {
	switch p.Basis {
	case Monomial:
		return monomialEval(x, p.Coeffs)
	case Chebyshev:
		scalar, constant := p.ChangeOfBasis()
		u := x.Mul(scalar).Add(constant)
		return chebyshevEval(u, p.Coeffs)
	default:
		panic(fmt.Sprintf("poly: invalid basis %v", p.Basis))
	}
}

// monomialEval is Horner's method: p(x) = c0 + x*(c1 + x*(c2 + ...)).
func monomialEval(x breal.Real, coeffs []breal.Real) breal.Real {
	n := len(coeffs)
	y := coeffs[n-1].Clone()
	for i := n - 2; i >= 0; i-- {
		y = y.Mul(x).Add(coeffs[i])
	}
	return y
}

// chebyshevEval evaluates sum(coeffs[i] * T_i(u)) via the three-term
// recurrence T0=1, T1=u, T_{n+1} = 2*u*T_n - T_{n-1}.
func chebyshevEval(u breal.Real, coeffs []breal.Real) breal.Real {
	prec := u.Prec()
	n := len(coeffs)

	tPrev := breal.NewFloat(1, prec)
	t := u.Clone()
	two := breal.NewFloat(2, prec)

	y := coeffs[0].Clone()
	if n > 1 {
		y = y.Add(t.Mul(coeffs[1]))
	}
	for i := 2; i < n; i++ {
		next := two.Mul(u).Mul(t).Sub(tPrev)
		y = y.Add(next.Mul(coeffs[i]))
		tPrev, t = t, next
	}
	return y
}

// ChebyshevBasis fills dst[0:deg] with T0(u)..T_{deg-1}(u) evaluated via
// the three-term recurrence, where u is the image of x under the basis'
// change of basis. Used to build the Remez matrix's Chebyshev columns.
func ChebyshevBasis(x breal.Real, inter Interval, deg int, dst []breal.Real) {
	prec := x.Prec()
	p := &Polynomial{Basis: Chebyshev, Interval: inter, Coeffs: make([]breal.Real, deg)}
	scalar, constant := p.ChangeOfBasis()
	u := x.Mul(scalar).Add(constant)

	if deg == 0 {
		return
	}
	dst[0] = breal.NewFloat(1, prec)
	if deg == 1 {
		return
	}
	dst[1] = u.Clone()
	two := breal.NewFloat(2, prec)
	for i := 2; i < deg; i++ {
		dst[i] = two.Mul(u).Mul(dst[i-1]).Sub(dst[i-2])
	}
}

// MonomialBasis fills dst[0:deg] with 1, x, x^2, ..., x^(deg-1).
func MonomialBasis(x breal.Real, deg int, dst []breal.Real) {
	if deg == 0 {
		return
	}
	dst[0] = breal.NewFloat(1, x.Prec())
	for i := 1; i < deg; i++ {
		dst[i] = dst[i-1].Mul(x)
	}
}
