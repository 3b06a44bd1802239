// Package matrix implements the dense square-matrix inversion the Remez
// engine uses to solve for polynomial coefficients and the error weight at
// each iteration.
//
// The inversion algorithm is deliberately the naive row-swap-by-addition
// method rather than magnitude-based partial pivoting: if the expected
// diagonal coefficient is zero, one of the later rows with a non-zero
// entry in that column is added to it (never swapped), and elimination
// proceeds without ever comparing magnitudes. This mirrors the reference
// solver's linear_system<T>::inverse() exactly, which intentionally
// forgoes pivoting because the matrices it inverts are well-conditioned
// Chebyshev/monomial Vandermonde-like systems.
package matrix

import (
	"errors"
	"fmt"

	"github.com/hocevar-remez/goremez/breal"
)

// ErrSingular is returned when no row addition produces a non-zero
// diagonal entry for some column.
var ErrSingular = errors.New("matrix: singular system")

// Matrix is a dense n x n matrix of arbitrary-precision reals.
type Matrix [][]breal.Real

// New allocates an n x n zero matrix at prec bits of precision.
func New(n int, prec uint) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]breal.Real, n)
		for j := range m[i] {
			m[i][j] = breal.NewFloat(0, prec)
		}
	}
	return m
}

// Identity returns the n x n identity matrix at prec bits of precision.
func Identity(n int, prec uint) Matrix {
	m := New(n, prec)
	for i := 0; i < n; i++ {
		m[i][i] = breal.NewFloat(1, prec)
	}
	return m
}

func (m Matrix) n() int { return len(m) }

func (m Matrix) clone() Matrix {
	out := make(Matrix, len(m))
	for i := range m {
		out[i] = make([]breal.Real, len(m[i]))
		for j := range m[i] {
			out[i][j] = m[i][j].Clone()
		}
	}
	return out
}

// Inverse returns the inverse of m, computed in place on copies of m and
// the identity via row-addition pivot repair, scale-to-unit-diagonal, and
// column elimination — no magnitude-based pivoting.
func Inverse(m Matrix) (Matrix, error) {
	n := m.n()
	if n == 0 {
		return Matrix{}, nil
	}
	prec := m[0][0].Prec()

	a := m.clone()
	b := Identity(n, prec)

	for i := 0; i < n; i++ {
		if a[i][i].IsZero() {
			found := false
			for j := i + 1; j < n; j++ {
				if a[j][i].IsZero() {
					continue
				}
				for k := 0; k < n; k++ {
					a[i][k] = a[i][k].Add(a[j][k])
					b[i][k] = b[i][k].Add(b[j][k])
				}
				found = true
				break
			}
			if !found {
				return nil, fmt.Errorf("%w: column %d has no non-zero row to add", ErrSingular, i)
			}
		}

		x := breal.NewFloat(1, prec).Quo(a[i][i])
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			mul := x.Mul(a[j][i])
			for k := 0; k < n; k++ {
				a[j][k] = a[j][k].Sub(mul.Mul(a[i][k]))
				b[j][k] = b[j][k].Sub(mul.Mul(b[i][k]))
			}
		}

		for k := 0; k < n; k++ {
			a[i][k] = a[i][k].Mul(x)
			b[i][k] = b[i][k].Mul(x)
		}
	}

	return b, nil
}

// Mul multiplies an n x n matrix by a length-n vector.
func Mul(m Matrix, v []breal.Real) []breal.Real {
	n := m.n()
	out := make([]breal.Real, n)
	for i := 0; i < n; i++ {
		sum := breal.NewFloat(0, v[0].Prec())
		for k := 0; k < n; k++ {
			sum = sum.Add(m[i][k].Mul(v[k]))
		}
		out[i] = sum
	}
	return out
}
