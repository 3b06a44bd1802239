package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/hocevar-remez/goremez/breal"
	"github.com/hocevar-remez/goremez/matrix"
	"github.com/stretchr/testify/require"
)

const testPrec = 128

func vals(prec uint, xs ...float64) []breal.Real {
	out := make([]breal.Real, len(xs))
	for i, x := range xs {
		out[i] = breal.NewFloat(x, prec)
	}
	return out
}

func TestInverseIdentity(t *testing.T) {
	m := matrix.Matrix{
		vals(testPrec, 2, 1, 1),
		vals(testPrec, 1, 3, 2),
		vals(testPrec, 1, 0, 0),
	}

	inv, err := matrix.Inverse(m)
	require.NoError(t, err)

	// m * inv should be the identity, within tolerance.
	for i := 0; i < 3; i++ {
		row := matrix.Mul(m, columnOf(inv, i))
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.InDelta(t, want, row[j].Float64(), 1e-20)
		}
	}
}

func columnOf(m matrix.Matrix, col int) []breal.Real {
	out := make([]breal.Real, len(m))
	for i := range m {
		out[i] = m[i][col]
	}
	return out
}

func TestInverseRequiresRowAddition(t *testing.T) {
	// a[0][0] is zero; the algorithm must repair it by adding row 1,
	// never by swapping rows.
	m := matrix.Matrix{
		vals(testPrec, 0, 1),
		vals(testPrec, 1, 1),
	}
	inv, err := matrix.Inverse(m)
	require.NoError(t, err)
	require.NotNil(t, inv)
}

// For non-singular matrices up to size 12, M*inverse(M) must be the
// identity within a tolerance tied to the working precision, per the
// solver's testable properties.
func TestInverseIdentityUpToSizeTwelve(t *testing.T) {
	const prec = 256
	tol := 1.0
	for i := 0; i < prec/4; i++ {
		tol /= 10
	}

	rng := rand.New(rand.NewSource(42))
	for n := 1; n <= 12; n++ {
		m := diagonallyDominant(rng, n, prec)

		inv, err := matrix.Inverse(m)
		require.NoErrorf(t, err, "size %d", n)

		for i := 0; i < n; i++ {
			row := matrix.Mul(m, columnOf(inv, i))
			for j := 0; j < n; j++ {
				want := 0.0
				if i == j {
					want = 1.0
				}
				require.InDeltaf(t, want, row[j].Float64(), tol, "size %d, entry (%d,%d)", n, i, j)
			}
		}
	}
}

// diagonallyDominant builds a random n x n matrix with a strong diagonal,
// which is non-singular and well within the row-swap-by-addition
// algorithm's assumption that true pivoting is unnecessary.
func diagonallyDominant(rng *rand.Rand, n int, prec uint) matrix.Matrix {
	m := matrix.New(n, prec)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				m[i][j] = breal.NewFloat(float64(n)+rng.Float64(), prec)
			} else {
				m[i][j] = breal.NewFloat(rng.Float64()-0.5, prec)
			}
		}
	}
	return m
}

func TestSingular(t *testing.T) {
	m := matrix.Matrix{
		vals(testPrec, 1, 1),
		vals(testPrec, 1, 1),
	}
	_, err := matrix.Inverse(m)
	require.ErrorIs(t, err, matrix.ErrSingular)
}
