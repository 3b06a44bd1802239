package remez

import (
	"context"
	"testing"

	"github.com/hocevar-remez/goremez/breal"
	"github.com/hocevar-remez/goremez/expr"
	"github.com/stretchr/testify/require"
)

func compileInternal(t *testing.T, src string, prec uint) *expr.Program {
	t.Helper()
	p, err := expr.Compile(src, prec)
	require.NoError(t, err)
	return p
}

// After Init, estimate must have degree exactly N and interpolate f exactly
// at the N+1 initial abscissae, per spec.md's post-do_init invariant.
func TestInitInterpolatesAtInitialAbscissae(t *testing.T) {
	const prec = 256
	opts := Options{
		Order:    5,
		Decimals: 15,
		Prec:     prec,
		Xmin:     breal.NewFloat(-1, prec),
		Xmax:     breal.NewFloat(1, prec),
		Func:     compileInternal(t, "sin(x)", prec),
		Seed:     []byte("invariant-test"),
	}
	s, err := NewSolver(opts)
	require.NoError(t, err)
	require.NoError(t, s.Init())
	defer s.Close()

	require.Equal(t, opts.Order, s.estimate.Degree())

	for i := 0; i <= opts.Order; i++ {
		got := s.evalEstimate(s.zeros[i]).Float64()
		want := s.evalFunc(s.zeros[i]).Float64()
		require.InDelta(t, want, got, 1e-9, "node %d", i)
	}
}

// At a converged state, consecutive control and zero abscissae strictly
// alternate: control[i] < zeros[i] < control[i+1] for every i.
func TestConvergedControlAndZerosAlternate(t *testing.T) {
	const prec = 256
	opts := Options{
		Order:      5,
		Decimals:   15,
		Prec:       prec,
		Xmin:       breal.NewFloat(-1, prec),
		Xmax:       breal.NewFloat(1, prec),
		Func:       compileInternal(t, "exp(x)", prec),
		RootFinder: Pegasus,
		Seed:       []byte("alternation-test"),
		PoolSize:   2,
	}
	s, err := NewSolver(opts)
	require.NoError(t, err)
	require.NoError(t, s.Init())
	defer s.Close()

	ctx := context.Background()
	for i := 0; i < 100; i++ {
		cont, err := s.Step(ctx)
		require.NoError(t, err)
		if !cont {
			break
		}
	}

	for i := 0; i <= opts.Order; i++ {
		require.True(t, s.control[i].Cmp(s.zeros[i]) < 0,
			"control[%d]=%v must be < zeros[%d]=%v", i, s.control[i].Float64(), i, s.zeros[i].Float64())
		require.True(t, s.zeros[i].Cmp(s.control[i+1]) < 0,
			"zeros[%d]=%v must be < control[%d]=%v", i, s.zeros[i].Float64(), i+1, s.control[i+1].Float64())
	}
}
