package remez_test

import (
	"context"
	"testing"

	"github.com/hocevar-remez/goremez/breal"
	"github.com/hocevar-remez/goremez/expr"
	"github.com/hocevar-remez/goremez/remez"
	"github.com/stretchr/testify/require"
)

const testPrec = 256

func compile(t *testing.T, src string) *expr.Program {
	t.Helper()
	p, err := expr.Compile(src, testPrec)
	require.NoError(t, err)
	return p
}

func baseOptions(t *testing.T, order int, funcSrc string, rf remez.RootFinder) remez.Options {
	return remez.Options{
		Order:      order,
		Decimals:   15,
		Prec:       testPrec,
		Xmin:       breal.NewFloat(-1, testPrec),
		Xmax:       breal.NewFloat(1, testPrec),
		Func:       compile(t, funcSrc),
		RootFinder: rf,
		Seed:       []byte("deterministic-test-seed"),
		PoolSize:   2,
	}
}

func TestDomainValidation(t *testing.T) {
	opts := baseOptions(t, 3, "sin(x)", remez.Bisect)
	opts.Xmin, opts.Xmax = breal.NewFloat(1, testPrec), breal.NewFloat(-1, testPrec)
	_, err := remez.NewSolver(opts)
	require.ErrorIs(t, err, remez.ErrDomain)

	opts2 := baseOptions(t, 0, "sin(x)", remez.Bisect)
	_, err = remez.NewSolver(opts2)
	require.ErrorIs(t, err, remez.ErrDomain)
}

func TestLinearFunctionExactDegreeOne(t *testing.T) {
	// A degree-1 minimax fit of an already-linear function should recover
	// it essentially exactly, for any root finder variant.
	for _, rf := range []remez.RootFinder{remez.Bisect, remez.RegulaFalsi, remez.Illinois, remez.Pegasus, remez.Ford} {
		opts := baseOptions(t, 1, "2*x + 1", rf)
		s, err := remez.NewSolver(opts)
		require.NoError(t, err)

		res, err := s.Run(context.Background(), 50)
		require.NoError(t, err)
		require.Len(t, res.Coefficients, 2)
		require.InDelta(t, 1.0, res.Coefficients[0].Float64(), 1e-6)
		require.InDelta(t, 2.0, res.Coefficients[1].Float64(), 1e-6)
		require.InDelta(t, 0.0, res.Error.Float64(), 1e-6)
	}
}

func TestIdempotenceWithFixedSeed(t *testing.T) {
	run := func() remez.Result {
		opts := baseOptions(t, 4, "sin(x)", remez.Pegasus)
		s, err := remez.NewSolver(opts)
		require.NoError(t, err)
		res, err := s.Run(context.Background(), 100)
		require.NoError(t, err)
		return res
	}

	a := run()
	b := run()

	require.Equal(t, len(a.Coefficients), len(b.Coefficients))
	for i := range a.Coefficients {
		require.InDelta(t, a.Coefficients[i].Float64(), b.Coefficients[i].Float64(), 1e-30)
	}
	require.InDelta(t, a.Error.Float64(), b.Error.Float64(), 1e-30)
}

func TestApproximatesSineWithinTolerance(t *testing.T) {
	opts := baseOptions(t, 6, "sin(x)", remez.Pegasus)
	s, err := remez.NewSolver(opts)
	require.NoError(t, err)

	res, err := s.Run(context.Background(), 100)
	require.NoError(t, err)

	// Spot-check the fitted polynomial against sin(x) on a few points.
	for _, x := range []float64{-0.9, -0.3, 0, 0.4, 0.95} {
		want := breal.Sin(breal.NewFloat(x, testPrec)).Float64()
		got := evalMonomial(res.Coefficients, x)
		require.InDelta(t, want, got, 1e-3)
	}
}

func evalMonomial(coeffs []breal.Real, x float64) float64 {
	y := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		y = y*x + coeffs[i].Float64()
	}
	return y
}

func TestDiagnosticsTrackConvergence(t *testing.T) {
	opts := baseOptions(t, 5, "cos(x)", remez.Illinois)
	s, err := remez.NewSolver(opts)
	require.NoError(t, err)

	_, err = s.Run(context.Background(), 100)
	require.NoError(t, err)

	d, err := s.Stats()
	require.NoError(t, err)
	require.Greater(t, d.Iterations, 0)
	require.GreaterOrEqual(t, d.Max, d.Min)
}

func TestZeroWeightIsDomainError(t *testing.T) {
	opts := baseOptions(t, 3, "sin(x)", remez.Bisect)
	opts.Weight = compile(t, "0")
	_, err := remez.NewSolver(opts)
	require.ErrorIs(t, err, remez.ErrDomain)
}
