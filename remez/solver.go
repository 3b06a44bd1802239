// Package remez implements the Remez exchange engine: it drives a
// compiled error function and optional weight function on [xmin, xmax]
// through alternating zero-bracket and extremum-bracket refinement phases
// until the computed minimax error stabilizes, producing a polynomial
// approximation of degree Order.
package remez

import (
	"context"
	"fmt"

	"github.com/hocevar-remez/goremez/breal"
	"github.com/hocevar-remez/goremez/expr"
	"github.com/hocevar-remez/goremez/matrix"
	"github.com/hocevar-remez/goremez/poly"
	"github.com/hocevar-remez/goremez/wpool"
)

// chebyInterval is the domain the estimate polynomial is always expressed
// over internally; eval_func/eval_weight map back into [xmin, xmax].
func chebyInterval(prec uint) poly.Interval {
	return poly.Interval{A: breal.NewFloat(-1, prec), B: breal.NewFloat(1, prec)}
}

// Options configures a Solver.
type Options struct {
	Order      int
	Decimals   int
	Prec       uint
	Xmin, Xmax breal.Real
	Func       *expr.Program
	Weight     *expr.Program // nil if unweighted
	RootFinder RootFinder
	Seed       []byte
	PoolSize   int // 0 = hardware concurrency
}

// Solver holds all process-wide-for-this-run state: the order, precision,
// range, compiled error/weight programs, and the mutable solver state
// (estimate, zeros, control points, brackets) advanced by Init and Step.
type Solver struct {
	opts Options

	k1, k2, epsilon, limit breal.Real

	estimate *poly.Polynomial
	zeros    []breal.Real
	control  []breal.Real

	zeroBrackets    []zeroBracket
	extremaBrackets []extremumBracket
	errorVal        breal.Real

	pool *wpool.Pool
	tb   *tieBreaker

	iteration int
	history   errorHistory
}

// NewSolver validates opts and returns a ready-to-Init solver.
func NewSolver(opts Options) (*Solver, error) {
	if opts.Order < 1 {
		return nil, fmt.Errorf("%w: order must be >= 1, got %d", ErrDomain, opts.Order)
	}
	if opts.Prec < 32 || opts.Prec > 65535 {
		return nil, fmt.Errorf("%w: precision must be in [32, 65535] bits, got %d", ErrDomain, opts.Prec)
	}
	if opts.Xmin.Cmp(opts.Xmax) >= 0 {
		return nil, fmt.Errorf("%w: xmin must be < xmax", ErrDomain)
	}
	if opts.Func == nil {
		return nil, fmt.Errorf("%w: func program is required", ErrDomain)
	}
	if opts.Weight != nil && opts.Weight.IsConstant() {
		if opts.Weight.Eval(breal.NewFloat(0, opts.Prec)).IsZero() {
			return nil, fmt.Errorf("%w: weight function cannot be identically zero", ErrDomain)
		}
	}
	return &Solver{opts: opts}, nil
}

// Init fixes the process-wide breal precision to opts.Prec, computes
// k1/k2/epsilon, starts the worker pool and seeds the deterministic
// tie-break PRNG, then runs the first (order+1)-point Chebyshev
// interpolation to produce the initial estimate.
func (s *Solver) Init() error {
	prec := s.opts.Prec
	breal.SetPrecision(prec)
	s.k1 = s.opts.Xmax.Add(s.opts.Xmin).Quo(breal.NewFloat(2, prec))
	s.k2 = s.opts.Xmax.Sub(s.opts.Xmin).Quo(breal.NewFloat(2, prec))
	s.epsilon = breal.Pow(breal.NewFloat(10, prec), breal.NewFloat(-(s.opts.Decimals + 2), prec))
	s.limit = breal.Pow(breal.NewFloat(10, prec), breal.NewFloat(-(2*s.opts.Decimals + 10), prec))

	tb, err := newTieBreaker(s.opts.Seed)
	if err != nil {
		return err
	}
	s.tb = tb

	s.pool = wpool.New(s.opts.PoolSize, s.handle)

	n := s.opts.Order
	s.zeros = make([]breal.Real, n+1)
	s.zeroBrackets = make([]zeroBracket, n+1)
	s.control = make([]breal.Real, n+2)
	s.extremaBrackets = make([]extremumBracket, n)
	s.errorVal = breal.NewFloat(-1, prec)

	return s.remezInit()
}

// Close shuts the worker pool down. Safe to call once after the solver is
// done being stepped.
func (s *Solver) Close() {
	if s.pool != nil {
		s.pool.Shutdown()
	}
}

func (s *Solver) evalEstimate(x breal.Real) breal.Real { return s.estimate.Eval(x) }

func (s *Solver) evalFunc(x breal.Real) breal.Real {
	return s.opts.Func.Eval(x.Mul(s.k2).Add(s.k1))
}

func (s *Solver) evalWeight(x breal.Real) breal.Real {
	if s.opts.Weight == nil {
		return breal.NewFloat(1, x.Prec())
	}
	return s.opts.Weight.Eval(x.Mul(s.k2).Add(s.k1))
}

func (s *Solver) evalError(x breal.Real) breal.Real {
	return s.evalEstimate(x).Sub(s.evalFunc(x)).Abs().Quo(s.evalWeight(x))
}

// handle is the worker pool's job function: it advances exactly one
// bracket by one refinement step and echoes the tag, per the integer
// job-tag protocol.
func (s *Solver) handle(tag int) int {
	if tag < 1000 {
		st := &s.zeroBrackets[tag]
		st.step(s.opts.RootFinder, func(x breal.Real) breal.Real {
			return s.evalEstimate(x).Sub(s.evalFunc(x))
		})
		return tag
	}
	idx := tag - 1000
	st := &s.extremaBrackets[idx]
	st.step(s.evalError)
	return tag
}

// remezInit solves the order+1 system fixing the error function to zero
// at order+1 Chebyshev-like nodes, producing the first estimate.
func (s *Solver) remezInit() error {
	prec := s.opts.Prec
	n := s.opts.Order
	interval := chebyInterval(prec)

	fxn := make([]breal.Real, n+1)
	sys := matrix.New(n+1, prec)

	for i := 0; i <= n; i++ {
		num := breal.NewFloat(2*i-n, prec)
		s.zeros[i] = num.Quo(breal.NewFloat(n+1, prec))
		fxn[i] = s.evalFunc(s.zeros[i])

		row := make([]breal.Real, n+1)
		poly.ChebyshevBasis(s.zeros[i], interval, n+1, row)
		sys[i] = row
	}

	inv, err := matrix.Inverse(sys)
	if err != nil {
		return err
	}

	coeffs := make([]breal.Real, n+1)
	for deg := 0; deg <= n; deg++ {
		w := breal.NewFloat(0, prec)
		for i := 0; i <= n; i++ {
			w = w.Add(inv[deg][i].Mul(fxn[i]))
		}
		coeffs[deg] = w
	}
	s.estimate = poly.NewChebyshev(coeffs, interval.A, interval.B)
	return nil
}

// remezStep solves the order+2 system that both refines the estimate at
// the current control points and extracts the oscillating error weight.
func (s *Solver) remezStep() error {
	prec := s.opts.Prec
	n := s.opts.Order
	interval := chebyInterval(prec)

	fxn := make([]breal.Real, n+2)
	sys := matrix.New(n+2, prec)

	for i := 0; i <= n+1; i++ {
		fxn[i] = s.evalFunc(s.control[i])

		row := make([]breal.Real, n+2)
		poly.ChebyshevBasis(s.control[i], interval, n+1, row)

		errVal := s.evalWeight(s.control[i]).Abs()
		if i&1 == 1 {
			row[n+1] = errVal
		} else {
			row[n+1] = errVal.Neg()
		}
		sys[i] = row
	}

	inv, err := matrix.Inverse(sys)
	if err != nil {
		return err
	}

	coeffs := make([]breal.Real, n+1)
	for deg := 0; deg <= n; deg++ {
		w := breal.NewFloat(0, prec)
		for i := 0; i <= n+1; i++ {
			w = w.Add(inv[deg][i].Mul(fxn[i]))
		}
		coeffs[deg] = w
	}
	s.estimate = poly.NewChebyshev(coeffs, interval.A, interval.B)
	return nil
}

// findZeros locates order+1 zeros of the (absolute) error function, one
// per [control[i], control[i+1]] bracket, dispatching each bracket's
// refinement steps to the worker pool until it has collapsed to within
// s.epsilon or landed exactly on a zero.
func (s *Solver) findZeros(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n := s.opts.Order

	for i := 0; i <= n; i++ {
		a := Point{X: s.control[i]}
		a.Err = s.evalEstimate(a.X).Sub(s.evalFunc(a.X))
		b := Point{X: s.control[i+1]}
		b.Err = s.evalEstimate(b.X).Sub(s.evalFunc(b.X))

		s.zeroBrackets[i] = zeroBracket{A: a, B: b}
		s.pool.Push(i)
	}

	// Every push above seeds a bracket with no C point yet; the first
	// answer for each index always carries a freshly computed C, so we
	// track convergence off the bracket's own A/B and the C the worker
	// just produced (stashed back via the step call on zeroBrackets[i]).
	finished := 0
	for finished < n+1 {
		i := s.pool.PopAnswer()
		st := &s.zeroBrackets[i]

		c := st.lastC
		if c.Err.IsZero() || st.A.X.Sub(st.B.X).Abs().Cmp(s.epsilon) <= 0 {
			s.zeros[i] = c.X
			finished++
			continue
		}
		s.pool.Push(i)
	}
	return nil
}

// findExtrema locates Order extrema of the relative error function, one
// per [zeros[i], zeros[i+1]] bracket, seeding each with a deterministic
// pseudo-random split point and refining via successive parabolic
// interpolation until the bracket has collapsed to within s.epsilon.
func (s *Solver) findExtrema(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n := s.opts.Order
	prec := s.opts.Prec

	s.control[0] = breal.NewFloat(-1, prec)
	s.control[n+1] = breal.NewFloat(1, prec)
	s.errorVal = breal.NewFloat(-1, prec)

	for i := 0; i < n; i++ {
		a := Point{X: s.zeros[i]}
		b := Point{X: s.zeros[i+1]}
		u := s.tb.next()
		cx := a.X.Add(b.X.Sub(a.X).Mul(breal.NewFloat(u, prec)))
		c := Point{X: cx}

		a.Err = s.evalError(a.X)
		b.Err = s.evalError(b.X)
		c.Err = s.evalError(c.X)

		s.extremaBrackets[i] = extremumBracket{A: a, B: b, C: c}
		s.pool.Push(1000 + i)
	}

	finished := 0
	for finished < n {
		tag := s.pool.PopAnswer()
		idx := tag - 1000
		st := &s.extremaBrackets[idx]

		if st.B.X.Sub(st.A.X).Cmp(s.epsilon) <= 0 {
			s.control[idx+1] = st.C.X
			if st.C.Err.Cmp(s.errorVal) > 0 {
				s.errorVal = st.C.Err
			}
			finished++
			continue
		}
		s.pool.Push(tag)
	}
	return nil
}

// Step runs one Remez exchange iteration and reports whether another
// iteration is needed. It returns (false, nil) exactly when the relative
// change in the maximum error has dropped below epsilon, or when the
// maximum error itself is at most s.limit (an exact fit, where a relative
// test on a zero error can never succeed).
func (s *Solver) Step(ctx context.Context) (bool, error) {
	oldError := s.errorVal

	if err := s.findExtrema(ctx); err != nil {
		return false, err
	}
	if err := s.remezStep(); err != nil {
		return false, err
	}

	s.history.record(s.errorVal.Float64())

	if s.errorVal.Sign() >= 0 &&
		(s.errorVal.Sub(oldError).Abs().Cmp(s.errorVal.Mul(s.epsilon)) < 0 ||
			s.errorVal.Cmp(s.limit) <= 0) {
		return false, nil
	}

	if err := s.findZeros(ctx); err != nil {
		return false, err
	}
	s.iteration++
	return true, nil
}

// Result is the outcome of a completed Run: the polynomial coefficients
// in the original [xmin, xmax] variable, the converged minimax error, and
// the iteration count.
type Result struct {
	Coefficients []breal.Real
	Error        breal.Real
	Iterations   int
}

// Run drives do_init(); while (do_step()) {} to completion, returning
// ErrNumericDivergence if maxIter iterations pass without the convergence
// test succeeding. maxIter <= 0 defaults to 200.
func (s *Solver) Run(ctx context.Context, maxIter int) (Result, error) {
	if maxIter <= 0 {
		maxIter = 200
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return Result{}, err
	}

	for iter := 0; iter < maxIter; iter++ {
		cont, err := s.Step(ctx)
		if err != nil {
			return Result{}, err
		}
		if !cont {
			return s.result(), nil
		}
	}
	return Result{}, fmt.Errorf("%w: did not converge after %d iterations (error=%s)", ErrNumericDivergence, maxIter, s.errorVal)
}

// result composes the internal [-1, 1] Chebyshev estimate with the inverse
// of x -> (x-k1)/k2 to express the polynomial in the original [xmin, xmax]
// variable. Rather than deriving the Chebyshev-to-monomial change-of-basis
// matrix directly, it samples the estimate at the equispaced nodes
// (2i-n)/(n+1) that remezInit uses, mapped back to [xmin, xmax], and
// interpolates a Monomial polynomial
// through the same points, reusing the Vandermonde-inversion machinery
// remez_init() already exercises.
func (s *Solver) result() Result {
	prec := s.opts.Prec
	n := s.opts.Order

	values := make([]breal.Real, n+1)
	sys := matrix.New(n+1, prec)

	for i := 0; i <= n; i++ {
		u := breal.NewFloat(2*i-n, prec).Quo(breal.NewFloat(n+1, prec))
		x := u.Mul(s.k2).Add(s.k1)
		values[i] = s.estimate.Eval(u)

		row := make([]breal.Real, n+1)
		poly.MonomialBasis(x, n+1, row)
		sys[i] = row
	}

	inv, err := matrix.Inverse(sys)
	if err != nil {
		// A degenerate Vandermonde system here would mean the n+1
		// evaluation nodes coincided, which cannot happen since they are
		// the distinct nodes computed above.
		panic(fmt.Sprintf("remez: unexpected singular composition system: %v", err))
	}

	coeffs := matrix.Mul(inv, values)

	return Result{
		Coefficients: coeffs,
		Error:        s.errorVal,
		Iterations:   s.iteration,
	}
}
