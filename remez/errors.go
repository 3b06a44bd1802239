package remez

import "errors"

// ErrDomain covers invalid solver configuration: xmin >= xmax, degree < 1,
// or a working precision outside the supported range.
var ErrDomain = errors.New("remez: domain error")

// ErrNumericDivergence is returned when the iteration cap is reached
// without satisfying the convergence test.
var ErrNumericDivergence = errors.New("remez: numeric divergence")
