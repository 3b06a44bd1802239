package remez

import (
	"github.com/montanaflynn/stats"
)

// errorHistory records the maximum error observed after each completed
// Step, for the convergence diagnostics Stats exposes. It is plain
// float64, not breal.Real: this is a reporting aid, not something the
// iteration math depends on.
type errorHistory struct {
	samples stats.Float64Data
}

func (h *errorHistory) record(errVal float64) {
	h.samples = append(h.samples, errVal)
}

// Diagnostics summarizes how the maximum error evolved across iterations.
type Diagnostics struct {
	Iterations   int
	Mean         float64
	StdDev       float64
	Min          float64
	Max          float64
	LastDelta    float64 // |error[n] - error[n-1]|, 0 if fewer than 2 samples
}

// Stats computes convergence diagnostics over the error history recorded
// so far. It is a reporting convenience only — nothing in Step or Run
// consults it.
func (s *Solver) Stats() (Diagnostics, error) {
	n := len(s.history.samples)
	if n == 0 {
		return Diagnostics{}, nil
	}

	mean, err := s.history.samples.Mean()
	if err != nil {
		return Diagnostics{}, err
	}
	sd, err := s.history.samples.StandardDeviation()
	if err != nil {
		return Diagnostics{}, err
	}
	min, err := s.history.samples.Min()
	if err != nil {
		return Diagnostics{}, err
	}
	max, err := s.history.samples.Max()
	if err != nil {
		return Diagnostics{}, err
	}

	var lastDelta float64
	if n >= 2 {
		lastDelta = s.history.samples[n-1] - s.history.samples[n-2]
		if lastDelta < 0 {
			lastDelta = -lastDelta
		}
	}

	return Diagnostics{
		Iterations: n,
		Mean:       mean,
		StdDev:     sd,
		Min:        min,
		Max:        max,
		LastDelta:  lastDelta,
	}, nil
}
