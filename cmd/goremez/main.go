// Command goremez demonstrates the solver library end to end against a
// handful of hardcoded scenarios. It is not a command-line interface to
// the engine's options (argument parsing, help/version banners and
// C-source output formatting are explicitly out of scope); it exists so
// the module has a runnable entry point in the single-scenario
// examples/ convention rather than a flags package.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hocevar-remez/goremez/breal"
	"github.com/hocevar-remez/goremez/expr"
	"github.com/hocevar-remez/goremez/remez"
)

type scenario struct {
	name       string
	funcSrc    string
	weightSrc  string
	order      int
	xmin, xmax float64
	rootFinder remez.RootFinder
	expectFail bool
}

var scenarios = []scenario{
	{name: "sin on [-1,1], degree 6", funcSrc: "sin(x)", order: 6, xmin: -1, xmax: 1, rootFinder: remez.Pegasus},
	{name: "exp on [0,1], degree 4", funcSrc: "exp(x)", order: 4, xmin: 0, xmax: 1, rootFinder: remez.Illinois},
	{name: "1/(1+x^2) weighted by 1+x^2, degree 8", funcSrc: "1 / (1 + x^2)", weightSrc: "1 + x^2", order: 8, xmin: -2, xmax: 2, rootFinder: remez.Ford},
	{name: "linear 2x+1, degree 1 (exact fit)", funcSrc: "2*x + 1", order: 1, xmin: -1, xmax: 1, rootFinder: remez.Bisect},
	{name: "erf on [-1,1], degree 10", funcSrc: "erf(x)", order: 10, xmin: -1, xmax: 1, rootFinder: remez.RegulaFalsi},
	{name: "invalid range (xmin >= xmax)", funcSrc: "sin(x)", order: 3, xmin: 1, xmax: -1, rootFinder: remez.Bisect, expectFail: true},
}

func main() {
	const prec = 256
	breal.SetPrecision(prec)

	status := 0
	for _, sc := range scenarios {
		if err := run(sc, prec); err != nil {
			fmt.Printf("%-45s FAILED: %v\n", sc.name, err)
			if !sc.expectFail {
				status = 1
			}
			continue
		}
		if sc.expectFail {
			fmt.Printf("%-45s unexpectedly succeeded\n", sc.name)
			status = 1
		}
	}
	os.Exit(status)
}

func run(sc scenario, prec uint) error {
	fn, err := expr.Compile(sc.funcSrc, prec)
	if err != nil {
		return err
	}

	var weight *expr.Program
	if sc.weightSrc != "" {
		weight, err = expr.Compile(sc.weightSrc, prec)
		if err != nil {
			return err
		}
	}

	opts := remez.Options{
		Order:      sc.order,
		Decimals:   15,
		Prec:       prec,
		Xmin:       breal.NewFloat(sc.xmin, prec),
		Xmax:       breal.NewFloat(sc.xmax, prec),
		Func:       fn,
		Weight:     weight,
		RootFinder: sc.rootFinder,
		Seed:       []byte(sc.name),
	}

	s, err := remez.NewSolver(opts)
	if err != nil {
		return err
	}

	res, err := s.Run(context.Background(), 200)
	if err != nil {
		return err
	}

	fmt.Printf("%-45s degree=%d iterations=%d error=%s\n", sc.name, sc.order, res.Iterations, res.Error.String())
	return nil
}
