// Package optimize provides the bounded derivative-free 1D scalar
// minimization used by the fusion optimizers. The search is a plain
// golden-section reduction: every cost evaluation is cheap and
// deterministic, so robustness beats convergence order here.
package optimize

import "math"

const (
	// invPhi is the golden-section reduction ratio.
	invPhi = 0.6180339887498949

	defaultTolerance = 1e-8
	defaultMaxIter   = 200
)

// Options configures a minimization.
type Options struct {
	// Tolerance is the absolute width of the final bracket. Zero or
	// negative selects the default.
	Tolerance float64

	// MaxIter caps the number of bracket reductions. Zero or negative
	// selects the default. When the cap is hit before the bracket
	// shrinks below Tolerance, the result reports Converged=false.
	MaxIter int

	// Observer, when non-nil, is called with every trial point and its
	// cost. It is the diagnostics hook; the search itself never logs.
	Observer func(x, cost float64)
}

// Result is the outcome of a minimization.
type Result struct {
	X           float64
	Cost        float64
	Iterations  int
	Evaluations int
	Converged   bool
}

// Minimize searches for the minimum of f over the closed interval
// [lo, hi]. The function must be finite or +Inf on the interval; +Inf
// marks infeasible points and is handled like any other cost.
func Minimize(f func(float64) float64, lo, hi float64, opts Options) Result {
	tol := opts.Tolerance
	if tol <= 0 {
		tol = defaultTolerance
	}
	maxIter := opts.MaxIter
	if maxIter <= 0 {
		maxIter = defaultMaxIter
	}
	if hi < lo {
		lo, hi = hi, lo
	}

	eval := func(x float64) float64 {
		y := f(x)
		if opts.Observer != nil {
			opts.Observer(x, y)
		}
		return y
	}

	a, b := lo, hi
	if b-a <= tol {
		x := (a + b) / 2
		y := eval(x)
		return Result{X: x, Cost: y, Evaluations: 1, Converged: true}
	}

	c := b - (b-a)*invPhi
	d := a + (b-a)*invPhi
	fc := eval(c)
	fd := eval(d)
	evals := 2

	iters := 0
	for b-a > tol && iters < maxIter {
		if fc < fd {
			b = d
			d, fd = c, fc
			c = b - (b-a)*invPhi
			fc = eval(c)
		} else {
			a = c
			c, fc = d, fd
			d = a + (b-a)*invPhi
			fd = eval(d)
		}
		evals++
		iters++
	}

	res := Result{
		Iterations:  iters,
		Evaluations: evals,
		Converged:   b-a <= tol,
	}
	if fc < fd {
		res.X, res.Cost = c, fc
	} else {
		res.X, res.Cost = d, fd
	}
	if math.IsInf(res.Cost, 1) {
		res.Converged = false
	}
	return res
}
