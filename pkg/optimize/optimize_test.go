package optimize

import (
	"math"
	"testing"
)

func TestMinimizeQuadratic(t *testing.T) {
	tests := []struct {
		name   string
		f      func(float64) float64
		lo, hi float64
		want   float64
	}{
		{"parabola interior min", func(x float64) float64 { return (x - 2) * (x - 2) }, 0, 5, 2},
		{"min at lower bound", func(x float64) float64 { return x }, 1, 4, 1},
		{"min at upper bound", func(x float64) float64 { return -x }, 1, 4, 4},
		{"absolute value", func(x float64) float64 { return math.Abs(x - 0.75) }, 0, 1, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Minimize(tt.f, tt.lo, tt.hi, Options{Tolerance: 1e-6})
			if !res.Converged {
				t.Fatalf("did not converge after %d iterations", res.Iterations)
			}
			if math.Abs(res.X-tt.want) > 1e-5 {
				t.Errorf("X = %v, want %v", res.X, tt.want)
			}
		})
	}
}

func TestMinimizeSwappedBounds(t *testing.T) {
	res := Minimize(func(x float64) float64 { return (x - 2) * (x - 2) }, 5, 0, Options{Tolerance: 1e-6})
	if !res.Converged || math.Abs(res.X-2) > 1e-5 {
		t.Errorf("X = %v (converged=%v), want 2", res.X, res.Converged)
	}
}

func TestMinimizeIterationBudget(t *testing.T) {
	res := Minimize(func(x float64) float64 { return (x - 2) * (x - 2) }, 0, 1e6, Options{
		Tolerance: 1e-12,
		MaxIter:   3,
	})
	if res.Converged {
		t.Error("converged=true with a 3-iteration budget on a huge bracket")
	}
	if res.Iterations != 3 {
		t.Errorf("iterations = %d, want 3", res.Iterations)
	}
}

func TestMinimizeObserverSeesEveryEvaluation(t *testing.T) {
	var calls int
	res := Minimize(func(x float64) float64 { return x * x }, -1, 1, Options{
		Tolerance: 1e-3,
		Observer:  func(x, cost float64) { calls++ },
	})
	if calls != res.Evaluations {
		t.Errorf("observer saw %d evaluations, result reports %d", calls, res.Evaluations)
	}
	if calls < 2 {
		t.Errorf("expected at least 2 evaluations, got %d", calls)
	}
}

func TestMinimizeDegenerateInterval(t *testing.T) {
	res := Minimize(func(x float64) float64 { return x }, 1, 1, Options{Tolerance: 1e-6})
	if !res.Converged || res.X != 1 {
		t.Errorf("X = %v (converged=%v), want 1", res.X, res.Converged)
	}
}

func TestMinimizeInfeasibleEverywhere(t *testing.T) {
	res := Minimize(func(x float64) float64 { return math.Inf(1) }, 0, 1, Options{Tolerance: 1e-3})
	if res.Converged {
		t.Error("an everywhere-infinite cost must not report convergence")
	}
}
