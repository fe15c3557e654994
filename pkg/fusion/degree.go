package fusion

import (
	"fmt"
	"math"
)

// ScaleFactor maps a fusion degree in [0, 1] to the factor by which
// fiber centers are scaled toward the assembly origin before fusion
// geometry is computed: 1 − d·(2−√2), the physical model for symmetric
// fused couplers. Degree 0 leaves the fibers in place; degree 1 pulls
// the centers to √2−1 of their original separation.
func ScaleFactor(degree float64) (float64, error) {
	if math.IsNaN(degree) || degree < 0 || degree > 1 {
		return 0, fmt.Errorf("fusion: fusion degree is %v, must be in [0, 1]", degree)
	}
	return 1 - degree*(2-math.Sqrt2), nil
}
