package fusion

import (
	"fmt"

	"github.com/MartinPdeS/fiberfusing/pkg/geom"
)

// ValidationIssue describes a fiber configuration problem found before
// any geometry is derived.
type ValidationIssue struct {
	FiberIndex int
	Message    string
}

// Error implements the error interface.
func (v ValidationIssue) Error() string {
	return fmt.Sprintf("fusion: fiber %d: %s", v.FiberIndex, v.Message)
}

// ValidateFibers runs the construction-time checks on a fiber set and
// returns every issue found: fibers must be non-nil with strictly
// positive radii, and no two fibers may share a center.
func ValidateFibers(fibers []*geom.Circle) []ValidationIssue {
	var issues []ValidationIssue

	for i, f := range fibers {
		if f == nil {
			issues = append(issues, ValidationIssue{FiberIndex: i, Message: "fiber is nil"})
			continue
		}
		if f.Radius <= 0 {
			issues = append(issues, ValidationIssue{
				FiberIndex: i,
				Message:    fmt.Sprintf("radius is %g, must be positive", f.Radius),
			})
		}
	}

	for i := 0; i < len(fibers); i++ {
		if fibers[i] == nil {
			continue
		}
		for j := i + 1; j < len(fibers); j++ {
			if fibers[j] == nil {
				continue
			}
			if geom.Dist(fibers[i].Center, fibers[j].Center) == 0 {
				issues = append(issues, ValidationIssue{
					FiberIndex: j,
					Message:    fmt.Sprintf("center coincides with fiber %d", i),
				})
			}
		}
	}

	return issues
}
