package fusion

import (
	"errors"
	"fmt"

	"github.com/MartinPdeS/fiberfusing/pkg/geom"
)

// BuildConnections scans every unordered fiber pair and creates a
// PairConnection for each pair whose disk interiors overlap. Boundary
// tangency does not connect; fibers with zero overlap never
// participate in area accounting. Only directly touching fibers
// interact: no transitive neck chains are modeled.
func BuildConnections(fibers []*geom.Circle) ([]*PairConnection, error) {
	if issues := ValidateFibers(fibers); len(issues) > 0 {
		errs := make([]error, len(issues))
		for i, issue := range issues {
			errs[i] = issue
		}
		return nil, errors.Join(errs...)
	}

	var conns []*PairConnection
	for i := 0; i < len(fibers); i++ {
		for j := i + 1; j < len(fibers); j++ {
			if !fibers[i].Overlaps(fibers[j]) {
				continue
			}
			pc, err := NewPairConnection(fibers[i], fibers[j])
			if err != nil {
				return nil, fmt.Errorf("fusion: connecting fibers %d and %d: %w", i, j, err)
			}
			conns = append(conns, pc)
		}
	}
	return conns, nil
}

// uniqueFibers collects the distinct fibers referenced by a connection
// set, in first-seen order.
func uniqueFibers(conns []*PairConnection) []*geom.Circle {
	seen := make(map[*geom.Circle]bool)
	var fibers []*geom.Circle
	for _, c := range conns {
		for _, f := range []*geom.Circle{c.fiberA, c.fiberB} {
			if !seen[f] {
				seen[f] = true
				fibers = append(fibers, f)
			}
		}
	}
	return fibers
}
