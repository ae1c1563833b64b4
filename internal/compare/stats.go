package compare

import (
	"errors"
	"fmt"
)

// ErrNoComparisons is returned when every sample was skipped or failed and
// there is nothing to aggregate.
var ErrNoComparisons = errors.New("no valid comparisons")

// Summary holds the aggregate statistics of a difference matrix.
type Summary struct {
	Samples     int
	Classes     int
	OverallMean float64
	OverallMax  float64
	ClassMean   []float64
	ClassMax    []float64
}

// Summarize reduces a difference matrix to per-class and overall statistics.
// Accumulation runs in float64 regardless of the row element type.
func Summarize(diffs [][]float32) (*Summary, error) {
	if len(diffs) == 0 {
		return nil, ErrNoComparisons
	}

	classes := len(diffs[0])
	s := &Summary{
		Samples:   len(diffs),
		Classes:   classes,
		ClassMean: make([]float64, classes),
		ClassMax:  make([]float64, classes),
	}

	var total float64
	colSum := make([]float64, classes)

	for i, row := range diffs {
		if len(row) != classes {
			return nil, fmt.Errorf("ragged difference matrix: row %d has %d values (want %d)", i, len(row), classes)
		}
		for c, v := range row {
			val := float64(v)
			total += val
			colSum[c] += val
			if val > s.OverallMax {
				s.OverallMax = val
			}
			if val > s.ClassMax[c] {
				s.ClassMax[c] = val
			}
		}
	}

	n := float64(len(diffs))
	for c := range colSum {
		s.ClassMean[c] = colSum[c] / n
	}
	s.OverallMean = total / (n * float64(classes))

	return s, nil
}
