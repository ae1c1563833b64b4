// Package report renders comparison results for humans and exports the raw
// difference matrix for downstream analysis.
package report

import (
	"fmt"
	"io"

	"modelparity/internal/compare"
)

// Render prints the comparison summary. aName and bName are the backend
// names as they should appear in the difference headers. Values are printed
// with six decimal places; class labels are zero-based row indices.
func Render(w io.Writer, s *compare.Summary, aName, bName string) {
	fmt.Fprintf(w, "=== Comparison Summary ===\n")
	fmt.Fprintf(w, "Number of samples: %d\n", s.Samples)
	fmt.Fprintf(w, "Number of classes: %d\n", s.Classes)
	fmt.Fprintf(w, "Overall mean |%s - %s|: %.6f\n", aName, bName, s.OverallMean)
	fmt.Fprintf(w, "Overall max  |%s - %s|: %.6f\n", aName, bName, s.OverallMax)

	fmt.Fprintf(w, "\nPer-class mean absolute difference:\n")
	for i, v := range s.ClassMean {
		fmt.Fprintf(w, "  Class %02d: %.6f\n", i, v)
	}

	fmt.Fprintf(w, "\nPer-class max absolute difference:\n")
	for i, v := range s.ClassMax {
		fmt.Fprintf(w, "  Class %02d: %.6f\n", i, v)
	}
}
