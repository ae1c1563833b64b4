// Package compare drives two inference backends over a shared sample set and
// aggregates their elementwise output differences.
package compare

import (
	"fmt"
	"io"

	"modelparity/internal/backend"
	"modelparity/internal/imageio"
	"modelparity/internal/logger"
	"modelparity/internal/metrics"
)

// Options controls the per-sample failure policy and where contract
// diagnostics are printed.
type Options struct {
	// FailFast aborts the run on the first decode or inference failure
	// instead of skipping the sample.
	FailFast bool
	// Out receives human-readable diagnostics. Defaults to io.Discard.
	Out io.Writer
}

// Result is the outcome of one comparison run.
type Result struct {
	Compared int
	Skipped  int // shape mismatches
	Failed   int // decode or inference failures

	// Paths lists the samples contributing rows, in processing order.
	Paths []string
	// Diffs holds one row of |a - b| per compared sample.
	Diffs [][]float32
}

// Run processes the samples in the given order, one at a time: decode, infer
// on A, infer on B, diff. Samples whose output lengths disagree are excluded
// entirely and reported; they never reach the difference matrix.
func Run(a, b backend.Backend, paths []string, opts Options) (*Result, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	res := &Result{}
	for _, path := range paths {
		img, err := imageio.Load(path)
		if err != nil {
			if opts.FailFast {
				return nil, err
			}
			res.Failed++
			metrics.RecordSampleFailure("decode")
			fmt.Fprintf(out, "Skipping %s: %v\n", path, err)
			continue
		}

		av, err := a.Infer(img)
		if err != nil {
			if opts.FailFast {
				return nil, fmt.Errorf("%s backend on %s: %w", a.Name(), path, err)
			}
			res.Failed++
			metrics.RecordSampleFailure("inference")
			fmt.Fprintf(out, "Skipping %s: %v\n", path, err)
			continue
		}

		bv, err := b.Infer(img)
		if err != nil {
			if opts.FailFast {
				return nil, fmt.Errorf("%s backend on %s: %w", b.Name(), path, err)
			}
			res.Failed++
			metrics.RecordSampleFailure("inference")
			fmt.Fprintf(out, "Skipping %s: %v\n", path, err)
			continue
		}

		if len(av) != len(bv) {
			res.Skipped++
			metrics.RecordShapeMismatch()
			fmt.Fprintf(out, "Shape mismatch for %s: %s=%d, %s=%d\n",
				path, a.Name(), len(av), b.Name(), len(bv))
			logger.Log.Warn("shape mismatch",
				"sample", path, a.Name(), len(av), b.Name(), len(bv))
			continue
		}

		row := make([]float32, len(av))
		for i := range av {
			d := av[i] - bv[i]
			if d < 0 {
				d = -d
			}
			row[i] = d
		}
		res.Diffs = append(res.Diffs, row)
		res.Paths = append(res.Paths, path)
		res.Compared++
		metrics.RecordComparison()
	}

	return res, nil
}
