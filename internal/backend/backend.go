// Package backend defines the two inference paths under comparison and the
// shared runtime plumbing they run on.
package backend

import "image"

// Backend produces a classification output vector for one decoded image.
// Each implementation owns its preprocessing pipeline; callers hand over
// the raw image.
type Backend interface {
	Name() string
	OutputLen() int
	Infer(img image.Image) ([]float32, error)
	Close() error
}
