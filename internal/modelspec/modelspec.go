package modelspec

import "fmt"

// Spec is the classification model contract. Both entry points, packaging
// and comparison, build against this one definition.
type Spec struct {
	InputName  string
	OutputName string
	ImageSize  int
	Channels   int
	NumClasses int

	// Training-time channel normalization applied to [0,1] pixels:
	// x -> (x - Mean) / Std
	Mean [3]float32
	Std  [3]float32
}

// New returns the contract for the multi-label image classifier: a 3-channel
// square input and a vector of NumClasses sigmoid probabilities.
func New(imageSize, numClasses int) Spec {
	return Spec{
		InputName:  "input",
		OutputName: "output",
		ImageSize:  imageSize,
		Channels:   3,
		NumClasses: numClasses,
		Mean:       [3]float32{0.5, 0.5, 0.5},
		Std:        [3]float32{0.5, 0.5, 0.5},
	}
}

func (s Spec) InputShape() []int64 {
	return []int64{1, int64(s.Channels), int64(s.ImageSize), int64(s.ImageSize)}
}

func (s Spec) OutputShape() []int64 {
	return []int64{1, int64(s.NumClasses)}
}

// ScaleBias derives the raw-pixel parameterization of the same normalization.
// For an 8-bit pixel p: (p/255 - mean) / std == p*scale + bias, with
// scale = 1/(255*std) and bias = -mean/std.
func (s Spec) ScaleBias() (scale, bias [3]float32) {
	for c := 0; c < 3; c++ {
		scale[c] = 1.0 / (255.0 * s.Std[c])
		bias[c] = -s.Mean[c] / s.Std[c]
	}
	return scale, bias
}

// DefaultLabels names classes by zero-based index when no label set is supplied.
func (s Spec) DefaultLabels() []string {
	labels := make([]string, s.NumClasses)
	for i := range labels {
		labels[i] = fmt.Sprintf("class_%02d", i)
	}
	return labels
}

// ErrUnexpectedFormat reports a checkpoint whose declared interface does not
// match the classifier contract.
type ErrUnexpectedFormat struct{ Reason string }

func (e ErrUnexpectedFormat) Error() string {
	return fmt.Sprintf("unexpected checkpoint format: %s", e.Reason)
}

// CheckInput verifies a declared input shape against the contract.
// A dynamic batch dimension (-1) is accepted; so are dynamic spatial
// dimensions, since some exports leave the resize to the caller.
func (s Spec) CheckInput(dims []int64) error {
	if len(dims) != 4 {
		return ErrUnexpectedFormat{Reason: fmt.Sprintf("input rank %d (want 4)", len(dims))}
	}
	if dims[0] != 1 && dims[0] != -1 {
		return ErrUnexpectedFormat{Reason: fmt.Sprintf("input batch %d (want 1)", dims[0])}
	}
	if dims[1] != int64(s.Channels) {
		return ErrUnexpectedFormat{Reason: fmt.Sprintf("input channels %d (want %d)", dims[1], s.Channels)}
	}
	for _, d := range dims[2:] {
		if d != -1 && d != int64(s.ImageSize) {
			return ErrUnexpectedFormat{Reason: fmt.Sprintf("input spatial size %d (want %d)", d, s.ImageSize)}
		}
	}
	return nil
}

// CheckOutput verifies a declared output shape carries exactly NumClasses
// values per sample.
func (s Spec) CheckOutput(dims []int64) error {
	if len(dims) == 0 {
		return ErrUnexpectedFormat{Reason: "output has no dimensions"}
	}
	last := dims[len(dims)-1]
	if last != int64(s.NumClasses) {
		return ErrUnexpectedFormat{Reason: fmt.Sprintf("output classes %d (want %d)", last, s.NumClasses)}
	}
	for _, d := range dims[:len(dims)-1] {
		if d != 1 && d != -1 {
			return ErrUnexpectedFormat{Reason: fmt.Sprintf("output leading dimension %d (want 1)", d)}
		}
	}
	return nil
}
