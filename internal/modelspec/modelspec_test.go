package modelspec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	s := New(224, 14)

	if s.InputName != "input" || s.OutputName != "output" {
		t.Errorf("unexpected tensor names: %q, %q", s.InputName, s.OutputName)
	}
	if s.Channels != 3 {
		t.Errorf("expected 3 channels, got %d", s.Channels)
	}

	wantIn := []int64{1, 3, 224, 224}
	for i, d := range s.InputShape() {
		if d != wantIn[i] {
			t.Errorf("input shape[%d] = %d, want %d", i, d, wantIn[i])
		}
	}

	wantOut := []int64{1, 14}
	for i, d := range s.OutputShape() {
		if d != wantOut[i] {
			t.Errorf("output shape[%d] = %d, want %d", i, d, wantOut[i])
		}
	}
}

func TestScaleBiasDerivation(t *testing.T) {
	s := New(224, 14)
	scale, bias := s.ScaleBias()

	// mean=0.5, std=0.5 must reduce to the classic 1/127.5, -1 pair.
	for c := 0; c < 3; c++ {
		if scale[c] != float32(1.0/127.5) {
			t.Errorf("scale[%d] = %v, want %v", c, scale[c], float32(1.0/127.5))
		}
		if bias[c] != -1.0 {
			t.Errorf("bias[%d] = %v, want -1", c, bias[c])
		}
	}
}

func TestScaleBiasEquivalence(t *testing.T) {
	// The two parameterizations encode the same transform: for every 8-bit
	// pixel value, (p/255 - mean)/std and p*scale + bias must agree.
	s := New(224, 14)
	scale, bias := s.ScaleBias()

	for p := 0; p <= 255; p++ {
		for c := 0; c < 3; c++ {
			meanStd := (float32(p)/255.0 - s.Mean[c]) / s.Std[c]
			scaleBias := float32(p)*scale[c] + bias[c]
			assert.InDelta(t, meanStd, scaleBias, 1e-6,
				"pixel %d channel %d", p, c)
		}
	}
}

func TestDefaultLabels(t *testing.T) {
	s := New(224, 3)
	labels := s.DefaultLabels()

	want := []string{"class_00", "class_01", "class_02"}
	assert.Equal(t, want, labels)
}

func TestCheckInput(t *testing.T) {
	s := New(224, 14)

	tests := []struct {
		name    string
		dims    []int64
		wantErr bool
	}{
		{"exact", []int64{1, 3, 224, 224}, false},
		{"dynamic batch", []int64{-1, 3, 224, 224}, false},
		{"dynamic spatial", []int64{1, 3, -1, -1}, false},
		{"wrong rank", []int64{3, 224, 224}, true},
		{"batched", []int64{8, 3, 224, 224}, true},
		{"single channel", []int64{1, 1, 224, 224}, true},
		{"wrong size", []int64{1, 3, 299, 299}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CheckInput(tt.dims)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckInput(%v) error = %v, wantErr %v", tt.dims, err, tt.wantErr)
			}
		})
	}
}

func TestCheckOutput(t *testing.T) {
	s := New(224, 14)

	tests := []struct {
		name    string
		dims    []int64
		wantErr bool
	}{
		{"standard", []int64{1, 14}, false},
		{"dynamic batch", []int64{-1, 14}, false},
		{"flat", []int64{14}, false},
		{"empty", []int64{}, true},
		{"wrong classes", []int64{1, 10}, true},
		{"batched", []int64{8, 14}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CheckOutput(tt.dims)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckOutput(%v) error = %v, wantErr %v", tt.dims, err, tt.wantErr)
			}
		})
	}
}

func TestErrUnexpectedFormat(t *testing.T) {
	s := New(224, 14)
	err := s.CheckOutput([]int64{1, 10})

	var formatErr ErrUnexpectedFormat
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected ErrUnexpectedFormat, got %T", err)
	}
	assert.Contains(t, err.Error(), "unexpected checkpoint format")
	assert.Contains(t, err.Error(), "10")
}
