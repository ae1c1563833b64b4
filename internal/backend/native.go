package backend

import (
	"fmt"
	"image"
	"time"

	ort "github.com/yalue/onnxruntime_go"

	"modelparity/internal/imageio"
	"modelparity/internal/logger"
	"modelparity/internal/metrics"
	"modelparity/internal/modelspec"
)

// Native runs the full-precision checkpoint with the training-time
// preprocessing applied in code.
type Native struct {
	spec modelspec.Spec
	sess *session
	log  *logger.Logger
}

// NewNative loads the checkpoint and verifies its declared interface against
// the classifier contract. A checkpoint that does not look like the expected
// architecture is a configuration error, not a per-sample one.
func NewNative(modelPath string, spec modelspec.Spec) (*Native, error) {
	if err := SniffONNX(modelPath); err != nil {
		return nil, err
	}

	ins, outs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("inspect checkpoint: %w", err)
	}
	if len(ins) != 1 || len(outs) < 1 {
		return nil, modelspec.ErrUnexpectedFormat{
			Reason: fmt.Sprintf("%d inputs and %d outputs (want 1 and 1)", len(ins), len(outs)),
		}
	}
	if err := spec.CheckInput(ins[0].Dimensions); err != nil {
		return nil, err
	}
	if err := spec.CheckOutput(outs[0].Dimensions); err != nil {
		return nil, err
	}

	sess, err := newSession(modelPath, ins[0].Name, outs[0].Name, spec.InputShape(), spec.OutputShape())
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}

	log := logger.Log.With("backend", "native")
	log.Debug("checkpoint loaded", "path", modelPath, "input", ins[0].Name, "output", outs[0].Name)

	return &Native{spec: spec, sess: sess, log: log}, nil
}

func (b *Native) Name() string { return "native" }

func (b *Native) OutputLen() int { return b.spec.NumClasses }

func (b *Native) Infer(img image.Image) ([]float32, error) {
	start := time.Now()
	data := imageio.ToTensorMeanStd(img, b.spec.ImageSize, b.spec.Mean, b.spec.Std)
	metrics.RecordPreprocess(b.Name(), time.Since(start))

	start = time.Now()
	out, err := b.sess.run(data)
	if err != nil {
		return nil, fmt.Errorf("native inference: %w", err)
	}
	metrics.RecordInference(b.Name(), time.Since(start))
	return out, nil
}

func (b *Native) Close() error {
	b.sess.destroy()
	return nil
}
