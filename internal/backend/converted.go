package backend

import (
	"fmt"
	"image"
	"time"

	ort "github.com/yalue/onnxruntime_go"

	"modelparity/internal/bundle"
	"modelparity/internal/imageio"
	"modelparity/internal/logger"
	"modelparity/internal/metrics"
)

// Converted runs the deployment bundle. Its preprocessing parameters come
// from the bundle's own metadata, never from the training configuration.
type Converted struct {
	meta  bundle.Metadata
	scale [3]float32
	bias  [3]float32
	sess  *session
	log   *logger.Logger
}

// NewConverted resolves a bundle (directory, metadata file, or model file)
// and loads its model.
func NewConverted(path string) (*Converted, error) {
	modelPath, meta, err := bundle.Resolve(path)
	if err != nil {
		return nil, err
	}
	if err := SniffONNX(modelPath); err != nil {
		return nil, err
	}

	inputName, outputName := meta.InputName, meta.OutputName
	if inputName == "" || outputName == "" {
		// Older bundles omit tensor names; fall back to the model's own.
		ins, outs, err := ort.GetInputOutputInfo(modelPath)
		if err != nil {
			return nil, fmt.Errorf("inspect bundle model: %w", err)
		}
		if len(ins) < 1 || len(outs) < 1 {
			return nil, fmt.Errorf("bundle model declares %d inputs and %d outputs", len(ins), len(outs))
		}
		inputName, outputName = ins[0].Name, outs[0].Name
	}

	sess, err := newSession(modelPath, inputName, outputName, meta.InputShape, meta.OutputShape)
	if err != nil {
		return nil, fmt.Errorf("load bundle model: %w", err)
	}

	b := &Converted{
		meta: meta,
		sess: sess,
		log:  logger.Log.With("backend", "converted"),
	}
	copy(b.scale[:], meta.Normalization.Scale)
	copy(b.bias[:], meta.Normalization.Bias)

	b.log.Debug("bundle loaded",
		"model", modelPath,
		"image_size", meta.ImageSize,
		"classes", meta.NumClasses())

	return b, nil
}

func (b *Converted) Name() string { return "converted" }

func (b *Converted) OutputLen() int { return b.meta.NumClasses() }

func (b *Converted) Infer(img image.Image) ([]float32, error) {
	start := time.Now()
	data := imageio.ToTensorScaleBias(img, b.meta.ImageSize, b.scale, b.bias)
	metrics.RecordPreprocess(b.Name(), time.Since(start))

	start = time.Now()
	out, err := b.sess.run(data)
	if err != nil {
		return nil, fmt.Errorf("converted inference: %w", err)
	}
	metrics.RecordInference(b.Name(), time.Since(start))
	return out, nil
}

func (b *Converted) Close() error {
	b.sess.destroy()
	return nil
}
