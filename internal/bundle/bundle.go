package bundle

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	// ModelFileName is the converted model inside a bundle directory.
	ModelFileName = "model_embedded.onnx"
	// MetadataFileName is the JSON sidecar written next to the model.
	MetadataFileName = "metadata.json"
)

// Normalization is the raw-pixel transform the converted model embeds:
// out[c] = pixel[c]*Scale[c] + Bias[c].
type Normalization struct {
	Scale []float32 `json:"scale"`
	Bias  []float32 `json:"bias"`
}

// Metadata describes a deployment bundle. It is everything a consumer needs
// to drive the model without access to the training configuration.
type Metadata struct {
	InputName     string        `json:"input_name"`
	OutputName    string        `json:"output_name"`
	InputShape    []int64       `json:"input_shape"`
	OutputShape   []int64       `json:"output_shape"`
	Classes       []string      `json:"classes"`
	ImageSize     int           `json:"image_size"`
	Normalization Normalization `json:"normalization"`
}

// NumClasses is the trailing output dimension.
func (m Metadata) NumClasses() int {
	if len(m.OutputShape) == 0 {
		return 0
	}
	return int(m.OutputShape[len(m.OutputShape)-1])
}

func (m Metadata) Validate() error {
	if len(m.InputShape) != 4 {
		return fmt.Errorf("invalid input_shape: rank %d (must be 4)", len(m.InputShape))
	}
	if m.NumClasses() <= 0 {
		return fmt.Errorf("invalid output_shape: %v (must end in a positive class count)", m.OutputShape)
	}
	if m.ImageSize <= 0 {
		return fmt.Errorf("invalid image_size: %d (must be positive)", m.ImageSize)
	}
	if len(m.Normalization.Scale) != 3 || len(m.Normalization.Bias) != 3 {
		return fmt.Errorf("invalid normalization: need 3 scale and 3 bias values, got %d and %d",
			len(m.Normalization.Scale), len(m.Normalization.Bias))
	}
	if len(m.Classes) != 0 && len(m.Classes) != m.NumClasses() {
		return fmt.Errorf("invalid classes: %d labels for %d outputs", len(m.Classes), m.NumClasses())
	}
	return nil
}

// Resolve locates the model file and metadata for a converted artifact path.
// path may name the bundle directory, the metadata file, or the model file
// itself; the other half is found by convention next to it.
func Resolve(path string) (string, Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", Metadata{}, fmt.Errorf("converted artifact not found at %s", path)
	}

	dir := path
	modelPath := ""
	if !info.IsDir() {
		dir = filepath.Dir(path)
		if filepath.Base(path) != MetadataFileName {
			modelPath = path
		}
	}
	if modelPath == "" {
		modelPath = filepath.Join(dir, ModelFileName)
	}

	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return "", Metadata{}, fmt.Errorf("bundle model not found at %s", modelPath)
	}

	meta, err := ReadMetadata(filepath.Join(dir, MetadataFileName))
	if err != nil {
		return "", Metadata{}, err
	}
	return modelPath, meta, nil
}

// ReadMetadata loads and validates a metadata sidecar.
func ReadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("bundle metadata not found at %s", path)
	}

	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("parse bundle metadata: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

// Write lays out a deployment bundle under dir: the model file copied in
// plus the metadata sidecar. Parent directories are created as needed.
// The model path inside the bundle is returned.
func Write(dir string, meta Metadata, modelSrc string) (string, error) {
	if err := meta.Validate(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create bundle dir: %w", err)
	}

	modelDst := filepath.Join(dir, ModelFileName)
	srcAbs, _ := filepath.Abs(modelSrc)
	dstAbs, _ := filepath.Abs(modelDst)
	// Repackaging in place must not truncate the model.
	if srcAbs != dstAbs {
		if err := copyFile(modelSrc, modelDst); err != nil {
			return "", fmt.Errorf("copy model: %w", err)
		}
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode bundle metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, MetadataFileName), data, 0o644); err != nil {
		return "", fmt.Errorf("write bundle metadata: %w", err)
	}
	return modelDst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
