package backend

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

// InitRuntime prepares the shared onnxruntime environment. libraryPath
// overrides the default shared-library location when set. Call once per
// process before constructing any backend.
func InitRuntime(libraryPath string) error {
	if libraryPath != "" {
		ort.SetSharedLibraryPath(libraryPath)
	}
	if ort.IsInitialized() {
		return nil
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("initialize onnxruntime: %w", err)
	}
	return nil
}

// ShutdownRuntime tears the environment down after all backends are closed.
func ShutdownRuntime() error {
	if !ort.IsInitialized() {
		return nil
	}
	return ort.DestroyEnvironment()
}

// Interface is a model's declared single-input, single-output signature.
// Dimensions may contain -1 where the model leaves them dynamic.
type Interface struct {
	InputName   string
	InputShape  []int64
	OutputName  string
	OutputShape []int64
}

// Introspect reads the declared interface of a model file without building a
// session. Models with several inputs or outputs report only the first of
// each.
func Introspect(modelPath string) (Interface, error) {
	if err := SniffONNX(modelPath); err != nil {
		return Interface{}, err
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return Interface{}, fmt.Errorf("inspect model %s: %w", modelPath, err)
	}
	if len(inputs) < 1 || len(outputs) < 1 {
		return Interface{}, fmt.Errorf("model %s declares %d inputs and %d outputs", modelPath, len(inputs), len(outputs))
	}

	return Interface{
		InputName:   inputs[0].Name,
		InputShape:  inputs[0].Dimensions,
		OutputName:  outputs[0].Name,
		OutputShape: outputs[0].Dimensions,
	}, nil
}
