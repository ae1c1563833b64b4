package backend

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

// session owns one ONNX session with pre-allocated input and output tensors
// reused across samples.
type session struct {
	sess   *ort.AdvancedSession
	input  *ort.Tensor[float32]
	output *ort.Tensor[float32]
}

func newSession(modelPath, inputName, outputName string, inputShape, outputShape []int64) (*session, error) {
	input, err := ort.NewEmptyTensor[float32](ort.NewShape(inputShape...))
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(outputShape...))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("create output tensor: %w", err)
	}

	sess, err := ort.NewAdvancedSession(modelPath,
		[]string{inputName}, []string{outputName},
		[]ort.ArbitraryTensor{input}, []ort.ArbitraryTensor{output},
		nil)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &session{sess: sess, input: input, output: output}, nil
}

// run copies data into the input tensor, executes the graph, and returns a
// copy of the output. The output buffer is reused between runs, so callers
// always get their own slice.
func (s *session) run(data []float32) ([]float32, error) {
	in := s.input.GetData()
	if len(data) != len(in) {
		return nil, fmt.Errorf("input length %d does not match tensor size %d", len(data), len(in))
	}
	copy(in, data)

	if err := s.sess.Run(); err != nil {
		return nil, err
	}

	raw := s.output.GetData()
	out := make([]float32, len(raw))
	copy(out, raw)
	return out, nil
}

func (s *session) destroy() {
	if s.input != nil {
		s.input.Destroy()
	}
	if s.output != nil {
		s.output.Destroy()
	}
	if s.sess != nil {
		s.sess.Destroy()
	}
}
