package backend

import (
	"fmt"
	"io"
	"os"
)

// ONNX serializes as protobuf; field 1 (ir_version, varint) makes 0x08 the
// leading byte of every well-formed file.
const onnxLeadingByte = 0x08

type ErrNotONNX struct {
	Path    string
	Leading byte
}

func (e ErrNotONNX) Error() string {
	return fmt.Sprintf("not an ONNX model: %s (leading byte %#02x)", e.Path, e.Leading)
}

// SniffONNX rejects files that cannot be ONNX before they reach the runtime.
func SniffONNX(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open model: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var lead [1]byte
	if _, err := io.ReadFull(f, lead[:]); err != nil {
		return fmt.Errorf("read model header: %w", err)
	}
	if lead[0] != onnxLeadingByte {
		return ErrNotONNX{Path: path, Leading: lead[0]}
	}
	return nil
}
