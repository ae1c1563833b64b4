package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"modelparity/internal/backend"
	"modelparity/internal/bundle"
)

func main() {
	modelPath := flag.String("model", "", "Path to an ONNX model or deployment bundle")
	ortLibrary := flag.String("ort-lib", "", "Path to the onnxruntime shared library")
	flag.Parse()

	if *modelPath == "" {
		log.Fatal("--model is required")
	}

	if err := backend.InitRuntime(*ortLibrary); err != nil {
		log.Fatalf("Failed to initialize onnxruntime: %v", err)
	}
	defer backend.ShutdownRuntime()

	// Bundles get their sidecar printed before the model interface.
	target := *modelPath
	if model, meta, err := bundle.Resolve(*modelPath); err == nil {
		target = model

		fmt.Println("=== Bundle Metadata ===")
		fmt.Printf("input_shape: %v\n", meta.InputShape)
		fmt.Printf("output_shape: %v\n", meta.OutputShape)
		fmt.Printf("image_size: %d\n", meta.ImageSize)
		fmt.Printf("scale: %v\n", meta.Normalization.Scale)
		fmt.Printf("bias: %v\n", meta.Normalization.Bias)
		if len(meta.Classes) > 0 {
			fmt.Printf("classes: %s\n", strings.Join(meta.Classes, ", "))
		}
		fmt.Println()
	}

	iface, err := backend.Introspect(target)
	if err != nil {
		log.Fatalf("Failed to inspect model: %v", err)
	}

	fmt.Println("=== Model Interface ===")
	fmt.Printf("input: %s %v\n", iface.InputName, iface.InputShape)
	fmt.Printf("output: %s %v\n", iface.OutputName, iface.OutputShape)
}
