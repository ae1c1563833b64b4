package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"strings"

	"modelparity/internal/backend"
	"modelparity/internal/bundle"
	"modelparity/internal/logger"
	"modelparity/internal/metrics"
	"modelparity/internal/modelspec"
)

var (
	checkpointPath = flag.String("checkpoint", "", "Path to the trained ONNX checkpoint")
	convertedPath  = flag.String("converted", "", "Externally converted model to embed (defaults to the checkpoint)")
	outDir         = flag.String("out", "", "Bundle output directory")
	imageSize      = flag.Int("image-size", 224, "Square resize target in pixels")
	numClasses     = flag.Int("num-classes", 14, "Number of output classes")
	classLabels    = flag.String("labels", "", "Comma-separated class labels (defaults to generated names)")
	ortLibrary     = flag.String("ort-lib", "", "Path to the onnxruntime shared library")
	logLevel       = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat      = flag.String("log-format", "console", "Log format: console or json")
)

// exampleImage is the synthetic trace input: uniform mid-gray.
func exampleImage(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	gray := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, gray)
		}
	}
	return img
}

func main() {
	flag.Parse()

	if *checkpointPath == "" || *outDir == "" {
		fmt.Println("Error: --checkpoint and --out flags are required")
		flag.Usage()
		os.Exit(1)
	}

	logger.Setup(*logLevel, *logFormat)

	spec := modelspec.New(*imageSize, *numClasses)

	labels := spec.DefaultLabels()
	if *classLabels != "" {
		labels = strings.Split(*classLabels, ",")
		for i := range labels {
			labels[i] = strings.TrimSpace(labels[i])
		}
		if len(labels) != spec.NumClasses {
			log.Fatalf("Expected %d labels, got %d", spec.NumClasses, len(labels))
		}
	}

	if err := backend.InitRuntime(*ortLibrary); err != nil {
		log.Fatalf("Failed to initialize onnxruntime: %v", err)
	}
	defer backend.ShutdownRuntime()

	log.Printf("Validating checkpoint %s...", *checkpointPath)
	native, err := backend.NewNative(*checkpointPath, spec)
	if err != nil {
		log.Fatalf("Checkpoint rejected: %v", err)
	}
	defer native.Close()

	// Trace one synthetic input end to end before anything is written.
	example := exampleImage(spec.ImageSize)
	nativeOut, err := native.Infer(example)
	if err != nil {
		log.Fatalf("Trace run failed: %v", err)
	}
	if len(nativeOut) != spec.NumClasses {
		log.Fatalf("Trace run produced %d outputs, want %d", len(nativeOut), spec.NumClasses)
	}
	log.Printf("Trace run OK: %d outputs", len(nativeOut))

	modelSrc := *convertedPath
	if modelSrc == "" {
		log.Printf("No converted model given, embedding the checkpoint itself")
		modelSrc = *checkpointPath
	}

	iface, err := backend.Introspect(modelSrc)
	if err != nil {
		log.Fatalf("Converted model rejected: %v", err)
	}
	if err := spec.CheckInput(iface.InputShape); err != nil {
		log.Fatalf("Converted model rejected: %v", err)
	}
	if err := spec.CheckOutput(iface.OutputShape); err != nil {
		log.Fatalf("Converted model rejected: %v", err)
	}

	scale, bias := spec.ScaleBias()
	meta := bundle.Metadata{
		InputName:   iface.InputName,
		OutputName:  iface.OutputName,
		InputShape:  spec.InputShape(),
		OutputShape: spec.OutputShape(),
		Classes:     labels,
		ImageSize:   spec.ImageSize,
		Normalization: bundle.Normalization{
			Scale: scale[:],
			Bias:  bias[:],
		},
	}

	modelPath, err := bundle.Write(*outDir, meta, modelSrc)
	if err != nil {
		log.Fatalf("Failed to write bundle: %v", err)
	}
	metrics.RecordBundleWrite()

	// Reload the finished bundle to prove it is self-contained.
	check, err := backend.NewConverted(*outDir)
	if err != nil {
		log.Fatalf("Bundle verification failed: %v", err)
	}
	defer check.Close()

	bundleOut, err := check.Infer(example)
	if err != nil {
		log.Fatalf("Bundle verification failed: %v", err)
	}
	if len(bundleOut) != len(nativeOut) {
		log.Fatalf("Bundle verification failed: %d outputs, want %d", len(bundleOut), len(nativeOut))
	}

	var maxDiff float64
	for i := range nativeOut {
		d := float64(nativeOut[i] - bundleOut[i])
		if d < 0 {
			d = -d
		}
		if d > maxDiff {
			maxDiff = d
		}
	}
	fmt.Printf("Max |checkpoint - bundle| on trace input: %.6f\n", maxDiff)
	fmt.Printf("Saved deployment bundle to: %s\n", modelPath)
}
