package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"modelparity/internal/backend"
	"modelparity/internal/compare"
	"modelparity/internal/config"
	"modelparity/internal/imageio"
	"modelparity/internal/logger"
	"modelparity/internal/metrics"
	"modelparity/internal/modelspec"
	"modelparity/internal/report"
)

var (
	checkpointPath = flag.String("checkpoint", "", "Path to the full-precision ONNX checkpoint")
	convertedPath  = flag.String("converted", "", "Path to the converted model or deployment bundle")
	imagesDir      = flag.String("images", "", "Directory of evaluation images (png, jpg, jpeg)")
	maxSamples     = flag.Int("max-samples", 100, "Cap on evaluated images, 0 means all")
	imageSize      = flag.Int("image-size", 224, "Square resize target in pixels")
	numClasses     = flag.Int("num-classes", 14, "Expected number of output classes")
	failFast       = flag.Bool("fail-fast", false, "Abort on the first decode or inference failure")
	reportPath     = flag.String("report", "", "Optional Arrow IPC file for the per-sample difference matrix")
	ortLibrary     = flag.String("ort-lib", "", "Path to the onnxruntime shared library")
	logLevel       = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat      = flag.String("log-format", "console", "Log format: console or json")
)

func main() {
	flag.Parse()

	if *checkpointPath == "" || *convertedPath == "" || *imagesDir == "" {
		fmt.Println("Error: --checkpoint, --converted and --images flags are required")
		flag.Usage()
		os.Exit(1)
	}

	logger.Setup(*logLevel, *logFormat)

	cfg := config.Config{
		CheckpointPath: *checkpointPath,
		ConvertedPath:  *convertedPath,
		ImagesDir:      *imagesDir,
		MaxSamples:     *maxSamples,
		ImageSize:      *imageSize,
		NumClasses:     *numClasses,
		FailFast:       *failFast,
		ReportPath:     *reportPath,
		OrtLibraryPath: *ortLibrary,
		LogLevel:       *logLevel,
		LogFormat:      *logFormat,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Discovery happens before the backends load; an empty directory never
	// touches a model.
	paths, err := imageio.Discover(cfg.ImagesDir, cfg.MaxSamples)
	if err != nil {
		log.Fatalf("Failed to list images: %v", err)
	}
	if len(paths) == 0 {
		fmt.Printf("No images found in %s (supported: png, jpg, jpeg).\n", cfg.ImagesDir)
		return
	}
	metrics.RecordDiscovery(len(paths))
	if cfg.Capped() {
		log.Printf("Selected %d images from %s (cap %d)", len(paths), cfg.ImagesDir, cfg.MaxSamples)
	} else {
		log.Printf("Selected %d images from %s", len(paths), cfg.ImagesDir)
	}

	if err := backend.InitRuntime(cfg.OrtLibraryPath); err != nil {
		log.Fatalf("Failed to initialize onnxruntime: %v", err)
	}
	defer backend.ShutdownRuntime()

	spec := modelspec.New(cfg.ImageSize, cfg.NumClasses)

	log.Printf("Loading checkpoint from %s...", cfg.CheckpointPath)
	native, err := backend.NewNative(cfg.CheckpointPath, spec)
	if err != nil {
		log.Fatalf("Failed to load checkpoint: %v", err)
	}
	defer native.Close()

	log.Printf("Loading converted model from %s...", cfg.ConvertedPath)
	converted, err := backend.NewConverted(cfg.ConvertedPath)
	if err != nil {
		log.Fatalf("Failed to load converted model: %v", err)
	}
	defer converted.Close()

	res, err := compare.Run(native, converted, paths, compare.Options{
		FailFast: cfg.FailFast,
		Out:      os.Stdout,
	})
	if err != nil {
		log.Fatalf("Comparison aborted: %v", err)
	}

	summary, err := compare.Summarize(res.Diffs)
	if errors.Is(err, compare.ErrNoComparisons) {
		fmt.Println("No valid comparisons made (diff list is empty).")
		return
	}
	if err != nil {
		log.Fatalf("Failed to summarize differences: %v", err)
	}

	fmt.Println()
	report.Render(os.Stdout, summary, native.Name(), converted.Name())

	metrics.RecordRunSummary(summary.OverallMean, summary.OverallMax, summary.ClassMax)
	logger.Log.Info("run complete",
		"compared", res.Compared,
		"skipped", res.Skipped,
		"failed", res.Failed,
		"overall_mean", summary.OverallMean,
		"overall_max", summary.OverallMax)

	if cfg.ReportPath != "" {
		runInfo := map[string]string{
			"checkpoint":  cfg.CheckpointPath,
			"converted":   cfg.ConvertedPath,
			"images":      cfg.ImagesDir,
			"image_size":  strconv.Itoa(cfg.ImageSize),
			"num_classes": strconv.Itoa(cfg.NumClasses),
		}
		if err := report.WriteDiffs(cfg.ReportPath, res.Paths, res.Diffs, runInfo); err != nil {
			log.Fatalf("Failed to export difference matrix: %v", err)
		}
		log.Printf("Wrote difference matrix to %s (%d rows)", cfg.ReportPath, res.Compared)
	}
}
