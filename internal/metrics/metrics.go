package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var comparedTotal atomic.Int64

var (
	SamplesDiscovered = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "samples_discovered",
		Help: "Number of candidate images selected for the current run",
	})

	SamplesCompared = promauto.NewCounter(prometheus.CounterOpts{
		Name: "samples_compared_total",
		Help: "The total number of samples contributing a difference row",
	})

	ShapeMismatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shape_mismatches_total",
		Help: "Total number of samples skipped because backend output lengths differed",
	})

	SampleFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sample_failures_total",
		Help: "Total number of per-sample failures by stage",
	}, []string{"stage"})

	InferenceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inference_duration_seconds",
		Help:    "Histogram of single-image inference times per backend",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend"})

	PreprocessDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "preprocess_duration_seconds",
		Help:    "Histogram of image preprocessing times per backend",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend"})

	DiffOverallMean = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "diff_overall_mean",
		Help: "Overall mean absolute difference of the last completed run",
	})

	DiffOverallMax = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "diff_overall_max",
		Help: "Overall max absolute difference of the last completed run",
	})

	DiffClassMax = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "diff_class_max",
		Help:    "Distribution of per-class max absolute differences",
		Buckets: []float64{0, 1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 0.1, 1.0},
	})

	BundleWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bundle_writes_total",
		Help: "Total number of deployment bundles written",
	})
)

func RecordDiscovery(count int) {
	SamplesDiscovered.Set(float64(count))
}

func RecordComparison() {
	SamplesCompared.Inc()
	comparedTotal.Add(1)
}

func RecordShapeMismatch() {
	ShapeMismatches.Inc()
}

// RecordSampleFailure counts a skipped sample; stage is "decode" or "inference".
func RecordSampleFailure(stage string) {
	SampleFailures.WithLabelValues(stage).Inc()
}

func RecordInference(backend string, duration time.Duration) {
	InferenceDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

func RecordPreprocess(backend string, duration time.Duration) {
	PreprocessDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

// RecordRunSummary records the aggregate statistics of a completed run.
func RecordRunSummary(overallMean, overallMax float64, classMax []float64) {
	DiffOverallMean.Set(overallMean)
	DiffOverallMax.Set(overallMax)
	for _, v := range classMax {
		DiffClassMax.Observe(v)
	}
}

func RecordBundleWrite() {
	BundleWrites.Inc()
}
