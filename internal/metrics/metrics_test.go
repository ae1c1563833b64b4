package metrics

import (
	"testing"
	"time"
)

func TestMetricsExistence(t *testing.T) {
	// Verify our exported metrics functions exist and don't panic
	RecordDiscovery(42)
	RecordComparison()
	RecordShapeMismatch()
	RecordInference("native", 10*time.Millisecond)
	// Functions exist and work - no assertion needed
}

func TestRecordSampleFailureStages(t *testing.T) {
	RecordSampleFailure("decode")
	RecordSampleFailure("inference")
	RecordSampleFailure("decode")
}

func TestRecordInferenceMultipleBackends(t *testing.T) {
	RecordInference("native", 50*time.Millisecond)
	RecordInference("converted", 30*time.Millisecond)
	RecordInference("native", 45*time.Millisecond)

	// Histogram should accumulate per backend - just verify no panic
}

func TestRecordPreprocess(t *testing.T) {
	RecordPreprocess("native", 2*time.Millisecond)
	RecordPreprocess("converted", 1*time.Millisecond)
}

func TestRecordDiscoveryChanges(t *testing.T) {
	RecordDiscovery(100)
	RecordDiscovery(3) // gauge should update
	// Just verify no panic
}

func TestRecordRunSummary(t *testing.T) {
	RecordRunSummary(0.000123, 0.00456, []float64{0.001, 0.002, 0.004})
	RecordRunSummary(0, 0, nil)
}

func TestRecordBundleWrite(t *testing.T) {
	RecordBundleWrite()
	RecordBundleWrite()
}

func TestComparedTotalAtomic(t *testing.T) {
	// Test atomic operations
	initial := comparedTotal.Load()
	RecordComparison()
	after := comparedTotal.Load()
	if after != initial+1 {
		t.Errorf("Expected comparedTotal to increment by 1, got %d -> %d", initial, after)
	}
}
