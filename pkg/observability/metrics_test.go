package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	if metrics == nil {
		t.Fatal("NewMetrics returned nil")
	}
	if metrics.FilesScannedTotal == nil {
		t.Error("FilesScannedTotal is nil")
	}
	if metrics.CyclesFound == nil {
		t.Error("CyclesFound is nil")
	}
	if metrics.AnalysisDuration == nil {
		t.Error("AnalysisDuration is nil")
	}
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewMetrics(registry)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()
	NewMetrics(registry)
}

func TestMetrics_Record(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.RecordScan(10, 2, 1)
	metrics.RecordScan(5, 0, 0)
	metrics.RecordCacheLookup(true)
	metrics.RecordCacheLookup(false)
	metrics.RecordCacheLookup(false)
	metrics.RecordGraph(4, 7)
	metrics.RecordResult("cycles", 3)
	metrics.RecordPhase("detect", 5*time.Millisecond)

	if got := testutil.ToFloat64(metrics.FilesScannedTotal); got != 15 {
		t.Errorf("FilesScannedTotal = %v, want 15", got)
	}
	if got := testutil.ToFloat64(metrics.FilesSkippedTotal); got != 2 {
		t.Errorf("FilesSkippedTotal = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.FileReadFailuresTotal); got != 1 {
		t.Errorf("FileReadFailuresTotal = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.ImportCacheHitsTotal); got != 1 {
		t.Errorf("ImportCacheHitsTotal = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.ImportCacheMissesTotal); got != 2 {
		t.Errorf("ImportCacheMissesTotal = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.GraphEdges); got != 7 {
		t.Errorf("GraphEdges = %v, want 7", got)
	}
	if got := testutil.ToFloat64(metrics.CyclesFound); got != 3 {
		t.Errorf("CyclesFound = %v, want 3", got)
	}
	if got := testutil.ToFloat64(metrics.AnalysesTotal.WithLabelValues("cycles")); got != 1 {
		t.Errorf("AnalysesTotal{cycles} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(metrics.AnalysisDuration); got != 1 {
		t.Errorf("AnalysisDuration series = %d, want 1", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var metrics *Metrics
	metrics.RecordScan(1, 1, 1)
	metrics.RecordCacheLookup(true)
	metrics.RecordGraph(1, 1)
	metrics.RecordResult("passed", 0)
	metrics.RecordPhase("scan", time.Second)
}

func TestWriteTextfile(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	metrics.RecordResult("passed", 0)

	path := filepath.Join(t.TempDir(), "pkgcycle.prom")
	if err := WriteTextfile(registry, path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read textfile: %v", err)
	}
	if !strings.Contains(string(data), `pkgcycle_analyses_total{status="passed"} 1`) {
		t.Errorf("textfile missing analyses counter:\n%s", data)
	}
}
