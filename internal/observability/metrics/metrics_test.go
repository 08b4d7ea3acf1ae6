package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRAGMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRAGMetrics(reg)

	m.ObserveSearch("conversations", "ok")
	m.ObserveSearch("examples", "error")
	m.ObserveEmbeddingFailure()
	m.ObserveWrite("ok")
	m.ObserveContextBuild(0.05)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registered metric families")
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *RAGMetrics
	m.ObserveSearch("conversations", "ok")
	m.ObserveEmbeddingFailure()
	m.ObserveWrite("error")
	m.ObserveContextBuild(1)
}
