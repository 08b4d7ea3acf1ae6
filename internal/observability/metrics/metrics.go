package metrics

import "github.com/prometheus/client_golang/prometheus"

// RAGMetrics exposes counters/histograms for the retrieval pipeline.
type RAGMetrics struct {
	searchesTotal       *prometheus.CounterVec
	embeddingFailures   prometheus.Counter
	writesTotal         *prometheus.CounterVec
	contextBuildSeconds prometheus.Histogram
}

func NewRAGMetrics(reg prometheus.Registerer) *RAGMetrics {
	m := &RAGMetrics{
		searchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salesai",
			Subsystem: "rag",
			Name:      "searches_total",
			Help:      "Total vector similarity searches per collection",
		}, []string{"collection", "status"}),
		embeddingFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salesai",
			Subsystem: "rag",
			Name:      "embedding_failures_total",
			Help:      "Total embedding provider failures",
		}),
		writesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salesai",
			Subsystem: "rag",
			Name:      "writes_total",
			Help:      "Total conversation record writes",
		}, []string{"status"}),
		contextBuildSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "salesai",
			Subsystem: "rag",
			Name:      "context_build_seconds",
			Help:      "Latency of full RAG context builds",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.searchesTotal, m.embeddingFailures, m.writesTotal, m.contextBuildSeconds)
	return m
}

func (m *RAGMetrics) ObserveSearch(collection, status string) {
	if m == nil {
		return
	}
	m.searchesTotal.WithLabelValues(collection, status).Inc()
}

func (m *RAGMetrics) ObserveEmbeddingFailure() {
	if m == nil {
		return
	}
	m.embeddingFailures.Inc()
}

func (m *RAGMetrics) ObserveWrite(status string) {
	if m == nil {
		return
	}
	m.writesTotal.WithLabelValues(status).Inc()
}

func (m *RAGMetrics) ObserveContextBuild(seconds float64) {
	if m == nil {
		return
	}
	m.contextBuildSeconds.Observe(seconds)
}
