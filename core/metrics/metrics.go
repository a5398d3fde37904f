package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Finality label values
const (
	FinalityFinal   = "final"
	FinalityInterim = "interim"
)

// GraphMetrics holds the Prometheus metrics of the extraction feed
type GraphMetrics struct {
	SegmentsTotal     *prometheus.CounterVec
	ExtractionsTotal  prometheus.Counter
	ClearsTotal       prometheus.Counter
	Entities          prometheus.Gauge
	Relationships     prometheus.Gauge
	ExtractionSeconds prometheus.Histogram
}

// NewGraphMetrics registers the metrics on reg
func NewGraphMetrics(reg prometheus.Registerer) *GraphMetrics {
	factory := promauto.With(reg)

	return &GraphMetrics{
		SegmentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "speechgraph_segments_total",
				Help: "Total transcript segments received",
			},
			[]string{"finality"},
		),
		ExtractionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "speechgraph_extractions_total",
				Help: "Total text chunks passed to the extraction engine",
			},
		),
		ClearsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "speechgraph_clears_total",
				Help: "Total full resets of the graph",
			},
		),
		Entities: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "speechgraph_entities",
				Help: "Current number of entities in the graph",
			},
		),
		Relationships: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "speechgraph_relationships",
				Help: "Current number of relationships in the graph",
			},
		),
		ExtractionSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "speechgraph_extraction_seconds",
				Help:    "Time spent extracting a single chunk",
				Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
			},
		),
	}
}

// RecordSegment counts a received segment
func (m *GraphMetrics) RecordSegment(isFinal bool) {
	finality := FinalityInterim
	if isFinal {
		finality = FinalityFinal
	}
	m.SegmentsTotal.WithLabelValues(finality).Inc()
}

// RecordExtraction counts an extraction and its latency
func (m *GraphMetrics) RecordExtraction(seconds float64) {
	m.ExtractionsTotal.Inc()
	m.ExtractionSeconds.Observe(seconds)
}

// SetGraphSize updates the graph size gauges
func (m *GraphMetrics) SetGraphSize(entities, relationships int) {
	m.Entities.Set(float64(entities))
	m.Relationships.Set(float64(relationships))
}

// RecordClear counts a reset and zeroes the size gauges
func (m *GraphMetrics) RecordClear() {
	m.ClearsTotal.Inc()
	m.SetGraphSize(0, 0)
}
