package transcript

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/speechgraph/core/metrics"
	"github.com/siherrmann/speechgraph/core/pipeline"
	"github.com/siherrmann/speechgraph/model"
)

// Feed receives transcript segments from a speech source and forwards
// their text to the extraction engine one call at a time.
type Feed struct {
	mu       sync.Mutex
	engine   pipeline.Extractor
	config   model.Config
	segments []model.Segment
	index    map[string]int // segment id -> position in segments
	metrics  *metrics.GraphMetrics
	log      *slog.Logger
}

// NewFeed creates a feed in front of engine. metrics may be nil.
func NewFeed(engine pipeline.Extractor, config model.Config, logger *slog.Logger, m *metrics.GraphMetrics) *Feed {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Feed{
		engine:  engine,
		config:  config,
		index:   make(map[string]int),
		metrics: m,
		log:     logger,
	}
}

// Push records a segment and extracts from it if it is final, or if
// interim extraction is enabled. A segment with a known id replaces the
// earlier version, a segment without id gets a new one. It returns the current graph and whether extraction ran.
func (f *Feed) Push(segment model.Segment) (model.GraphData, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if segment.ID == uuid.Nil {
		segment.ID = uuid.New()
	}
	if segment.Timestamp.IsZero() {
		segment.Timestamp = time.Now()
	}
	f.record(segment)
	if f.metrics != nil {
		f.metrics.RecordSegment(segment.IsFinal)
	}

	if !segment.IsFinal && !f.config.ExtractInterim {
		return f.engine.Snapshot(), false
	}
	if strings.TrimSpace(segment.Text) == "" {
		return f.engine.Snapshot(), false
	}

	start := time.Now()
	result := f.engine.Ingest(segment.Text)
	elapsed := time.Since(start)

	if f.metrics != nil {
		f.metrics.RecordExtraction(elapsed.Seconds())
		f.metrics.SetGraphSize(len(result.Entities), len(result.Relationships))
	}

	f.log.Debug("Extracted segment",
		slog.String("segment_id", segment.ID.String()),
		slog.Bool("is_final", segment.IsFinal),
		slog.Int("entities", len(result.Entities)),
		slog.Int("relationships", len(result.Relationships)),
	)

	return f.engine.Snapshot(), true
}

// Segments returns the recorded transcript in arrival order
func (f *Feed) Segments() []model.Segment {
	f.mu.Lock()
	defer f.mu.Unlock()

	segments := make([]model.Segment, len(f.segments))
	copy(segments, f.segments)
	return segments
}

// Graph returns the current graph
func (f *Feed) Graph() model.GraphData {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.engine.Snapshot()
}

// Clear wipes the transcript and the extracted graph
func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.segments = nil
	f.index = make(map[string]int)
	f.engine.Clear()
	if f.metrics != nil {
		f.metrics.RecordClear()
	}

	f.log.Info("Cleared transcript and graph")
}

func (f *Feed) record(segment model.Segment) {
	id := segment.ID.String()
	if i, ok := f.index[id]; ok {
		f.segments[i] = segment
		return
	}
	f.index[id] = len(f.segments)
	f.segments = append(f.segments, segment)
}
