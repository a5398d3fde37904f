package speechgraph

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/siherrmann/speechgraph/core/graph"
	"github.com/siherrmann/speechgraph/core/metrics"
	"github.com/siherrmann/speechgraph/core/pipeline"
	"github.com/siherrmann/speechgraph/core/transcript"
	"github.com/siherrmann/speechgraph/helper"
	"github.com/siherrmann/speechgraph/model"
	"github.com/siherrmann/speechgraph/server"
)

// SpeechGraph provides a unified interface to the extraction engine,
// the transcript feed and the graph queries.
type SpeechGraph struct {
	Config   model.Config
	Feed     *transcript.Feed
	Metrics  *metrics.GraphMetrics
	Registry *prometheus.Registry
	// Logging
	log *slog.Logger
}

// NewSpeechGraph creates a new SpeechGraph logging to stdout
func NewSpeechGraph(config model.Config) (*SpeechGraph, error) {
	level, err := config.SlogLevel()
	if err != nil {
		return nil, helper.NewError("parse log level", err)
	}
	return NewSpeechGraphWithLogger(config, helper.NewLogger(os.Stdout, level)), nil
}

// NewSpeechGraphWithLogger creates a new SpeechGraph with its own metrics registry
func NewSpeechGraphWithLogger(config model.Config, logger *slog.Logger) *SpeechGraph {
	registry := prometheus.NewRegistry()
	m := metrics.NewGraphMetrics(registry)

	return &SpeechGraph{
		Config:   config,
		Feed:     transcript.NewFeed(pipeline.NewEngine(), config, logger.With(slog.String("component", "feed")), m),
		Metrics:  m,
		Registry: registry,
		log:      logger,
	}
}

// Ingest extracts from a finalized text chunk and returns the complete graph state
func (g *SpeechGraph) Ingest(text string) model.ExtractionResult {
	data, _ := g.Feed.Push(model.NewSegment(text, true))
	return toResult(data)
}

// Push forwards a transcript segment to the feed
func (g *SpeechGraph) Push(segment model.Segment) (model.GraphData, bool) {
	return g.Feed.Push(segment)
}

// Graph returns the current node/link graph
func (g *SpeechGraph) Graph() model.GraphData {
	return g.Feed.Graph()
}

// Clear wipes transcript and graph
func (g *SpeechGraph) Clear() {
	g.Feed.Clear()
}

// Neighbors performs breadth-first search from an entity over the current graph
func (g *SpeechGraph) Neighbors(entityID string, maxHops int, relationTypes []model.RelationType) ([]*graph.TraversalResult, error) {
	return graph.BFS(g.Graph(), entityID, maxHops, relationTypes, true)
}

// NewServer creates an HTTP server exposing this instance
func (g *SpeechGraph) NewServer() (*server.Server, error) {
	if err := g.Config.Validate(); err != nil {
		return nil, helper.NewError("validate config", err)
	}
	return server.New(server.Config{
		ListenAddr:  g.Config.Listen,
		CORSOrigins: g.Config.CORSOrigins,
	}, g.Feed, g.Registry, g.log.With(slog.String("component", "server")))
}

// toResult rebuilds the extraction result from the graph projection
// the feed returned for this push.
func toResult(data model.GraphData) model.ExtractionResult {
	result := model.ExtractionResult{
		Entities:      make([]model.Entity, 0, len(data.Nodes)),
		Relationships: make([]model.Relationship, 0, len(data.Links)),
	}
	for _, n := range data.Nodes {
		result.Entities = append(result.Entities, model.Entity{
			ID:       n.ID,
			Text:     n.Label,
			Type:     n.Type,
			Mentions: n.Mentions,
		})
	}
	for _, l := range data.Links {
		result.Relationships = append(result.Relationships, model.Relationship{
			ID:         model.RelationshipID(l.Source, l.Target, l.Type),
			Source:     l.Source,
			Target:     l.Target,
			Type:       l.Type,
			Confidence: l.Confidence,
		})
	}
	return result
}
