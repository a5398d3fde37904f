package pipeline

import "github.com/siherrmann/speechgraph/model"

// Extractor is the contract of the extraction engine as seen by callers
// feeding it text and reading back the graph.
type Extractor interface {
	Ingest(text string) model.ExtractionResult
	Snapshot() model.GraphData
	Clear()
}

// EntityLookup reports whether a canonical key is already registered
type EntityLookup func(key string) bool

// EntityExtractFunc finds entity candidates of one type in text.
// The lookup reflects the entity table at the moment each match is made.
type EntityExtractFunc func(text string, known EntityLookup, emit func(surface string))

// RelationExtractFunc finds relationship candidates in text as raw
// (left token, right token) pairs which still have to be resolved.
type RelationExtractFunc func(text string, emit func(left, right string))

// EntityPass pairs an entity type with the function detecting it
type EntityPass struct {
	Type    model.EntityType
	Extract EntityExtractFunc
}

// RelationPass pairs a relation type with the function detecting it
type RelationPass struct {
	Type    model.RelationType
	Extract RelationExtractFunc
}

var _ Extractor = (*Engine)(nil)
