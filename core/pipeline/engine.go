package pipeline

import (
	"strconv"

	"github.com/siherrmann/speechgraph/model"
)

const entityIDPrefix = "entity_"

// Engine extracts entities and relationships from text chunks and
// accumulates them into a deduplicated graph.
// It is not safe for concurrent use, callers serialize Ingest and Clear.
type Engine struct {
	entityPasses   []EntityPass
	relationPasses []RelationPass

	entities      []*model.Entity
	entityIndex   map[string]int // canonical key -> position in entities
	relationships []model.Relationship
	relationIndex map[string]struct{}
	nextID        int
}

// NewEngine creates an engine with empty stores and the default passes
func NewEngine() *Engine {
	e := &Engine{
		entityPasses:   DefaultEntityPasses(),
		relationPasses: DefaultRelationPasses(),
	}
	e.Clear()
	return e
}

// Ingest runs all passes over text and returns the complete current state.
// Every entity pass scans the full input on its own, then the relationship
// passes resolve their tokens against the updated entity table.
func (e *Engine) Ingest(text string) model.ExtractionResult {
	for _, pass := range e.entityPasses {
		entityType := pass.Type
		pass.Extract(text, e.known, func(surface string) {
			e.upsertEntity(surface, entityType)
		})
	}

	for _, pass := range e.relationPasses {
		relationType := pass.Type
		pass.Extract(text, func(left, right string) {
			e.addRelationship(left, right, relationType)
		})
	}

	return model.ExtractionResult{
		Entities:      e.entityList(),
		Relationships: e.relationshipList(),
	}
}

// Snapshot projects the current state into nodes and links
func (e *Engine) Snapshot() model.GraphData {
	data := model.GraphData{
		Nodes: make([]model.Node, 0, len(e.entities)),
		Links: make([]model.Link, 0, len(e.relationships)),
	}
	for _, entity := range e.entities {
		data.Nodes = append(data.Nodes, model.Node{
			ID:       entity.ID,
			Label:    entity.Text,
			Type:     entity.Type,
			Mentions: entity.Mentions,
		})
	}
	for _, rel := range e.relationships {
		data.Links = append(data.Links, model.Link{
			Source:     rel.Source,
			Target:     rel.Target,
			Type:       rel.Type,
			Confidence: rel.Confidence,
		})
	}
	return data
}

// Clear wipes both stores and restarts id generation
func (e *Engine) Clear() {
	e.entities = nil
	e.entityIndex = make(map[string]int)
	e.relationships = nil
	e.relationIndex = make(map[string]struct{})
	e.nextID = 0
}

// Len returns the number of entities and relationships
func (e *Engine) Len() (entities int, relationships int) {
	return len(e.entities), len(e.relationships)
}

// Entity looks up an entity by surface form, case-insensitively
func (e *Engine) Entity(text string) (model.Entity, bool) {
	entity := e.lookup(model.CanonicalKey(text))
	if entity == nil {
		return model.Entity{}, false
	}
	return *entity, true
}

func (e *Engine) known(key string) bool {
	_, ok := e.entityIndex[key]
	return ok
}

func (e *Engine) lookup(key string) *model.Entity {
	i, ok := e.entityIndex[key]
	if !ok {
		return nil
	}
	return e.entities[i]
}

// upsertEntity counts a sighting of an existing entity or registers a new
// one. Text and type of an existing entity are never overwritten.
func (e *Engine) upsertEntity(text string, entityType model.EntityType) {
	key := model.CanonicalKey(text)
	if existing := e.lookup(key); existing != nil {
		existing.Mentions++
		return
	}

	e.entityIndex[key] = len(e.entities)
	e.entities = append(e.entities, &model.Entity{
		ID:       entityIDPrefix + strconv.Itoa(e.nextID),
		Text:     text,
		Type:     entityType,
		Mentions: 1,
	})
	e.nextID++
}

// addRelationship links two tokens if both resolve to known entities.
// Unresolved candidates are dropped, an existing triple is left as is.
func (e *Engine) addRelationship(source, target string, relationType model.RelationType) {
	sourceEntity := e.lookup(model.CanonicalKey(source))
	targetEntity := e.lookup(model.CanonicalKey(target))
	if sourceEntity == nil || targetEntity == nil {
		return
	}

	id := model.RelationshipID(sourceEntity.ID, targetEntity.ID, relationType)
	if _, ok := e.relationIndex[id]; ok {
		return
	}

	e.relationIndex[id] = struct{}{}
	e.relationships = append(e.relationships, model.Relationship{
		ID:         id,
		Source:     sourceEntity.ID,
		Target:     targetEntity.ID,
		Type:       relationType,
		Confidence: model.DefaultConfidence,
	})
}

func (e *Engine) entityList() []model.Entity {
	list := make([]model.Entity, 0, len(e.entities))
	for _, entity := range e.entities {
		list = append(list, *entity)
	}
	return list
}

func (e *Engine) relationshipList() []model.Relationship {
	list := make([]model.Relationship, len(e.relationships))
	copy(list, e.relationships)
	return list
}
