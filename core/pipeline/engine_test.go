package pipeline

import (
	"testing"

	"github.com/siherrmann/speechgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findEntity(t *testing.T, entities []model.Entity, text string) model.Entity {
	t.Helper()
	var found []model.Entity
	for _, e := range entities {
		if e.Text == text {
			found = append(found, e)
		}
	}
	require.Len(t, found, 1, "Expected exactly one entity %q", text)
	return found[0]
}

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	entities, relationships := engine.Len()
	assert.Equal(t, 0, entities)
	assert.Equal(t, 0, relationships)

	snapshot := engine.Snapshot()
	assert.NotNil(t, snapshot.Nodes, "Nodes should be an empty list, not nil")
	assert.NotNil(t, snapshot.Links, "Links should be an empty list, not nil")
	assert.Empty(t, snapshot.Nodes)
	assert.Empty(t, snapshot.Links)
}

func TestIngestEntities(t *testing.T) {
	t.Run("Repeated person merges into one entity", func(t *testing.T) {
		engine := NewEngine()

		engine.Ingest("John Smith")
		result := engine.Ingest("John Smith")

		person := findEntity(t, result.Entities, "John Smith")
		assert.Equal(t, model.EntityTypePerson, person.Type)
		assert.Equal(t, 2, person.Mentions)
		assert.Equal(t, "entity_0", person.ID)
	})

	t.Run("Repeated person in one chunk merges", func(t *testing.T) {
		engine := NewEngine()

		result := engine.Ingest("John Smith called and then John Smith left.")

		person := findEntity(t, result.Entities, "John Smith")
		assert.Equal(t, 2, person.Mentions)
	})

	t.Run("Names split across a line break become concepts", func(t *testing.T) {
		engine := NewEngine()

		result := engine.Ingest("John\nSmith")

		require.Len(t, result.Entities, 2)
		assert.Equal(t, model.Entity{ID: "entity_0", Text: "John", Type: model.EntityTypeConcept, Mentions: 1}, result.Entities[0])
		assert.Equal(t, model.Entity{ID: "entity_1", Text: "Smith", Type: model.EntityTypeConcept, Mentions: 1}, result.Entities[1])

		result = engine.Ingest("John Smith")
		person := findEntity(t, result.Entities, "John Smith")
		assert.Equal(t, model.EntityTypePerson, person.Type)
		assert.Equal(t, "entity_2", person.ID)
	})

	t.Run("Upsert is case insensitive and keeps first text", func(t *testing.T) {
		engine := NewEngine()

		engine.upsertEntity("Paris", model.EntityTypePlace)
		engine.upsertEntity("paris", model.EntityTypePlace)

		result := engine.Ingest("")
		require.Len(t, result.Entities, 1)
		assert.Equal(t, "Paris", result.Entities[0].Text)
		assert.Equal(t, 2, result.Entities[0].Mentions)
	})

	t.Run("Type is fixed at first sighting", func(t *testing.T) {
		engine := NewEngine()

		// Person runs before place, so the place match only adds a mention
		result := engine.Ingest("They moved to New York")

		city := findEntity(t, result.Entities, "New York")
		assert.Equal(t, model.EntityTypePerson, city.Type)
		assert.Equal(t, 2, city.Mentions)
	})

	t.Run("Place is not turned into a concept", func(t *testing.T) {
		engine := NewEngine()

		result := engine.Ingest("I moved to Paris")

		require.Len(t, result.Entities, 1)
		assert.Equal(t, model.EntityTypePlace, result.Entities[0].Type)
		assert.Equal(t, 1, result.Entities[0].Mentions)
	})

	t.Run("Known concept is skipped, not counted", func(t *testing.T) {
		engine := NewEngine()

		engine.Ingest("Gravity is strong")
		result := engine.Ingest("Gravity again")

		concept := findEntity(t, result.Entities, "Gravity")
		assert.Equal(t, model.EntityTypeConcept, concept.Type)
		assert.Equal(t, 1, concept.Mentions)
	})

	t.Run("Non-matching text changes nothing", func(t *testing.T) {
		engine := NewEngine()

		for _, text := range []string{"", "   ", "no names here at all", "123 456 !!!"} {
			result := engine.Ingest(text)
			assert.Empty(t, result.Entities, "text %q", text)
			assert.Empty(t, result.Relationships, "text %q", text)
		}
	})

	t.Run("Ids are sequential", func(t *testing.T) {
		engine := NewEngine()

		result := engine.Ingest("I moved to Paris and then to Rome")

		require.Len(t, result.Entities, 2)
		assert.Equal(t, "entity_0", result.Entities[0].ID)
		assert.Equal(t, "Paris", result.Entities[0].Text)
		assert.Equal(t, "entity_1", result.Entities[1].ID)
		assert.Equal(t, "Rome", result.Entities[1].Text)
	})
}

func TestIngestRelationships(t *testing.T) {
	t.Run("Repeated relationship is stored once", func(t *testing.T) {
		engine := NewEngine()

		engine.Ingest("Alice works at Acme")
		result := engine.Ingest("Alice works at Acme")

		require.Len(t, result.Relationships, 1)
		rel := result.Relationships[0]

		alice := findEntity(t, result.Entities, "Alice")
		acme := findEntity(t, result.Entities, "Acme")
		assert.Equal(t, alice.ID, rel.Source)
		assert.Equal(t, acme.ID, rel.Target)
		assert.Equal(t, model.RelationTypeWorksAt, rel.Type)
		assert.Equal(t, model.RelationshipID(alice.ID, acme.ID, model.RelationTypeWorksAt), rel.ID)
		assert.Equal(t, model.DefaultConfidence, rel.Confidence)

		// Acme is a place and counts both sightings, Alice is a concept
		// and concepts are not recounted.
		assert.Equal(t, 2, acme.Mentions)
		assert.Equal(t, 1, alice.Mentions)
	})

	t.Run("Unresolved endpoint drops the candidate", func(t *testing.T) {
		engine := NewEngine()

		// Acme becomes a concept, Foo is too short for any entity pass
		result := engine.Ingest("Acme founded Foo")

		assert.Empty(t, result.Relationships)
		acme := findEntity(t, result.Entities, "Acme")
		assert.Equal(t, model.EntityTypeConcept, acme.Type)
		_, ok := engine.Entity("Foo")
		assert.False(t, ok)
	})

	t.Run("Relationship appears once both endpoints exist", func(t *testing.T) {
		engine := NewEngine()

		engine.Ingest("Acme founded Foo")
		engine.Ingest("The office moved to Foo")
		result := engine.Ingest("Acme founded Foo")

		require.Len(t, result.Relationships, 1)
		assert.Equal(t, "entity_0_entity_1_founded", result.Relationships[0].ID)
	})

	t.Run("Lowercase tokens never create edges", func(t *testing.T) {
		engine := NewEngine()

		result := engine.Ingest("bob knows carol")

		assert.Empty(t, result.Entities)
		assert.Empty(t, result.Relationships)
	})

	t.Run("Tokens resolve case insensitively", func(t *testing.T) {
		engine := NewEngine()

		engine.Ingest("I moved to Paris")
		result := engine.Ingest("Anna Berg lives in paris")

		paris := findEntity(t, result.Entities, "Paris")
		berg := findEntity(t, result.Entities, "Berg")
		require.Len(t, result.Relationships, 1)
		assert.Equal(t, berg.ID, result.Relationships[0].Source)
		assert.Equal(t, paris.ID, result.Relationships[0].Target)
		assert.Equal(t, model.RelationTypeLivesIn, result.Relationships[0].Type)
	})
}

func TestIngestEndToEnd(t *testing.T) {
	engine := NewEngine()

	result := engine.Ingest("Marie Curie studied at Sorbonne University. Marie Curie lives in Paris.")

	expectedEntities := []model.Entity{
		{ID: "entity_0", Text: "Marie Curie", Type: model.EntityTypePerson, Mentions: 2},
		// Matched by the person, place and organization passes in that order
		{ID: "entity_1", Text: "Sorbonne University", Type: model.EntityTypePerson, Mentions: 3},
		{ID: "entity_2", Text: "Paris", Type: model.EntityTypePlace, Mentions: 1},
		{ID: "entity_3", Text: "Marie", Type: model.EntityTypeConcept, Mentions: 1},
		{ID: "entity_4", Text: "Curie", Type: model.EntityTypeConcept, Mentions: 1},
		{ID: "entity_5", Text: "Sorbonne", Type: model.EntityTypeConcept, Mentions: 1},
		{ID: "entity_6", Text: "University", Type: model.EntityTypeConcept, Mentions: 1},
	}
	assert.Equal(t, expectedEntities, result.Entities)

	// Relationship tokens are single words, so the edges connect the
	// concept "Curie" instead of the person "Marie Curie".
	expectedRelationships := []model.Relationship{
		{ID: "entity_4_entity_2_lives_in", Source: "entity_4", Target: "entity_2", Type: model.RelationTypeLivesIn, Confidence: 0.8},
		{ID: "entity_4_entity_5_studied_at", Source: "entity_4", Target: "entity_5", Type: model.RelationTypeStudiedAt, Confidence: 0.8},
	}
	assert.Equal(t, expectedRelationships, result.Relationships)
}

func TestSnapshot(t *testing.T) {
	t.Run("Projects entities and relationships", func(t *testing.T) {
		engine := NewEngine()
		engine.Ingest("I moved to Paris")
		engine.Ingest("Anna Berg lives in paris")

		snapshot := engine.Snapshot()

		require.Len(t, snapshot.Nodes, 4)
		assert.Equal(t, model.Node{ID: "entity_0", Label: "Paris", Type: model.EntityTypePlace, Mentions: 1}, snapshot.Nodes[0])
		require.Len(t, snapshot.Links, 1)
		assert.Equal(t, model.Link{Source: "entity_3", Target: "entity_0", Type: model.RelationTypeLivesIn, Confidence: 0.8}, snapshot.Links[0])
	})

	t.Run("Repeated snapshots are identical", func(t *testing.T) {
		engine := NewEngine()
		engine.Ingest("Alice works at Acme")

		first := engine.Snapshot()
		second := engine.Snapshot()

		assert.Equal(t, first, second)
	})

	t.Run("Returned data does not alias the stores", func(t *testing.T) {
		engine := NewEngine()
		result := engine.Ingest("I moved to Paris")

		result.Entities[0].Mentions = 100
		snapshot := engine.Snapshot()
		snapshot.Nodes[0].Label = "Changed"

		entity, ok := engine.Entity("paris")
		require.True(t, ok)
		assert.Equal(t, 1, entity.Mentions)
		assert.Equal(t, "Paris", entity.Text)
	})
}

func TestClear(t *testing.T) {
	engine := NewEngine()
	engine.Ingest("Alice works at Acme")
	engine.Ingest("Marie Curie lives in Paris")

	engine.Clear()

	snapshot := engine.Snapshot()
	assert.Empty(t, snapshot.Nodes)
	assert.Empty(t, snapshot.Links)

	result := engine.Ingest("Ada Lovelace")
	fresh := NewEngine().Ingest("Ada Lovelace")
	assert.Equal(t, fresh, result)
	assert.Equal(t, "entity_0", result.Entities[0].ID)
}
