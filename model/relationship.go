package model

// RelationType represents the label of a relationship between two entities
type RelationType string

const (
	RelationTypeWorksAt   RelationType = "works_at"
	RelationTypeKnows     RelationType = "knows"
	RelationTypeLivesIn   RelationType = "lives_in"
	RelationTypeStudiedAt RelationType = "studied_at"
	RelationTypeFounded   RelationType = "founded"
)

// DefaultConfidence is the score given to every pattern-based relationship
const DefaultConfidence = 0.8

// Relationship represents a directed edge between two entities
type Relationship struct {
	ID         string       `json:"id"`
	Source     string       `json:"source"`
	Target     string       `json:"target"`
	Type       RelationType `json:"type"`
	Confidence float64      `json:"confidence"`
}

// RelationshipID builds the deterministic id of a (source, target, type) triple
func RelationshipID(sourceID, targetID string, relationType RelationType) string {
	return sourceID + "_" + targetID + "_" + string(relationType)
}
