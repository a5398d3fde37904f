package model

import "strings"

// EntityType is the category an entity was first detected as
type EntityType string

const (
	EntityTypePerson       EntityType = "person"
	EntityTypePlace        EntityType = "place"
	EntityTypeOrganization EntityType = "organization"
	EntityTypeConcept      EntityType = "concept"
)

// Valid reports whether the type is one of the known entity types
func (t EntityType) Valid() bool {
	switch t {
	case EntityTypePerson, EntityTypePlace, EntityTypeOrganization, EntityTypeConcept:
		return true
	}
	return false
}

// Entity represents a named entity (person, place, organization, concept)
// Text and Type are fixed at first sighting, Mentions counts every sighting.
type Entity struct {
	ID       string     `json:"id"`
	Text     string     `json:"text"`
	Type     EntityType `json:"type"`
	Mentions int        `json:"mentions"`
}

// CanonicalKey returns the identity key of a surface form.
// Surface forms that only differ in case share a key.
func CanonicalKey(text string) string {
	return strings.ToLower(text)
}
