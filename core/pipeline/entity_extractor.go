package pipeline

import (
	"regexp"
	"strings"

	"github.com/siherrmann/speechgraph/model"
)

var (
	personPattern       = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\b`)
	placePattern        = regexp.MustCompile(`\b(in|at|from|to)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\b`)
	organizationPattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+(?:Inc|Corp|LLC|Company|University|Institute))\b)`)
	conceptPattern      = regexp.MustCompile(`\b([A-Z][a-z]{3,})\b`)
)

// DefaultEntityPasses returns the entity passes in the order they must run.
// Later passes see what earlier passes registered, so the order is significant.
func DefaultEntityPasses() []EntityPass {
	return []EntityPass{
		{Type: model.EntityTypePerson, Extract: extractPersons},
		{Type: model.EntityTypePlace, Extract: extractPlaces},
		{Type: model.EntityTypeOrganization, Extract: extractOrganizations},
		{Type: model.EntityTypeConcept, Extract: extractConcepts},
	}
}

// extractPersons emits runs of two or more capitalized words.
// Words count as separate only when split by a space.
func extractPersons(text string, _ EntityLookup, emit func(string)) {
	for _, match := range personPattern.FindAllStringSubmatch(text, -1) {
		if match[1] != "" && len(strings.Split(match[1], " ")) >= 2 {
			emit(match[1])
		}
	}
}

// extractPlaces emits capitalized spans following in, at, from or to.
// The preposition is not part of the entity.
func extractPlaces(text string, _ EntityLookup, emit func(string)) {
	for _, match := range placePattern.FindAllStringSubmatch(text, -1) {
		if match[2] != "" {
			emit(match[2])
		}
	}
}

// extractOrganizations emits a capitalized word with its corporate suffix
func extractOrganizations(text string, _ EntityLookup, emit func(string)) {
	for _, match := range organizationPattern.FindAllStringSubmatch(text, -1) {
		if match[1] != "" {
			emit(match[1])
		}
	}
}

// extractConcepts emits capitalized words of four or more letters that are
// not known yet. Known words are skipped, not counted as a new mention.
func extractConcepts(text string, known EntityLookup, emit func(string)) {
	for _, match := range conceptPattern.FindAllStringSubmatch(text, -1) {
		if match[1] != "" && !known(model.CanonicalKey(match[1])) {
			emit(match[1])
		}
	}
}
