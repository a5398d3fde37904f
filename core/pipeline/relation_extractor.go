package pipeline

import (
	"regexp"

	"github.com/siherrmann/speechgraph/model"
)

// Relationship arguments are single \w+ tokens. Multi-word entities such as
// "Marie Curie" can only take part through their last or first word.
var relationPatterns = []struct {
	relationType model.RelationType
	pattern      *regexp.Regexp
}{
	{model.RelationTypeWorksAt, regexp.MustCompile(`(?i)(\w+)\s+(?:works at|is employed by)\s+(\w+)`)},
	{model.RelationTypeKnows, regexp.MustCompile(`(?i)(\w+)\s+(?:knows|met)\s+(\w+)`)},
	{model.RelationTypeLivesIn, regexp.MustCompile(`(?i)(\w+)\s+(?:lives in|is from)\s+(\w+)`)},
	{model.RelationTypeStudiedAt, regexp.MustCompile(`(?i)(\w+)\s+(?:studied at|graduated from)\s+(\w+)`)},
	{model.RelationTypeFounded, regexp.MustCompile(`(?i)(\w+)\s+(?:founded|created|started)\s+(\w+)`)},
}

// DefaultRelationPasses returns one pass per relationship pattern
func DefaultRelationPasses() []RelationPass {
	passes := make([]RelationPass, 0, len(relationPatterns))
	for _, rp := range relationPatterns {
		passes = append(passes, RelationPass{
			Type:    rp.relationType,
			Extract: tokenPairExtractor(rp.pattern),
		})
	}
	return passes
}

func tokenPairExtractor(pattern *regexp.Regexp) RelationExtractFunc {
	return func(text string, emit func(left, right string)) {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			if match[1] != "" && match[2] != "" {
				emit(match[1], match[2])
			}
		}
	}
}
