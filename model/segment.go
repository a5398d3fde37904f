package model

import (
	"time"

	"github.com/google/uuid"
)

// Segment represents one transcript result delivered by the speech source.
// Interim segments are replaced by later results carrying the same ID.
type Segment struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	IsFinal   bool      `json:"is_final"`
}

// NewSegment creates a segment with a fresh ID and the current time
func NewSegment(text string, isFinal bool) Segment {
	return Segment{
		ID:        uuid.New(),
		Text:      text,
		Timestamp: time.Now(),
		IsFinal:   isFinal,
	}
}
