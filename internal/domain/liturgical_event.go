package domain

import "time"

// LiturgicalEvent is a named celebration on a specific calendar date, taken
// from the liturgical calendar feed. The engine never creates or mutates
// these; color and grade ride along for display only.
type LiturgicalEvent struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"`
	Name      string    `json:"name"`
	Colors    []string  `json:"colors"`
	Grade     int32     `json:"grade"` // 1-9, lower is more important
	GradeAbbr string    `json:"gradeAbbr"`
	Type      string    `json:"type"`
}
