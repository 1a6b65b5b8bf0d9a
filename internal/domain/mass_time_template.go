package domain

import "time"

// DayOfWeek is the recurring day a template is anchored to. DayMovable marks
// templates that have no fixed weekday and only produce masses for explicitly
// selected liturgical celebrations.
type DayOfWeek string

const (
	DaySunday    DayOfWeek = "SUNDAY"
	DayMonday    DayOfWeek = "MONDAY"
	DayTuesday   DayOfWeek = "TUESDAY"
	DayWednesday DayOfWeek = "WEDNESDAY"
	DayThursday  DayOfWeek = "THURSDAY"
	DayFriday    DayOfWeek = "FRIDAY"
	DaySaturday  DayOfWeek = "SATURDAY"
	DayMovable   DayOfWeek = "MOVABLE"
)

// Weekday reports the time.Weekday for a fixed day. The second return value is
// false for DayMovable and unknown values.
func (d DayOfWeek) Weekday() (time.Weekday, bool) {
	switch d {
	case DaySunday:
		return time.Sunday, true
	case DayMonday:
		return time.Monday, true
	case DayTuesday:
		return time.Tuesday, true
	case DayWednesday:
		return time.Wednesday, true
	case DayThursday:
		return time.Thursday, true
	case DayFriday:
		return time.Friday, true
	case DaySaturday:
		return time.Saturday, true
	default:
		return time.Sunday, false
	}
}

// DayType tells whether a template item's mass happens on the template's day
// or on the evening before as a vigil.
type DayType string

const (
	DayTypeSameDay   DayType = "IS_DAY"
	DayTypeDayBefore DayType = "DAY_BEFORE"
)

type MassTimeTemplateItem struct {
	ID      int64   `json:"id"`
	Time    string  `json:"time"` // HH:MM:SS
	DayType DayType `json:"dayType"`
	Name    string  `json:"name"`
}

type MassTimeTemplate struct {
	ID        int64                  `json:"id"`
	Name      string                 `json:"name"`
	DayOfWeek DayOfWeek              `json:"dayOfWeek"`
	IsActive  bool                   `json:"isActive"`
	Items     []MassTimeTemplateItem `json:"items"`
	CreatedAt time.Time              `json:"createdAt"`
	Version   int32                  `json:"-"`
}
