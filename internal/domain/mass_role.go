package domain

import "time"

// MassRole is one ceremonial role required at a mass, e.g. Lector or Altar
// Server. Count is the number of people needed per mass. Role definitions are
// owned by parish configuration; the scheduling engine treats them read-only.
type MassRole struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Required  bool      `json:"required"`
	Count     int32     `json:"count"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

type BlackoutRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Reason    string    `json:"reason"`
}

// Covers reports whether the given calendar date falls inside the range,
// boundaries included.
func (b BlackoutRange) Covers(date time.Time) bool {
	return !date.Before(b.StartDate) && !date.After(b.EndDate)
}

// RoleCandidate is one person eligible for a role, together with the
// availability data the assignment engine needs. PreferredItemIDs, when
// non-empty, narrows the candidate down to specific mass-time template items.
type RoleCandidate struct {
	PersonID         int64           `json:"personID"`
	FullName         string          `json:"fullName"`
	Blackouts        []BlackoutRange `json:"blackouts"`
	PreferredItemIDs []int64         `json:"preferredItemIDs"`
}
