package domain

import "time"

// RoleAssignment is one assignable slot of a role at one proposed mass.
// PersonID is nil while the slot is unassigned.
type RoleAssignment struct {
	RoleID     int64  `json:"roleID"`
	RoleName   string `json:"roleName"`
	PersonID   *int64 `json:"personID"`
	PersonName string `json:"personName,omitempty"`
}

// ProposedMass is one concrete dated mass produced by the scheduling
// pipeline. It lives only in memory (or in a wizard session) until committed.
//
// ReferenceDate is the nominal day of the celebration and drives grouping and
// liturgical matching; ScheduledDate is the day the mass actually happens.
// The two differ only for vigils, where ScheduledDate is one day earlier.
type ProposedMass struct {
	ID                  string           `json:"id"`
	ReferenceDate       time.Time        `json:"referenceDate"`
	ScheduledDate       time.Time        `json:"scheduledDate"`
	Time                string           `json:"time"` // HH:MM:SS
	TemplateID          int64            `json:"templateID"`
	TemplateItemID      int64            `json:"templateItemID"`
	DisplayName         string           `json:"displayName"`
	DayOfWeek           DayOfWeek        `json:"dayOfWeek"`
	IsVigil             bool             `json:"isVigil"`
	IsIncluded          bool             `json:"isIncluded"`
	LiturgicalEventID   *int64           `json:"liturgicalEventID"`
	LiturgicalEventName string           `json:"liturgicalEventName,omitempty"`
	LiturgicalColors    []string         `json:"liturgicalColors,omitempty"`
	LiturgicalGrade     string           `json:"liturgicalGrade,omitempty"`
	Assignments         []RoleAssignment `json:"assignments"`
}

// ProposedBatch is the editable output of one pipeline run.
type ProposedBatch struct {
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
	Masses    []*ProposedMass `json:"masses"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// IncludedMasses returns the subset of masses the user kept in the batch.
func (b *ProposedBatch) IncludedMasses() []*ProposedMass {
	included := make([]*ProposedMass, 0, len(b.Masses))
	for _, m := range b.Masses {
		if m.IsIncluded {
			included = append(included, m)
		}
	}
	return included
}

type CreatedAssignment struct {
	RoleInstanceID int64  `json:"roleInstanceID"`
	RoleID         int64  `json:"roleID"`
	RoleName       string `json:"roleName"`
	PersonID       *int64 `json:"personID"`
	PersonName     string `json:"personName,omitempty"`
}

type CreatedMass struct {
	MasterEventID   int64               `json:"masterEventID"`
	CalendarEventID int64               `json:"calendarEventID"`
	Date            time.Time           `json:"date"`
	Time            string              `json:"time"`
	DisplayName     string              `json:"displayName"`
	Assignments     []CreatedAssignment `json:"assignments"`
}

// OccurrenceFailure records one proposed mass the commit coordinator could not
// persist. Failures never abort the rest of the batch.
type OccurrenceFailure struct {
	OccurrenceID string    `json:"occurrenceID"`
	Date         time.Time `json:"date"`
	Time         string    `json:"time"`
	Reason       string    `json:"reason"`
}

// ScheduleResult is the immutable summary returned after a commit.
type ScheduleResult struct {
	MassesCreated   int                 `json:"massesCreated"`
	RolesTotal      int                 `json:"rolesTotal"`
	RolesAssigned   int                 `json:"rolesAssigned"`
	RolesUnassigned int                 `json:"rolesUnassigned"`
	Masses          []CreatedMass       `json:"masses"`
	Failures        []OccurrenceFailure `json:"failures,omitempty"`
}
