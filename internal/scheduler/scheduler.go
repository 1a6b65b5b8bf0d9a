// Package scheduler implements the recurring-mass generation and minister
// assignment engine behind the "Schedule Masses" wizard: it expands mass-time
// templates into dated occurrences, overlays liturgical celebrations, builds
// role slots and fills them with a deterministic least-loaded heuristic.
package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/parishops/sacristy/backend/internal/domain"
)

var (
	ErrEndBeforeStart      = errors.New("end date is before start date")
	ErrNoTemplatesSelected = errors.New("no mass time templates selected")
	ErrNoRolesDefined      = errors.New("no role definitions configured for masses")
)

// Ranges longer than this are accepted but flagged to the caller.
const longRangeDays = 365

type GenerateInput struct {
	StartDate                  time.Time
	EndDate                    time.Time
	Templates                  []*domain.MassTimeTemplate
	SelectedTemplateIDs        []int64
	LiturgicalEvents           []*domain.LiturgicalEvent
	SelectedLiturgicalEventIDs []int64
	Roles                      []*domain.MassRole
	RequireRoles               bool
	DefaultMovableTime         string // HH:MM:SS, used for movable templates without items
}

// Generate runs the full pipeline: template expansion, liturgical matching
// and role-slot building. The returned batch carries empty role slots; run an
// Assigner over it to propose ministers. Generation errors are fatal to the
// whole preview, a partial preview is of no use to the caller.
func Generate(in GenerateInput) (*domain.ProposedBatch, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	batch := &domain.ProposedBatch{
		StartDate: dateOnly(in.StartDate),
		EndDate:   dateOnly(in.EndDate),
	}

	if days := int(batch.EndDate.Sub(batch.StartDate).Hours()/24) + 1; days > longRangeDays {
		batch.Warnings = append(batch.Warnings, fmt.Sprintf("date range spans %d days, masses beyond a year are usually scheduled in smaller batches", days))
	}

	masses := expandTemplates(in)
	masses = matchLiturgicalEvents(masses, in)
	batch.Masses = masses

	RebuildRoleSlots(batch, in.Roles)

	return batch, nil
}

func validateInput(in GenerateInput) error {
	if dateOnly(in.EndDate).Before(dateOnly(in.StartDate)) {
		return ErrEndBeforeStart
	}
	if len(in.SelectedTemplateIDs) == 0 {
		return ErrNoTemplatesSelected
	}
	if in.RequireRoles && len(in.Roles) == 0 {
		return ErrNoRolesDefined
	}
	return nil
}

// SummarizeAssignments counts role slots across the included masses.
func SummarizeAssignments(batch *domain.ProposedBatch) (total, assigned, unassigned int) {
	for _, m := range batch.IncludedMasses() {
		for _, slot := range m.Assignments {
			total++
			if slot.PersonID != nil {
				assigned++
			} else {
				unassigned++
			}
		}
	}
	return total, assigned, unassigned
}

// dateOnly strips the time-of-day part so date arithmetic and map keys are
// uniform across inputs.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
