package utils

import (
	"fmt"
	"time"

	"github.com/parishops/sacristy/backend/internal/domain"
)

func ValidateDateRange(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("end date %s is before start date %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return nil
}

// ValidateBatchAssignments enforces the booking invariants over a proposed
// batch before commit:
//  1. a person holds at most one role slot per mass
//  2. a person is not assigned to two masses at the same date and time
//
// The engine's full recompute already guarantees both; this guards manual
// slot edits, which are allowed to bypass the heuristic but not the rules.
func ValidateBatchAssignments(batch *domain.ProposedBatch) error {
	type booking struct {
		massID   string
		roleName string
	}
	seen := map[string]map[int64]booking{}

	for _, m := range batch.IncludedMasses() {
		key := m.ScheduledDate.Format("2006-01-02") + " " + m.Time

		if seen[key] == nil {
			seen[key] = map[int64]booking{}
		}

		for _, slot := range m.Assignments {
			if slot.PersonID == nil {
				continue
			}

			if prev, exists := seen[key][*slot.PersonID]; exists {
				if prev.massID == m.ID {
					return fmt.Errorf("%s is booked for both %s and %s at the %s mass on %s", slot.PersonName, prev.roleName, slot.RoleName, m.Time, m.ScheduledDate.Format("2006-01-02"))
				}
				return fmt.Errorf("%s is booked for two masses at %s on %s", slot.PersonName, m.Time, m.ScheduledDate.Format("2006-01-02"))
			}

			seen[key][*slot.PersonID] = booking{massID: m.ID, roleName: slot.RoleName}
		}
	}

	return nil
}

// ValidateTemplateItems rejects template payloads whose items carry malformed
// times or unknown day types.
func ValidateTemplateItems(items []domain.MassTimeTemplateItem) error {
	for i, item := range items {
		if _, err := time.Parse("15:04:05", item.Time); err != nil {
			return fmt.Errorf("item %d has an invalid time %q, expected HH:MM:SS", i+1, item.Time)
		}
		switch item.DayType {
		case domain.DayTypeSameDay, domain.DayTypeDayBefore:
		default:
			return fmt.Errorf("item %d has an unknown day type %q", i+1, item.DayType)
		}
	}
	return nil
}
