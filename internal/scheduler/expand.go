package scheduler

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/parishops/sacristy/backend/internal/domain"
)

// expandTemplates walks every calendar date in range and emits one proposed
// mass per (selected template item, matching date) pair. Movable templates
// produce nothing here: their occurrences come from the liturgical matcher.
func expandTemplates(in GenerateInput) []*domain.ProposedMass {
	selected := make(map[int64]bool, len(in.SelectedTemplateIDs))
	for _, id := range in.SelectedTemplateIDs {
		selected[id] = true
	}

	start := dateOnly(in.StartDate)
	end := dateOnly(in.EndDate)

	masses := []*domain.ProposedMass{}

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		for _, tmpl := range in.Templates {
			if !selected[tmpl.ID] || !tmpl.IsActive {
				continue
			}

			weekday, fixed := tmpl.DayOfWeek.Weekday()
			if !fixed || weekday != date.Weekday() {
				continue
			}

			for _, item := range tmpl.Items {
				mass := newProposedMass(tmpl, item, date)

				// A vigil at the very start of the range would be scheduled
				// before the range begins; such occurrences are dropped.
				if mass.ScheduledDate.Before(start) || mass.ScheduledDate.After(end) {
					continue
				}

				masses = append(masses, mass)
			}
		}
	}

	return masses
}

// newProposedMass builds one occurrence for a template item on the given
// reference date. For DAY_BEFORE items the mass is scheduled one calendar day
// before the reference date; both dates stay retrievable on the mass.
func newProposedMass(tmpl *domain.MassTimeTemplate, item domain.MassTimeTemplateItem, refDate time.Time) *domain.ProposedMass {
	isVigil := item.DayType == domain.DayTypeDayBefore

	schedDate := refDate
	if isVigil {
		schedDate = refDate.AddDate(0, 0, -1)
	}

	name := item.Name
	if name == "" {
		name = fmt.Sprintf("%s %s", tmpl.Name, shortTime(item.Time))
	}
	if isVigil {
		name += " (Vigil)"
	}

	return &domain.ProposedMass{
		ID:             uuid.NewString(),
		ReferenceDate:  refDate,
		ScheduledDate:  schedDate,
		Time:           item.Time,
		TemplateID:     tmpl.ID,
		TemplateItemID: item.ID,
		DisplayName:    name,
		DayOfWeek:      tmpl.DayOfWeek,
		IsVigil:        isVigil,
		IsIncluded:     true,
	}
}

func shortTime(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}
