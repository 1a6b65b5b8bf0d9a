package scheduler

import (
	"sort"

	"github.com/parishops/sacristy/backend/internal/domain"
)

// matchLiturgicalEvents overlays the selected celebrations onto the expanded
// masses and generates occurrences for movable templates. The attached event
// metadata is display-only and never changes scheduling math.
//
// A celebration missing from the feed simply produces no movable occurrence;
// gaps in the feed are not fatal to the rest of the batch.
func matchLiturgicalEvents(masses []*domain.ProposedMass, in GenerateInput) []*domain.ProposedMass {
	selectedEvents := selectEvents(in)
	if len(selectedEvents) == 0 {
		return masses
	}

	eventsByDate := make(map[string]*domain.LiturgicalEvent, len(selectedEvents))
	for _, ev := range selectedEvents {
		eventsByDate[dateKey(ev.Date)] = ev
	}

	// Vigils inherit the celebration of their reference day, not the day they
	// are actually held on.
	covered := make(map[string]bool, len(masses))
	for _, m := range masses {
		if ev, ok := eventsByDate[dateKey(m.ReferenceDate)]; ok {
			attachEvent(m, ev)
		}
		covered[dateKey(m.ReferenceDate)] = true
	}

	// Movable templates only produce masses for selected celebrations that no
	// fixed-weekday occurrence already covers.
	start := dateOnly(in.StartDate)
	end := dateOnly(in.EndDate)

	selectedIDs := make(map[int64]bool, len(in.SelectedTemplateIDs))
	for _, id := range in.SelectedTemplateIDs {
		selectedIDs[id] = true
	}

	for _, tmpl := range in.Templates {
		if !selectedIDs[tmpl.ID] || !tmpl.IsActive || tmpl.DayOfWeek != domain.DayMovable {
			continue
		}

		for _, ev := range selectedEvents {
			if ev.Date.Before(start) || ev.Date.After(end) || covered[dateKey(ev.Date)] {
				continue
			}

			items := tmpl.Items
			if len(items) == 0 {
				items = []domain.MassTimeTemplateItem{{Time: in.DefaultMovableTime, DayType: domain.DayTypeSameDay}}
			}

			emitted := false
			for _, item := range items {
				mass := newProposedMass(tmpl, item, ev.Date)
				if mass.ScheduledDate.Before(start) || mass.ScheduledDate.After(end) {
					continue
				}
				if mass.DisplayName == "" || item.Name == "" {
					mass.DisplayName = ev.Name
				}
				attachEvent(mass, ev)
				masses = append(masses, mass)
				emitted = true
			}

			if emitted {
				covered[dateKey(ev.Date)] = true
			}
		}
	}

	sort.SliceStable(masses, func(i, j int) bool {
		if !masses[i].ScheduledDate.Equal(masses[j].ScheduledDate) {
			return masses[i].ScheduledDate.Before(masses[j].ScheduledDate)
		}
		return masses[i].Time < masses[j].Time
	})

	return masses
}

// selectEvents filters the feed down to the caller's selection, ordered by
// date so movable generation stays deterministic.
func selectEvents(in GenerateInput) []*domain.LiturgicalEvent {
	wanted := make(map[int64]bool, len(in.SelectedLiturgicalEventIDs))
	for _, id := range in.SelectedLiturgicalEventIDs {
		wanted[id] = true
	}

	events := []*domain.LiturgicalEvent{}
	for _, ev := range in.LiturgicalEvents {
		if wanted[ev.ID] {
			events = append(events, ev)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	return events
}

func attachEvent(m *domain.ProposedMass, ev *domain.LiturgicalEvent) {
	id := ev.ID
	m.LiturgicalEventID = &id
	m.LiturgicalEventName = ev.Name
	m.LiturgicalColors = ev.Colors
	m.LiturgicalGrade = ev.GradeAbbr
}
