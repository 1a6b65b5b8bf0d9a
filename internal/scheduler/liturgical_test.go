package scheduler

import (
	"testing"
	"time"

	"github.com/parishops/sacristy/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherAttachesEventOnReferenceDate(t *testing.T) {
	events := []*domain.LiturgicalEvent{
		{ID: 100, Date: date(2025, time.December, 7), Name: "Second Sunday of Advent", Colors: []string{"purple"}, GradeAbbr: "SUNDAY"},
		{ID: 101, Date: date(2025, time.December, 14), Name: "Third Sunday of Advent", Colors: []string{"rose"}},
	}

	batch, err := Generate(GenerateInput{
		StartDate:                  date(2025, time.December, 6),
		EndDate:                    date(2025, time.December, 8),
		Templates:                  []*domain.MassTimeTemplate{saturdayVigilTemplate()},
		SelectedTemplateIDs:        []int64{2},
		LiturgicalEvents:           events,
		SelectedLiturgicalEventIDs: []int64{100},
	})
	require.NoError(t, err)
	require.Len(t, batch.Masses, 2)

	// the vigil held on the 6th carries the celebration of the 7th
	for _, m := range batch.Masses {
		require.NotNil(t, m.LiturgicalEventID)
		assert.Equal(t, int64(100), *m.LiturgicalEventID)
		assert.Equal(t, "Second Sunday of Advent", m.LiturgicalEventName)
		assert.Equal(t, []string{"purple"}, m.LiturgicalColors)
	}
}

func TestMatcherIgnoresUnselectedEvents(t *testing.T) {
	events := []*domain.LiturgicalEvent{
		{ID: 100, Date: date(2025, time.December, 7), Name: "Second Sunday of Advent"},
	}

	batch, err := Generate(GenerateInput{
		StartDate:           date(2025, time.December, 1),
		EndDate:             date(2025, time.December, 31),
		Templates:           []*domain.MassTimeTemplate{sundayTemplate()},
		SelectedTemplateIDs: []int64{1},
		LiturgicalEvents:    events,
	})
	require.NoError(t, err)

	for _, m := range batch.Masses {
		assert.Nil(t, m.LiturgicalEventID)
	}
}

func TestMatcherGeneratesMovableOccurrences(t *testing.T) {
	movable := &domain.MassTimeTemplate{
		ID:        4,
		Name:      "Holy Day Mass",
		DayOfWeek: domain.DayMovable,
		IsActive:  true,
		Items: []domain.MassTimeTemplateItem{
			{ID: 41, Time: "19:00:00", DayType: domain.DayTypeSameDay},
		},
	}
	events := []*domain.LiturgicalEvent{
		// Christmas 2025 falls on a Thursday, no Sunday template covers it
		{ID: 200, Date: date(2025, time.December, 25), Name: "The Nativity of the Lord", GradeAbbr: "SOLEMNITY"},
	}

	batch, err := Generate(GenerateInput{
		StartDate:                  date(2025, time.December, 1),
		EndDate:                    date(2025, time.December, 31),
		Templates:                  []*domain.MassTimeTemplate{sundayTemplate(), movable},
		SelectedTemplateIDs:        []int64{1, 4},
		LiturgicalEvents:           events,
		SelectedLiturgicalEventIDs: []int64{200},
	})
	require.NoError(t, err)

	// 4 Sundays plus Christmas
	require.Len(t, batch.Masses, 5)

	var christmas *domain.ProposedMass
	for _, m := range batch.Masses {
		if m.TemplateID == 4 {
			christmas = m
		}
	}
	require.NotNil(t, christmas)
	assert.Equal(t, date(2025, time.December, 25), christmas.ScheduledDate)
	assert.Equal(t, "19:00:00", christmas.Time)
	require.NotNil(t, christmas.LiturgicalEventID)
	assert.Equal(t, int64(200), *christmas.LiturgicalEventID)
}

func TestMatcherSkipsMovableWhenFixedOccurrenceCoversDate(t *testing.T) {
	movable := &domain.MassTimeTemplate{
		ID:        4,
		Name:      "Holy Day Mass",
		DayOfWeek: domain.DayMovable,
		IsActive:  true,
	}
	events := []*domain.LiturgicalEvent{
		// falls on a Sunday already served by the fixed template
		{ID: 201, Date: date(2025, time.December, 7), Name: "Second Sunday of Advent"},
	}

	batch, err := Generate(GenerateInput{
		StartDate:                  date(2025, time.December, 1),
		EndDate:                    date(2025, time.December, 31),
		Templates:                  []*domain.MassTimeTemplate{sundayTemplate(), movable},
		SelectedTemplateIDs:        []int64{1, 4},
		LiturgicalEvents:           events,
		SelectedLiturgicalEventIDs: []int64{201},
		DefaultMovableTime:         "09:00:00",
	})
	require.NoError(t, err)
	assert.Len(t, batch.Masses, 4)
}

func TestMatcherUsesDefaultTimeForItemlessMovableTemplate(t *testing.T) {
	movable := &domain.MassTimeTemplate{
		ID:        4,
		Name:      "Holy Day Mass",
		DayOfWeek: domain.DayMovable,
		IsActive:  true,
	}
	events := []*domain.LiturgicalEvent{
		{ID: 200, Date: date(2025, time.December, 25), Name: "The Nativity of the Lord"},
	}

	batch, err := Generate(GenerateInput{
		StartDate:                  date(2025, time.December, 20),
		EndDate:                    date(2025, time.December, 26),
		Templates:                  []*domain.MassTimeTemplate{movable},
		SelectedTemplateIDs:        []int64{4},
		LiturgicalEvents:           events,
		SelectedLiturgicalEventIDs: []int64{200},
		DefaultMovableTime:         "09:00:00",
	})
	require.NoError(t, err)
	require.Len(t, batch.Masses, 1)
	assert.Equal(t, "09:00:00", batch.Masses[0].Time)
	assert.Equal(t, "The Nativity of the Lord", batch.Masses[0].DisplayName)
}

func TestMatcherOmitsEventsOutsideRange(t *testing.T) {
	movable := &domain.MassTimeTemplate{
		ID:        4,
		Name:      "Holy Day Mass",
		DayOfWeek: domain.DayMovable,
		IsActive:  true,
	}
	events := []*domain.LiturgicalEvent{
		{ID: 200, Date: date(2026, time.January, 6), Name: "The Epiphany of the Lord"},
	}

	batch, err := Generate(GenerateInput{
		StartDate:                  date(2025, time.December, 1),
		EndDate:                    date(2025, time.December, 31),
		Templates:                  []*domain.MassTimeTemplate{movable},
		SelectedTemplateIDs:        []int64{4},
		LiturgicalEvents:           events,
		SelectedLiturgicalEventIDs: []int64{200},
		DefaultMovableTime:         "09:00:00",
	})
	require.NoError(t, err)
	assert.Empty(t, batch.Masses)
}
