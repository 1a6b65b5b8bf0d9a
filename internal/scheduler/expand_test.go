package scheduler

import (
	"testing"
	"time"

	"github.com/parishops/sacristy/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saturdayVigilTemplate() *domain.MassTimeTemplate {
	return &domain.MassTimeTemplate{
		ID:        2,
		Name:      "Sunday Mass",
		DayOfWeek: domain.DaySunday,
		IsActive:  true,
		Items: []domain.MassTimeTemplateItem{
			{ID: 21, Time: "17:30:00", DayType: domain.DayTypeDayBefore},
			{ID: 22, Time: "10:00:00", DayType: domain.DayTypeSameDay},
		},
	}
}

func TestExpandVigilScheduledOneDayBefore(t *testing.T) {
	batch, err := Generate(GenerateInput{
		StartDate:           date(2025, time.December, 1),
		EndDate:             date(2025, time.December, 13),
		Templates:           []*domain.MassTimeTemplate{saturdayVigilTemplate()},
		SelectedTemplateIDs: []int64{2},
	})
	require.NoError(t, err)

	// one Sunday in range (Dec 7): a vigil on the 6th plus the day mass
	require.Len(t, batch.Masses, 2)

	vigil := batch.Masses[0]
	assert.True(t, vigil.IsVigil)
	assert.Equal(t, date(2025, time.December, 6), vigil.ScheduledDate)
	assert.Equal(t, date(2025, time.December, 7), vigil.ReferenceDate)
	assert.Contains(t, vigil.DisplayName, "(Vigil)")

	day := batch.Masses[1]
	assert.False(t, day.IsVigil)
	assert.Equal(t, date(2025, time.December, 7), day.ScheduledDate)
	assert.Equal(t, day.ScheduledDate, day.ReferenceDate)
}

func TestExpandVigilAcrossMonthAndYearBoundary(t *testing.T) {
	// Sunday 2026-03-01: vigil lands on 2026-02-28
	tmpl := saturdayVigilTemplate()
	batch, err := Generate(GenerateInput{
		StartDate:           date(2026, time.February, 23),
		EndDate:             date(2026, time.March, 1),
		Templates:           []*domain.MassTimeTemplate{tmpl},
		SelectedTemplateIDs: []int64{2},
	})
	require.NoError(t, err)
	require.Len(t, batch.Masses, 2)
	assert.Equal(t, date(2026, time.February, 28), batch.Masses[0].ScheduledDate)
	assert.Equal(t, date(2026, time.March, 1), batch.Masses[0].ReferenceDate)

	// Thursday 2026-01-01: vigil lands on 2025-12-31
	newYear := &domain.MassTimeTemplate{
		ID:        3,
		Name:      "Holy Day Mass",
		DayOfWeek: domain.DayThursday,
		IsActive:  true,
		Items: []domain.MassTimeTemplateItem{
			{ID: 31, Time: "19:00:00", DayType: domain.DayTypeDayBefore},
		},
	}
	batch, err = Generate(GenerateInput{
		StartDate:           date(2025, time.December, 29),
		EndDate:             date(2026, time.January, 1),
		Templates:           []*domain.MassTimeTemplate{newYear},
		SelectedTemplateIDs: []int64{3},
	})
	require.NoError(t, err)
	require.Len(t, batch.Masses, 1)
	assert.Equal(t, date(2025, time.December, 31), batch.Masses[0].ScheduledDate)
	assert.Equal(t, date(2026, time.January, 1), batch.Masses[0].ReferenceDate)
}

func TestExpandDropsVigilScheduledBeforeRange(t *testing.T) {
	// range starts on the Sunday itself, so its vigil would fall outside
	batch, err := Generate(GenerateInput{
		StartDate:           date(2025, time.December, 7),
		EndDate:             date(2025, time.December, 7),
		Templates:           []*domain.MassTimeTemplate{saturdayVigilTemplate()},
		SelectedTemplateIDs: []int64{2},
	})
	require.NoError(t, err)
	require.Len(t, batch.Masses, 1)
	assert.False(t, batch.Masses[0].IsVigil)
}

func TestExpandSkipsInactiveAndUnselectedTemplates(t *testing.T) {
	inactive := sundayTemplate()
	inactive.ID = 9
	inactive.IsActive = false

	batch, err := Generate(GenerateInput{
		StartDate:           date(2025, time.December, 1),
		EndDate:             date(2025, time.December, 31),
		Templates:           []*domain.MassTimeTemplate{sundayTemplate(), inactive, saturdayVigilTemplate()},
		SelectedTemplateIDs: []int64{1, 9},
	})
	require.NoError(t, err)

	// only the active selected template produced masses
	require.Len(t, batch.Masses, 4)
	for _, m := range batch.Masses {
		assert.Equal(t, int64(1), m.TemplateID)
	}
}

func TestExpandSkipsMovableTemplatesWithoutEvents(t *testing.T) {
	movable := &domain.MassTimeTemplate{
		ID:        4,
		Name:      "Holy Day Mass",
		DayOfWeek: domain.DayMovable,
		IsActive:  true,
		Items: []domain.MassTimeTemplateItem{
			{ID: 41, Time: "19:00:00", DayType: domain.DayTypeSameDay},
		},
	}

	batch, err := Generate(GenerateInput{
		StartDate:           date(2025, time.December, 1),
		EndDate:             date(2025, time.December, 31),
		Templates:           []*domain.MassTimeTemplate{movable},
		SelectedTemplateIDs: []int64{4},
	})
	require.NoError(t, err)
	assert.Empty(t, batch.Masses)
}
