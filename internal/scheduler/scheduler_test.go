package scheduler

import (
	"testing"
	"time"

	"github.com/parishops/sacristy/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sundayTemplate() *domain.MassTimeTemplate {
	return &domain.MassTimeTemplate{
		ID:        1,
		Name:      "Sunday Mass",
		DayOfWeek: domain.DaySunday,
		IsActive:  true,
		Items: []domain.MassTimeTemplateItem{
			{ID: 11, Time: "10:00:00", DayType: domain.DayTypeSameDay},
		},
	}
}

func TestGenerateSundaysInDecember(t *testing.T) {
	batch, err := Generate(GenerateInput{
		StartDate:           date(2025, time.December, 1),
		EndDate:             date(2025, time.December, 31),
		Templates:           []*domain.MassTimeTemplate{sundayTemplate()},
		SelectedTemplateIDs: []int64{1},
	})
	require.NoError(t, err)

	// December 2025 Sundays: 7, 14, 21, 28
	require.Len(t, batch.Masses, 4)
	wantDays := []int{7, 14, 21, 28}
	for i, m := range batch.Masses {
		assert.Equal(t, wantDays[i], m.ScheduledDate.Day())
		assert.Equal(t, time.Sunday, m.ScheduledDate.Weekday())
		assert.Equal(t, "10:00:00", m.Time)
		assert.True(t, m.IsIncluded)
	}
}

func TestGenerateWeekdayCountMatchesCalendar(t *testing.T) {
	// the number of occurrences must equal the number of matching weekdays in
	// range, whatever the range length
	for _, days := range []int{1, 6, 7, 13, 30, 100} {
		start := date(2025, time.March, 3)
		end := start.AddDate(0, 0, days-1)

		batch, err := Generate(GenerateInput{
			StartDate:           start,
			EndDate:             end,
			Templates:           []*domain.MassTimeTemplate{sundayTemplate()},
			SelectedTemplateIDs: []int64{1},
		})
		require.NoError(t, err)

		want := 0
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if d.Weekday() == time.Sunday {
				want++
			}
		}
		assert.Len(t, batch.Masses, want, "range of %d days", days)
	}
}

func TestGenerateSingleDayRange(t *testing.T) {
	day := date(2025, time.December, 7) // a Sunday
	batch, err := Generate(GenerateInput{
		StartDate:           day,
		EndDate:             day,
		Templates:           []*domain.MassTimeTemplate{sundayTemplate()},
		SelectedTemplateIDs: []int64{1},
	})
	require.NoError(t, err)
	require.Len(t, batch.Masses, 1)
	assert.Empty(t, batch.Warnings)
}

func TestGenerateLongRangeWarnsButSucceeds(t *testing.T) {
	batch, err := Generate(GenerateInput{
		StartDate:           date(2025, time.January, 1),
		EndDate:             date(2026, time.June, 30),
		Templates:           []*domain.MassTimeTemplate{sundayTemplate()},
		SelectedTemplateIDs: []int64{1},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, batch.Warnings)
	assert.NotEmpty(t, batch.Masses)
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	_, err := Generate(GenerateInput{
		StartDate:           date(2025, time.December, 31),
		EndDate:             date(2025, time.December, 1),
		Templates:           []*domain.MassTimeTemplate{sundayTemplate()},
		SelectedTemplateIDs: []int64{1},
	})
	assert.ErrorIs(t, err, ErrEndBeforeStart)

	_, err = Generate(GenerateInput{
		StartDate: date(2025, time.December, 1),
		EndDate:   date(2025, time.December, 31),
		Templates: []*domain.MassTimeTemplate{sundayTemplate()},
	})
	assert.ErrorIs(t, err, ErrNoTemplatesSelected)

	_, err = Generate(GenerateInput{
		StartDate:           date(2025, time.December, 1),
		EndDate:             date(2025, time.December, 31),
		Templates:           []*domain.MassTimeTemplate{sundayTemplate()},
		SelectedTemplateIDs: []int64{1},
		RequireRoles:        true,
	})
	assert.ErrorIs(t, err, ErrNoRolesDefined)
}

func TestRebuildRoleSlotsExpandsCounts(t *testing.T) {
	batch, err := Generate(GenerateInput{
		StartDate:           date(2025, time.December, 1),
		EndDate:             date(2025, time.December, 31),
		Templates:           []*domain.MassTimeTemplate{sundayTemplate()},
		SelectedTemplateIDs: []int64{1},
		Roles: []*domain.MassRole{
			{ID: 1, Name: "Altar Server", Required: true, Count: 2},
			{ID: 2, Name: "Lector", Required: true, Count: 1},
		},
	})
	require.NoError(t, err)

	// 2 roles (count 2 + count 1) over 4 masses -> 12 slots
	total, assigned, unassigned := SummarizeAssignments(batch)
	assert.Equal(t, 12, total)
	assert.Equal(t, 0, assigned)
	assert.Equal(t, 12, unassigned)

	for _, m := range batch.Masses {
		require.Len(t, m.Assignments, 3)
		assert.Equal(t, "Altar Server", m.Assignments[0].RoleName)
		assert.Equal(t, "Altar Server", m.Assignments[1].RoleName)
		assert.Equal(t, "Lector", m.Assignments[2].RoleName)
	}
}

func TestRebuildRoleSlotsDiscardsBindings(t *testing.T) {
	roles := []*domain.MassRole{{ID: 1, Name: "Lector", Count: 1}}
	batch, err := Generate(GenerateInput{
		StartDate:           date(2025, time.December, 1),
		EndDate:             date(2025, time.December, 31),
		Templates:           []*domain.MassTimeTemplate{sundayTemplate()},
		SelectedTemplateIDs: []int64{1},
		Roles:               roles,
	})
	require.NoError(t, err)

	require.NoError(t, AssignSlot(batch, batch.Masses[0].ID, 0, 42, "Mary Fitzgerald"))
	require.NotNil(t, batch.Masses[0].Assignments[0].PersonID)

	RebuildRoleSlots(batch, roles)
	assert.Nil(t, batch.Masses[0].Assignments[0].PersonID)
	assert.Empty(t, batch.Masses[0].Assignments[0].PersonName)
}
