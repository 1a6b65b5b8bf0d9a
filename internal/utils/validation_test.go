package utils

import (
	"testing"
	"time"

	"github.com/parishops/sacristy/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(id int64) *int64 { return &id }

func mass(id string, day int, at string, assignments ...domain.RoleAssignment) *domain.ProposedMass {
	return &domain.ProposedMass{
		ID:            id,
		ScheduledDate: time.Date(2025, time.December, day, 0, 0, 0, 0, time.UTC),
		Time:          at,
		IsIncluded:    true,
		Assignments:   assignments,
	}
}

func TestValidateBatchAssignments(t *testing.T) {
	t.Run("clean batch passes", func(t *testing.T) {
		batch := &domain.ProposedBatch{Masses: []*domain.ProposedMass{
			mass("a", 7, "10:00:00",
				domain.RoleAssignment{RoleID: 1, RoleName: "Lector", PersonID: ptr(1), PersonName: "Anne Byrne"},
				domain.RoleAssignment{RoleID: 2, RoleName: "Altar Server", PersonID: ptr(2), PersonName: "Brendan Doyle"},
				domain.RoleAssignment{RoleID: 2, RoleName: "Altar Server"},
			),
			mass("b", 14, "10:00:00",
				domain.RoleAssignment{RoleID: 1, RoleName: "Lector", PersonID: ptr(1), PersonName: "Anne Byrne"},
			),
		}}
		assert.NoError(t, ValidateBatchAssignments(batch))
	})

	t.Run("one person in two roles at one mass", func(t *testing.T) {
		batch := &domain.ProposedBatch{Masses: []*domain.ProposedMass{
			mass("a", 7, "10:00:00",
				domain.RoleAssignment{RoleID: 1, RoleName: "Lector", PersonID: ptr(1), PersonName: "Anne Byrne"},
				domain.RoleAssignment{RoleID: 2, RoleName: "Altar Server", PersonID: ptr(1), PersonName: "Anne Byrne"},
			),
		}}
		err := ValidateBatchAssignments(batch)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Anne Byrne")
	})

	t.Run("one person at two masses at the same date and time", func(t *testing.T) {
		batch := &domain.ProposedBatch{Masses: []*domain.ProposedMass{
			mass("a", 7, "10:00:00",
				domain.RoleAssignment{RoleID: 1, RoleName: "Lector", PersonID: ptr(1), PersonName: "Anne Byrne"},
			),
			mass("b", 7, "10:00:00",
				domain.RoleAssignment{RoleID: 1, RoleName: "Lector", PersonID: ptr(1), PersonName: "Anne Byrne"},
			),
		}}
		err := ValidateBatchAssignments(batch)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "two masses")
	})

	t.Run("excluded masses are ignored", func(t *testing.T) {
		conflicting := mass("b", 7, "10:00:00",
			domain.RoleAssignment{RoleID: 1, RoleName: "Lector", PersonID: ptr(1), PersonName: "Anne Byrne"},
		)
		conflicting.IsIncluded = false

		batch := &domain.ProposedBatch{Masses: []*domain.ProposedMass{
			mass("a", 7, "10:00:00",
				domain.RoleAssignment{RoleID: 1, RoleName: "Lector", PersonID: ptr(1), PersonName: "Anne Byrne"},
			),
			conflicting,
		}}
		assert.NoError(t, ValidateBatchAssignments(batch))
	})
}

func TestValidateDateRange(t *testing.T) {
	start := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, ValidateDateRange(start, start))
	assert.NoError(t, ValidateDateRange(start, start.AddDate(0, 0, 30)))
	assert.Error(t, ValidateDateRange(start, start.AddDate(0, 0, -1)))
}

func TestValidateTemplateItems(t *testing.T) {
	valid := []domain.MassTimeTemplateItem{
		{Time: "10:00:00", DayType: domain.DayTypeSameDay},
		{Time: "17:30:00", DayType: domain.DayTypeDayBefore},
	}
	assert.NoError(t, ValidateTemplateItems(valid))

	assert.Error(t, ValidateTemplateItems([]domain.MassTimeTemplateItem{
		{Time: "25:00:00", DayType: domain.DayTypeSameDay},
	}))
	assert.Error(t, ValidateTemplateItems([]domain.MassTimeTemplateItem{
		{Time: "10:00:00", DayType: "SOMETIME"},
	}))
}
