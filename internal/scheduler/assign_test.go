package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/parishops/sacristy/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lectorPool(ids ...int64) []*domain.RoleCandidate {
	pool := make([]*domain.RoleCandidate, 0, len(ids))
	names := map[int64]string{
		1: "Anne Byrne", 2: "Brendan Doyle", 3: "Clare Nolan", 4: "Declan Walsh",
	}
	for _, id := range ids {
		pool = append(pool, &domain.RoleCandidate{PersonID: id, FullName: names[id]})
	}
	return pool
}

func decemberBatch(t *testing.T, roles []*domain.MassRole) *domain.ProposedBatch {
	t.Helper()
	batch, err := Generate(GenerateInput{
		StartDate:           date(2025, time.December, 1),
		EndDate:             date(2025, time.December, 31),
		Templates:           []*domain.MassTimeTemplate{sundayTemplate()},
		SelectedTemplateIDs: []int64{1},
		Roles:               roles,
	})
	require.NoError(t, err)
	return batch
}

func TestAssignAllBalancesLoad(t *testing.T) {
	roles := []*domain.MassRole{{ID: 1, Name: "Lector", Count: 1}}
	batch := decemberBatch(t, roles) // 4 Sundays, 1 slot each

	a := NewAssigner(map[int64][]*domain.RoleCandidate{1: lectorPool(1, 2)}, nil)
	require.NoError(t, a.AssignAll(context.Background(), batch))

	counts := map[int64]int{}
	for _, m := range batch.Masses {
		require.NotNil(t, m.Assignments[0].PersonID)
		counts[*m.Assignments[0].PersonID]++
	}
	assert.Equal(t, 2, counts[1])
	assert.Equal(t, 2, counts[2])
}

func TestAssignAllRespectsBlackouts(t *testing.T) {
	roles := []*domain.MassRole{{ID: 1, Name: "Lector", Count: 1}}
	batch := decemberBatch(t, roles)

	pool := lectorPool(1, 2)
	// Anne is away on the 14th, even though fairness would pick her
	pool[0].Blackouts = []domain.BlackoutRange{{
		StartDate: date(2025, time.December, 14),
		EndDate:   date(2025, time.December, 14),
		Reason:    "travel",
	}}

	a := NewAssigner(map[int64][]*domain.RoleCandidate{1: pool}, nil)
	require.NoError(t, a.AssignAll(context.Background(), batch))

	for _, m := range batch.Masses {
		require.NotNil(t, m.Assignments[0].PersonID)
		if m.ScheduledDate.Equal(date(2025, time.December, 14)) {
			assert.Equal(t, int64(2), *m.Assignments[0].PersonID)
		}
	}
}

func TestAssignAllNeverDoubleBooks(t *testing.T) {
	roles := []*domain.MassRole{
		{ID: 1, Name: "Lector", Count: 1},
		{ID: 2, Name: "Altar Server", Count: 2},
	}
	batch := decemberBatch(t, roles)

	// the same two people serve both roles, so every mass is under pressure
	pools := map[int64][]*domain.RoleCandidate{
		1: lectorPool(1, 2),
		2: lectorPool(1, 2),
	}

	a := NewAssigner(pools, nil)
	require.NoError(t, a.AssignAll(context.Background(), batch))

	for _, m := range batch.Masses {
		seen := map[int64]bool{}
		for _, slot := range m.Assignments {
			if slot.PersonID == nil {
				continue
			}
			assert.False(t, seen[*slot.PersonID], "person %d booked twice at %s %s", *slot.PersonID, m.ScheduledDate, m.Time)
			seen[*slot.PersonID] = true
		}
	}
}

func TestAssignAllLeavesExhaustedSlotsUnassigned(t *testing.T) {
	roles := []*domain.MassRole{{ID: 1, Name: "Lector", Count: 3}}
	batch := decemberBatch(t, roles)

	a := NewAssigner(map[int64][]*domain.RoleCandidate{1: lectorPool(1, 2)}, nil)
	require.NoError(t, a.AssignAll(context.Background(), batch))

	total, assigned, unassigned := SummarizeAssignments(batch)
	assert.Equal(t, 12, total)
	assert.Equal(t, 8, assigned)
	assert.Equal(t, 4, unassigned)
}

func TestAssignAllSkipsExcludedMasses(t *testing.T) {
	roles := []*domain.MassRole{{ID: 1, Name: "Lector", Count: 1}}
	batch := decemberBatch(t, roles)
	batch.Masses[0].IsIncluded = false

	a := NewAssigner(map[int64][]*domain.RoleCandidate{1: lectorPool(1)}, nil)
	require.NoError(t, a.AssignAll(context.Background(), batch))

	assert.Nil(t, batch.Masses[0].Assignments[0].PersonID)
	for _, m := range batch.Masses[1:] {
		assert.NotNil(t, m.Assignments[0].PersonID)
	}
}

func TestAssignAllRespectsPreferredItems(t *testing.T) {
	roles := []*domain.MassRole{{ID: 1, Name: "Lector", Count: 1}}
	batch, err := Generate(GenerateInput{
		StartDate:           date(2025, time.December, 6),
		EndDate:             date(2025, time.December, 8),
		Templates:           []*domain.MassTimeTemplate{saturdayVigilTemplate()},
		SelectedTemplateIDs: []int64{2},
		Roles:               roles,
	})
	require.NoError(t, err)
	require.Len(t, batch.Masses, 2)

	pool := lectorPool(1)
	pool[0].PreferredItemIDs = []int64{21} // vigil only

	a := NewAssigner(map[int64][]*domain.RoleCandidate{1: pool}, nil)
	require.NoError(t, a.AssignAll(context.Background(), batch))

	vigil, day := batch.Masses[0], batch.Masses[1]
	require.True(t, vigil.IsVigil)
	assert.NotNil(t, vigil.Assignments[0].PersonID)
	assert.Nil(t, day.Assignments[0].PersonID)
}

func TestAssignAllIsIdempotentOnCounts(t *testing.T) {
	roles := []*domain.MassRole{
		{ID: 1, Name: "Lector", Count: 1},
		{ID: 2, Name: "Altar Server", Count: 2},
	}
	batch := decemberBatch(t, roles)
	pools := map[int64][]*domain.RoleCandidate{
		1: lectorPool(1, 2, 3),
		2: lectorPool(2, 3, 4),
	}

	a := NewAssigner(pools, ByFullName)
	require.NoError(t, a.AssignAll(context.Background(), batch))
	_, firstAssigned, firstUnassigned := SummarizeAssignments(batch)

	require.NoError(t, a.AssignAll(context.Background(), batch))
	_, secondAssigned, secondUnassigned := SummarizeAssignments(batch)

	assert.Equal(t, firstAssigned, secondAssigned)
	assert.Equal(t, firstUnassigned, secondUnassigned)
}

func TestAssignAllCancellation(t *testing.T) {
	roles := []*domain.MassRole{{ID: 1, Name: "Lector", Count: 1}}
	batch := decemberBatch(t, roles)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := NewAssigner(map[int64][]*domain.RoleCandidate{1: lectorPool(1)}, nil)
	assert.ErrorIs(t, a.AssignAll(ctx, batch), context.Canceled)
}

func TestCandidateOrderBreaksTies(t *testing.T) {
	roles := []*domain.MassRole{{ID: 1, Name: "Lector", Count: 1}}
	batch := decemberBatch(t, roles)

	// pool listed in reverse alphabetical order; the comparator must win
	pool := lectorPool(2, 1)
	a := NewAssigner(map[int64][]*domain.RoleCandidate{1: pool}, ByFullName)
	require.NoError(t, a.AssignAll(context.Background(), batch))

	// first mass goes to Anne (alphabetically first), then alternation
	assert.Equal(t, int64(1), *batch.Masses[0].Assignments[0].PersonID)
	assert.Equal(t, int64(2), *batch.Masses[1].Assignments[0].PersonID)
}

func TestSuggestExcludesPeopleAlreadyAtSameMass(t *testing.T) {
	roles := []*domain.MassRole{
		{ID: 1, Name: "Lector", Count: 1},
		{ID: 2, Name: "Altar Server", Count: 1},
	}
	batch := decemberBatch(t, roles)

	m := batch.Masses[0]
	require.NoError(t, AssignSlot(batch, m.ID, 0, 1, "Anne Byrne"))

	pools := map[int64][]*domain.RoleCandidate{2: lectorPool(1, 2)}
	a := NewAssigner(pools, nil)

	suggested, err := a.Suggest(batch, m.ID, 2)
	require.NoError(t, err)
	require.NotNil(t, suggested)
	assert.Equal(t, int64(2), suggested.PersonID)
}

func TestManualAssignAndClearSlot(t *testing.T) {
	roles := []*domain.MassRole{{ID: 1, Name: "Lector", Count: 1}}
	batch := decemberBatch(t, roles)
	m := batch.Masses[0]

	require.NoError(t, AssignSlot(batch, m.ID, 0, 7, "Eilis Keane"))
	require.NotNil(t, m.Assignments[0].PersonID)
	assert.Equal(t, int64(7), *m.Assignments[0].PersonID)

	require.NoError(t, ClearSlot(batch, m.ID, 0))
	assert.Nil(t, m.Assignments[0].PersonID)

	assert.Error(t, AssignSlot(batch, "missing", 0, 7, "Eilis Keane"))
	assert.Error(t, ClearSlot(batch, m.ID, 5))
}
