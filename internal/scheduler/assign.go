package scheduler

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/parishops/sacristy/backend/internal/domain"
)

// CandidateOrder is the tie-breaking order applied among equally loaded
// candidates. A nil order keeps the pool's listing order. Keeping this
// injectable lets tests pin determinism independent of storage order.
type CandidateOrder func(a, b *domain.RoleCandidate) bool

// ByFullName orders candidates alphabetically, falling back to person id.
func ByFullName(a, b *domain.RoleCandidate) bool {
	if a.FullName != b.FullName {
		return a.FullName < b.FullName
	}
	return a.PersonID < b.PersonID
}

// Assigner fills role slots from per-role candidate pools under blackout,
// double-booking and fairness constraints.
type Assigner struct {
	pools map[int64][]*domain.RoleCandidate
}

func NewAssigner(pools map[int64][]*domain.RoleCandidate, order CandidateOrder) *Assigner {
	a := &Assigner{pools: make(map[int64][]*domain.RoleCandidate, len(pools))}
	for roleID, pool := range pools {
		sorted := make([]*domain.RoleCandidate, len(pool))
		copy(sorted, pool)
		if order != nil {
			sort.SliceStable(sorted, func(i, j int) bool { return order(sorted[i], sorted[j]) })
		}
		a.pools[roleID] = sorted
	}
	return a
}

// AssignAll recomputes every slot of every included mass, replacing whatever
// was assigned before. Masses are visited in chronological order so the
// least-loaded heuristic distributes work deterministically. Cancellation
// returns ctx.Err(); the caller discards the batch, nothing was persisted.
func (a *Assigner) AssignAll(ctx context.Context, batch *domain.ProposedBatch) error {
	counts := map[int64]int{}
	busy := map[string]map[int64]bool{}

	masses := batch.IncludedMasses()
	sort.SliceStable(masses, func(i, j int) bool {
		if !masses[i].ScheduledDate.Equal(masses[j].ScheduledDate) {
			return masses[i].ScheduledDate.Before(masses[j].ScheduledDate)
		}
		return masses[i].Time < masses[j].Time
	})

	for _, m := range masses {
		if err := ctx.Err(); err != nil {
			return err
		}

		key := slotKey(m)
		if busy[key] == nil {
			busy[key] = map[int64]bool{}
		}

		for i := range m.Assignments {
			slot := &m.Assignments[i]
			slot.PersonID = nil
			slot.PersonName = ""

			candidate := a.pick(m, slot.RoleID, counts, busy[key])
			if candidate == nil {
				// no eligible candidate left: reported in the summary counts
				// and resolved manually, never an error
				continue
			}

			id := candidate.PersonID
			slot.PersonID = &id
			slot.PersonName = candidate.FullName
			counts[id]++
			busy[key][id] = true
		}
	}

	return nil
}

// pick returns the least-loaded eligible candidate for a role at one mass, or
// nil when the pool is exhausted. Ties keep the pool order of the Assigner.
func (a *Assigner) pick(m *domain.ProposedMass, roleID int64, counts map[int64]int, taken map[int64]bool) *domain.RoleCandidate {
	var best *domain.RoleCandidate

	for _, c := range a.pools[roleID] {
		if taken[c.PersonID] {
			continue
		}
		if !a.eligible(c, m) {
			continue
		}
		if best == nil || counts[c.PersonID] < counts[best.PersonID] {
			best = c
		}
	}

	return best
}

func (a *Assigner) eligible(c *domain.RoleCandidate, m *domain.ProposedMass) bool {
	for _, blackout := range c.Blackouts {
		if blackout.Covers(m.ScheduledDate) {
			return false
		}
	}
	if len(c.PreferredItemIDs) > 0 && !slices.Contains(c.PreferredItemIDs, m.TemplateItemID) {
		return false
	}
	return true
}

// Suggest proposes a candidate for one slot of one mass given the batch's
// current assignments, without mutating anything. Used for manual single-slot
// edits in the wizard.
func (a *Assigner) Suggest(batch *domain.ProposedBatch, massID string, roleID int64) (*domain.RoleCandidate, error) {
	target := findMass(batch, massID)
	if target == nil {
		return nil, fmt.Errorf("proposed mass %s not found in batch", massID)
	}

	counts := map[int64]int{}
	taken := map[int64]bool{}
	key := slotKey(target)

	for _, m := range batch.IncludedMasses() {
		for _, slot := range m.Assignments {
			if slot.PersonID == nil {
				continue
			}
			counts[*slot.PersonID]++
			if slotKey(m) == key {
				taken[*slot.PersonID] = true
			}
		}
	}

	return a.pick(target, roleID, counts, taken), nil
}

// AssignSlot binds a person to one specific slot, leaving all other slots
// untouched. Fairness is deliberately not consulted, a human is choosing;
// double-booking is still rejected at commit validation.
func AssignSlot(batch *domain.ProposedBatch, massID string, slotIndex int, personID int64, personName string) error {
	slot, err := findSlot(batch, massID, slotIndex)
	if err != nil {
		return err
	}
	slot.PersonID = &personID
	slot.PersonName = personName
	return nil
}

// ClearSlot removes the person binding from one specific slot.
func ClearSlot(batch *domain.ProposedBatch, massID string, slotIndex int) error {
	slot, err := findSlot(batch, massID, slotIndex)
	if err != nil {
		return err
	}
	slot.PersonID = nil
	slot.PersonName = ""
	return nil
}

func findMass(batch *domain.ProposedBatch, massID string) *domain.ProposedMass {
	for _, m := range batch.Masses {
		if m.ID == massID {
			return m
		}
	}
	return nil
}

func findSlot(batch *domain.ProposedBatch, massID string, slotIndex int) (*domain.RoleAssignment, error) {
	m := findMass(batch, massID)
	if m == nil {
		return nil, fmt.Errorf("proposed mass %s not found in batch", massID)
	}
	if slotIndex < 0 || slotIndex >= len(m.Assignments) {
		return nil, fmt.Errorf("slot index %d out of range for mass %s", slotIndex, massID)
	}
	return &m.Assignments[slotIndex], nil
}

func slotKey(m *domain.ProposedMass) string {
	return dateKey(m.ScheduledDate) + " " + m.Time
}
