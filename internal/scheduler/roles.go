package scheduler

import "github.com/parishops/sacristy/backend/internal/domain"

// RebuildRoleSlots expands every role definition into count independent slots
// on every mass of the batch. All prior person bindings are discarded: this is
// the explicit, destructive "refresh" and callers confirm it with the user
// before invoking.
func RebuildRoleSlots(batch *domain.ProposedBatch, roles []*domain.MassRole) {
	for _, m := range batch.Masses {
		m.Assignments = buildSlots(roles)
	}
}

func buildSlots(roles []*domain.MassRole) []domain.RoleAssignment {
	slots := []domain.RoleAssignment{}
	for _, role := range roles {
		count := int(role.Count)
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			slots = append(slots, domain.RoleAssignment{
				RoleID:   role.ID,
				RoleName: role.Name,
			})
		}
	}
	return slots
}
