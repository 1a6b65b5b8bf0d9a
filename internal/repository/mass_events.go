package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/parishops/sacristy/backend/internal/domain"
	"github.com/parishops/sacristy/backend/internal/scheduler"
)

// CommitProposedBatch persists every included mass of the batch. Occurrences
// commit independently so one failure never rolls back its siblings; failed
// ones are reported in the result instead. Parallelism is bounded by
// SCHEDULER_COMMIT_PARALLELISM.
func (r *Repository) CommitProposedBatch(ctx context.Context, batch *domain.ProposedBatch, userID int64) (*domain.ScheduleResult, error) {
	included := batch.IncludedMasses()

	parallelism := r.cfg.Scheduler.CommitParallelism
	if parallelism < 1 {
		parallelism = 1
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		sem      = make(chan struct{}, parallelism)
		created  = []domain.CreatedMass{}
		failures = []domain.OccurrenceFailure{}
	)

	for _, mass := range included {
		wg.Add(1)
		sem <- struct{}{}

		go func(mass *domain.ProposedMass) {
			defer wg.Done()
			defer func() { <-sem }()

			createdMass, err := r.commitProposedMass(ctx, mass, userID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, domain.OccurrenceFailure{
					OccurrenceID: mass.ID,
					Date:         mass.ScheduledDate,
					Time:         mass.Time,
					Reason:       err.Error(),
				})
				return
			}
			created = append(created, *createdMass)
		}(mass)
	}

	wg.Wait()

	sort.Slice(created, func(i, j int) bool {
		if !created[i].Date.Equal(created[j].Date) {
			return created[i].Date.Before(created[j].Date)
		}
		return created[i].Time < created[j].Time
	})
	sort.Slice(failures, func(i, j int) bool {
		if !failures[i].Date.Equal(failures[j].Date) {
			return failures[i].Date.Before(failures[j].Date)
		}
		return failures[i].Time < failures[j].Time
	})

	// unassigned slots are not persisted, so the summary counts come from
	// the in-memory batch rather than from what was inserted
	total, assigned, unassigned := scheduler.SummarizeAssignments(batch)

	return &domain.ScheduleResult{
		MassesCreated:   len(created),
		RolesTotal:      total,
		RolesAssigned:   assigned,
		RolesUnassigned: unassigned,
		Masses:          created,
		Failures:        failures,
	}, nil
}

func (r *Repository) commitProposedMass(ctx context.Context, mass *domain.ProposedMass, userID int64) (*domain.CreatedMass, error) {
	txCtx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(txCtx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var masterEventID int64
	insertMasterEventQuery := `
		INSERT INTO master_events (name, event_date, event_time, template_id, template_item_id, is_vigil, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	args := []any{mass.DisplayName, mass.ScheduledDate, mass.Time, mass.TemplateID, mass.TemplateItemID, mass.IsVigil, userID}
	if err := tx.QueryRowContext(txCtx, insertMasterEventQuery, args...).Scan(&masterEventID); err != nil {
		return nil, err
	}

	var calendarEventID int64
	insertCalendarEventQuery := `
		INSERT INTO calendar_events (master_event_id, field_key, event_date, event_time, title, liturgical_event_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	fieldKey := mass.ScheduledDate.Format("2006-01-02") + " " + mass.Time
	args = []any{masterEventID, fieldKey, mass.ScheduledDate, mass.Time, mass.DisplayName, mass.LiturgicalEventID}
	if err := tx.QueryRowContext(txCtx, insertCalendarEventQuery, args...).Scan(&calendarEventID); err != nil {
		return nil, err
	}

	insertRoleQuery := `
		INSERT INTO master_event_roles (master_event_id, role_id, person_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	createdAssignments := []domain.CreatedAssignment{}
	for _, assignment := range mass.Assignments {
		// slots nobody filled stay out of the database
		if assignment.PersonID == nil {
			continue
		}

		var roleInstanceID int64
		args = []any{masterEventID, assignment.RoleID, *assignment.PersonID}
		if err := tx.QueryRowContext(txCtx, insertRoleQuery, args...).Scan(&roleInstanceID); err != nil {
			return nil, err
		}

		createdAssignments = append(createdAssignments, domain.CreatedAssignment{
			RoleInstanceID: roleInstanceID,
			RoleID:         assignment.RoleID,
			RoleName:       assignment.RoleName,
			PersonID:       assignment.PersonID,
			PersonName:     assignment.PersonName,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &domain.CreatedMass{
		MasterEventID:   masterEventID,
		CalendarEventID: calendarEventID,
		Date:            mass.ScheduledDate,
		Time:            mass.Time,
		DisplayName:     mass.DisplayName,
		Assignments:     createdAssignments,
	}, nil
}
