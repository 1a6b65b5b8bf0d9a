package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/parishops/sacristy/backend/internal/domain"
	"github.com/parishops/sacristy/backend/internal/scheduler"
	"github.com/parishops/sacristy/backend/internal/utils"
)

// PreviewMassSchedule expands the selected templates over the date range and
// matches liturgical events, returning a batch with empty role slots. Nothing
// is persisted; the client edits the batch and sends it back.
func (h *Handler) PreviewMassSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate          string  `json:"startDate" validate:"required"`
		EndDate            string  `json:"endDate" validate:"required"`
		TemplateIDs        []int64 `json:"templateIDs" validate:"required,min=1"`
		LiturgicalEventIDs []int64 `json:"liturgicalEventIDs"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.errorResponse(w, r, "invalid start date")
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		h.errorResponse(w, r, "invalid end date")
		return
	}

	if err := utils.ValidateDateRange(startDate, endDate); err != nil {
		h.badRequest(w, r, err)
		return
	}

	templates, err := h.repository.GetMassTimeTemplatesByIDs(req.TemplateIDs)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	events, err := h.repository.GetLiturgicalEventsByIDs(req.LiturgicalEventIDs)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	roles, err := h.repository.GetAllMassRoles()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	batch, err := scheduler.Generate(scheduler.GenerateInput{
		StartDate:                  startDate,
		EndDate:                    endDate,
		Templates:                  templates,
		SelectedTemplateIDs:        req.TemplateIDs,
		LiturgicalEvents:           events,
		SelectedLiturgicalEventIDs: req.LiturgicalEventIDs,
		Roles:                      roles,
		DefaultMovableTime:         h.config.Scheduler.DefaultMovableTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrEndBeforeStart),
			errors.Is(err, scheduler.ErrNoTemplatesSelected),
			errors.Is(err, scheduler.ErrNoRolesDefined):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "schedule preview generated", batch)
}

// ProposeAssignments fills every role slot of the batch with the least-loaded
// eligible candidate. The batch comes back fully rebuilt; re-running it on an
// edited batch recomputes all automatic slots.
func (h *Handler) ProposeAssignments(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Batch *domain.ProposedBatch `json:"batch" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	pools, err := h.loadCandidatePools()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	assigner := scheduler.NewAssigner(pools, scheduler.ByFullName)
	if err := assigner.AssignAll(r.Context(), req.Batch); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	total, assigned, unassigned := scheduler.SummarizeAssignments(req.Batch)

	h.successResponse(w, r, "assignments proposed", map[string]any{
		"batch":           req.Batch,
		"rolesTotal":      total,
		"rolesAssigned":   assigned,
		"rolesUnassigned": unassigned,
	})
}

// SuggestAssignment proposes one candidate for one slot without touching the
// rest of the batch.
func (h *Handler) SuggestAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Batch  *domain.ProposedBatch `json:"batch" validate:"required"`
		MassID string                `json:"massID" validate:"required"`
		RoleID int64                 `json:"roleID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	pools, err := h.loadCandidatePools()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	assigner := scheduler.NewAssigner(pools, scheduler.ByFullName)
	candidate, err := assigner.Suggest(req.Batch, req.MassID, req.RoleID)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	h.successResponse(w, r, "candidate suggested", candidate)
}

// CommitMassSchedule persists the batch. Per-occurrence failures do not abort
// the commit; the result lists them. Each minister who received at least one
// assignment gets a notification mail.
func (h *Handler) CommitMassSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Batch *domain.ProposedBatch `json:"batch" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := utils.ValidateBatchAssignments(req.Batch); err != nil {
		h.badRequest(w, r, err)
		return
	}

	subString := r.Context().Value(SubCtxKey).(string)
	userID, err := strconv.ParseInt(subString, 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	result, err := h.repository.CommitProposedBatch(r.Context(), req.Batch, userID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.notifyAssignedMinisters(result); err != nil {
		// the schedule is already committed, losing the mails is the lesser evil
		h.logInternalServerError(r, err)
	}

	h.successResponse(w, r, "schedule committed", result)
}

func (h *Handler) loadCandidatePools() (map[int64][]*domain.RoleCandidate, error) {
	roles, err := h.repository.GetAllMassRoles()
	if err != nil {
		return nil, err
	}

	pools := map[int64][]*domain.RoleCandidate{}
	for _, role := range roles {
		candidates, err := h.repository.GetRoleCandidates(role.ID)
		if err != nil {
			return nil, err
		}
		pools[role.ID] = candidates
	}

	return pools, nil
}

func (h *Handler) notifyAssignedMinisters(result *domain.ScheduleResult) error {
	assignmentsByPerson := map[int64][]domain.AssignmentMailItem{}
	for _, mass := range result.Masses {
		for _, assignment := range mass.Assignments {
			if assignment.PersonID == nil {
				continue
			}
			assignmentsByPerson[*assignment.PersonID] = append(assignmentsByPerson[*assignment.PersonID], domain.AssignmentMailItem{
				Date:     mass.Date.Format("2006-01-02"),
				Time:     mass.Time,
				MassName: mass.DisplayName,
				RoleName: assignment.RoleName,
			})
		}
	}

	if len(assignmentsByPerson) == 0 {
		return nil
	}

	personIDs := make([]int64, 0, len(assignmentsByPerson))
	for id := range assignmentsByPerson {
		personIDs = append(personIDs, id)
	}

	people, err := h.repository.GetPeopleByIDs(personIDs)
	if err != nil {
		return err
	}

	for personID, items := range assignmentsByPerson {
		person, ok := people[personID]
		if !ok || person.Email == "" {
			continue
		}

		mailMessage := domain.MailMessage{
			Type: "assignment_notification",
			To:   person.Email,
			Data: domain.AssignmentNotificationMailData{
				FullName:    person.FullName,
				Assignments: items,
			},
		}

		mailData, err := json.Marshal(mailMessage)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)

		err = h.mailChannel.PublishWithContext(
			ctx,
			"",
			"mail_queue",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        mailData,
			},
		)
		cancel()
		if err != nil {
			return err
		}
	}

	return nil
}
