package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/parishops/sacristy/backend/internal/domain"
	"github.com/parishops/sacristy/backend/internal/utils"
)

// One draft per coordinator. Saving again overwrites the previous draft;
// drafts expire server-side after SESSION_EXPIRATION seconds.
func (h *Handler) sessionKey(userID int64) string {
	return fmt.Sprintf("scheduling_session_%d", userID)
}

func (h *Handler) SaveSchedulingSession(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Step                       int32                 `json:"step" validate:"required,gte=1,lte=5"`
		StartDate                  string                `json:"startDate" validate:"required"`
		EndDate                    string                `json:"endDate" validate:"required"`
		SelectedTemplateIDs        []int64               `json:"selectedTemplateIDs"`
		SelectedLiturgicalEventIDs []int64               `json:"selectedLiturgicalEventIDs"`
		Batch                      *domain.ProposedBatch `json:"batch"`
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

	session := &domain.SchedulingSession{
		ID:                         uuid.NewString(),
		UserID:                     myInfo.ID,
		Step:                       req.Step,
		StartDate:                  startDate,
		EndDate:                    endDate,
		SelectedTemplateIDs:        req.SelectedTemplateIDs,
		SelectedLiturgicalEventIDs: req.SelectedLiturgicalEventIDs,
		Batch:                      req.Batch,
		UpdatedAt:                  time.Now(),
	}

	data, err := json.Marshal(session)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Set(ctx, h.sessionKey(myInfo.ID), data, time.Duration(h.config.Session.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "draft saved", session)
}

func (h *Handler) GetSchedulingSession(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	data, err := h.redisClient.Get(ctx, h.sessionKey(myInfo.ID)).Bytes()
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			h.successResponse(w, r, "no draft in progress", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	session := &domain.SchedulingSession{}
	if err := json.Unmarshal(data, session); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "draft fetched", session)
}

func (h *Handler) DeleteSchedulingSession(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, h.sessionKey(myInfo.ID)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "draft discarded", nil)
}
