package handler

import (
	"net/http"
	"time"

	"github.com/parishops/sacristy/backend/internal/utils"
)

func (h *Handler) GetLiturgicalEvents(w http.ResponseWriter, r *http.Request) {
	startParam := r.URL.Query().Get("start")
	endParam := r.URL.Query().Get("end")

	start, err := time.Parse("2006-01-02", startParam)
	if err != nil {
		h.errorResponse(w, r, "invalid start date")
		return
	}
	end, err := time.Parse("2006-01-02", endParam)
	if err != nil {
		h.errorResponse(w, r, "invalid end date")
		return
	}

	if err := utils.ValidateDateRange(start, end); err != nil {
		h.badRequest(w, r, err)
		return
	}

	events, err := h.repository.GetLiturgicalEventsInRange(start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "liturgical events fetched", events)
}
