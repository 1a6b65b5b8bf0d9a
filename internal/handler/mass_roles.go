package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllMassRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.repository.GetAllMassRoles()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "roles fetched", roles)
}

func (h *Handler) GetRoleCandidates(w http.ResponseWriter, r *http.Request) {
	roleIDParam := chi.URLParam(r, "id")
	roleID, err := strconv.ParseInt(roleIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid role id")
		return
	}

	if _, err := h.repository.GetMassRoleByID(roleID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "role not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	candidates, err := h.repository.GetRoleCandidates(roleID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "candidates fetched", candidates)
}
