package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/parishops/sacristy/backend/internal/domain"
	"github.com/parishops/sacristy/backend/internal/utils"
)

func (h *Handler) GetAllMassTimeTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.repository.GetAllMassTimeTemplates()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "templates fetched", templates)
}

func (h *Handler) CreateMassTimeTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name" validate:"required"`
		DayOfWeek string `json:"dayOfWeek" validate:"required,oneof=SUNDAY MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY MOVABLE"`
		IsActive  *bool  `json:"isActive"`
		Items     []struct {
			Time    string `json:"time" validate:"required"`
			DayType string `json:"dayType" validate:"required,oneof=IS_DAY DAY_BEFORE"`
			Name    string `json:"name"`
		} `json:"items" validate:"dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	tmpl := &domain.MassTimeTemplate{
		Name:      req.Name,
		DayOfWeek: domain.DayOfWeek(req.DayOfWeek),
		IsActive:  true,
		Items:     make([]domain.MassTimeTemplateItem, 0, len(req.Items)),
	}
	if req.IsActive != nil {
		tmpl.IsActive = *req.IsActive
	}

	for _, item := range req.Items {
		tmpl.Items = append(tmpl.Items, domain.MassTimeTemplateItem{
			Time:    item.Time,
			DayType: domain.DayType(item.DayType),
			Name:    item.Name,
		})
	}

	if err := utils.ValidateTemplateItems(tmpl.Items); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateMassTimeTemplate(tmpl); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "mass_time_templates_name_key":
				h.errorResponse(w, r, "template name already taken")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "template created", tmpl)
}

func (h *Handler) GetMassTimeTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl := r.Context().Value(MassTimeTemplateCtx).(*domain.MassTimeTemplate)

	h.successResponse(w, r, "template fetched", tmpl)
}

func (h *Handler) UpdateMassTimeTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl := r.Context().Value(MassTimeTemplateCtx).(*domain.MassTimeTemplate)

	var req struct {
		Name      *string `json:"name"`
		DayOfWeek *string `json:"dayOfWeek" validate:"omitempty,oneof=SUNDAY MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY MOVABLE"`
		IsActive  *bool   `json:"isActive"`
		Items     *[]struct {
			Time    string `json:"time" validate:"required"`
			DayType string `json:"dayType" validate:"required,oneof=IS_DAY DAY_BEFORE"`
			Name    string `json:"name"`
		} `json:"items" validate:"omitempty,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		tmpl.Name = *req.Name
	}
	if req.DayOfWeek != nil {
		tmpl.DayOfWeek = domain.DayOfWeek(*req.DayOfWeek)
	}
	if req.IsActive != nil {
		tmpl.IsActive = *req.IsActive
	}
	if req.Items != nil {
		items := make([]domain.MassTimeTemplateItem, 0, len(*req.Items))
		for _, item := range *req.Items {
			items = append(items, domain.MassTimeTemplateItem{
				Time:    item.Time,
				DayType: domain.DayType(item.DayType),
				Name:    item.Name,
			})
		}
		tmpl.Items = items
	}

	if err := utils.ValidateTemplateItems(tmpl.Items); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateMassTimeTemplate(tmpl); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "mass_time_templates_name_key":
				h.errorResponse(w, r, "template name already taken")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "template update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "template updated", tmpl)
}

func (h *Handler) DeleteMassTimeTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl := r.Context().Value(MassTimeTemplateCtx).(*domain.MassTimeTemplate)

	if err := h.repository.DeleteMassTimeTemplate(tmpl.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "template deleted", nil)
}
