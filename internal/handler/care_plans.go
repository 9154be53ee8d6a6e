package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) CreateCarePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlanName     string `json:"planName" validate:"required"`
		Category     string `json:"category" validate:"required"`
		MonthlyPrice int64  `json:"monthlyPrice" validate:"required,gt=0"`
		Description  string `json:"description"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	plan := &domain.CarePlan{
		PlanName:     req.PlanName,
		Category:     req.Category,
		MonthlyPrice: req.MonthlyPrice,
		Description:  req.Description,
		IsActive:     true,
	}

	if err := h.repository.CreateCarePlan(plan); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "care_plans_plan_name_key":
			h.badRequest(w, r, errors.New("this plan name already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "care plan created", plan)
}

func (h *Handler) GetAllCarePlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.repository.GetAllCarePlans()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched care plan list", plans)
}

func (h *Handler) GetCarePlan(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(CarePlanCtx).(*domain.CarePlan)
	h.successResponse(w, r, "fetched care plan info", plan)
}

func (h *Handler) UpdateCarePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlanName     *string `json:"planName"`
		Category     *string `json:"category"`
		MonthlyPrice *int64  `json:"monthlyPrice" validate:"omitempty,gt=0"`
		Description  *string `json:"description"`
		IsActive     *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	plan := r.Context().Value(CarePlanCtx).(*domain.CarePlan)

	if req.PlanName != nil {
		plan.PlanName = *req.PlanName
	}
	if req.Category != nil {
		plan.Category = *req.Category
	}
	if req.MonthlyPrice != nil {
		plan.MonthlyPrice = *req.MonthlyPrice
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateCarePlan(plan); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "could not update the care plan, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "care plan updated", plan)
}

func (h *Handler) DeleteCarePlan(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(CarePlanCtx).(*domain.CarePlan)

	if err := h.repository.DeleteCarePlan(plan.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "care_plan_assignments_care_plan_id_fkey":
			h.errorResponse(w, r, "assignments for this care plan still exist")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "care plan deleted", nil)
}
