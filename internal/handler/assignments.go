package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"github.com/goldencare-dev/carehome/backend/internal/occupancy"
	"github.com/goldencare-dev/carehome/backend/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) CreateBedAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BedID        int64      `json:"bedID" validate:"required"`
		ResidentID   int64      `json:"residentID" validate:"required"`
		AssignedAt   *time.Time `json:"assignedAt"`
		UnassignedAt *time.Time `json:"unassignedAt"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	assignment := &domain.BedAssignment{
		BedID:        req.BedID,
		ResidentID:   &req.ResidentID,
		Status:       domain.AssignmentStatusPending,
		AssignedAt:   req.AssignedAt,
		UnassignedAt: req.UnassignedAt,
	}

	if err := utils.ValidateBedAssignmentWindow(assignment); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateBedAssignment(assignment); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "bed_assignments_bed_id_fkey":
				h.badRequest(w, r, errors.New("the bed does not exist"))
			case pgErr.ConstraintName == "bed_assignments_resident_id_fkey":
				h.badRequest(w, r, errors.New("the resident does not exist"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "bed assignment created", assignment)
}

func (h *Handler) GetAllBedAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.repository.GetAllBedAssignments()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched bed assignment list", assignments)
}

func (h *Handler) GetBedAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(BedAssignmentCtx).(*domain.BedAssignment)
	h.successResponse(w, r, "fetched bed assignment info", assignment)
}

func (h *Handler) ApproveBedAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(BedAssignmentCtx).(*domain.BedAssignment)

	if assignment.Status != domain.AssignmentStatusPending {
		h.errorResponse(w, r, "only pending assignments can be approved")
		return
	}

	assignment.Status = domain.AssignmentStatusApproved
	if err := h.repository.UpdateBedAssignment(assignment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the assignment changed underneath you, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "bed assignment approved", assignment)
}

func (h *Handler) RejectBedAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(BedAssignmentCtx).(*domain.BedAssignment)

	if assignment.Status != domain.AssignmentStatusPending {
		h.errorResponse(w, r, "only pending assignments can be rejected")
		return
	}

	assignment.Status = domain.AssignmentStatusRejected
	if err := h.repository.UpdateBedAssignment(assignment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the assignment changed underneath you, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "bed assignment rejected", assignment)
}

// ActivateBedAssignment flips an approved assignment to active, unless the
// bed already has another assignment in effect.
func (h *Handler) ActivateBedAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(BedAssignmentCtx).(*domain.BedAssignment)

	if assignment.Status != domain.AssignmentStatusApproved && assignment.Status != domain.AssignmentStatusAccepted {
		h.errorResponse(w, r, "only approved assignments can be activated")
		return
	}

	history, err := h.repository.GetBedAssignmentsByBedID(assignment.BedID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	reps := occupancy.Reconcile(occupancy.FromBedAssignments(history), time.Now())
	if rep, ok := reps[assignment.BedID]; ok && rep.Active && rep.Record.ID != assignment.ID {
		h.errorResponse(w, r, "the bed is already occupied")
		return
	}

	assignment.Status = domain.AssignmentStatusActive
	if assignment.AssignedAt == nil {
		now := time.Now()
		assignment.AssignedAt = &now
	}

	if err := h.repository.UpdateBedAssignment(assignment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the assignment changed underneath you, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "bed assignment activated", assignment)
}

func (h *Handler) FinishBedAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(BedAssignmentCtx).(*domain.BedAssignment)

	if assignment.Status != domain.AssignmentStatusActive {
		h.errorResponse(w, r, "only active assignments can be finished")
		return
	}

	assignment.Status = domain.AssignmentStatusDone
	if assignment.UnassignedAt == nil {
		now := time.Now()
		assignment.UnassignedAt = &now
	}

	if err := h.repository.UpdateBedAssignment(assignment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the assignment changed underneath you, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "bed assignment finished", assignment)
}

func (h *Handler) CreateCarePlanAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CarePlanID int64      `json:"carePlanID" validate:"required"`
		ResidentID int64      `json:"residentID" validate:"required"`
		StartAt    *time.Time `json:"startAt"`
		EndAt      *time.Time `json:"endAt"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	plan, err := h.repository.GetCarePlanByID(req.CarePlanID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "care plan not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !plan.IsActive {
		h.errorResponse(w, r, "this care plan is no longer offered")
		return
	}

	assignment := &domain.CarePlanAssignment{
		CarePlanID: req.CarePlanID,
		ResidentID: req.ResidentID,
		Status:     domain.AssignmentStatusPending,
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
	}

	if err := utils.ValidateCarePlanAssignmentWindow(assignment); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateCarePlanAssignment(assignment); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "care_plan_assignments_resident_id_fkey":
			h.badRequest(w, r, errors.New("the resident does not exist"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "care plan assignment created", assignment)
}

func (h *Handler) GetCarePlanAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(CarePlanAssignmentCtx).(*domain.CarePlanAssignment)
	h.successResponse(w, r, "fetched care plan assignment info", assignment)
}

func (h *Handler) ApproveCarePlanAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(CarePlanAssignmentCtx).(*domain.CarePlanAssignment)

	if assignment.Status != domain.AssignmentStatusPending {
		h.errorResponse(w, r, "only pending assignments can be approved")
		return
	}

	assignment.Status = domain.AssignmentStatusApproved
	if err := h.repository.UpdateCarePlanAssignment(assignment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the assignment changed underneath you, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "care plan assignment approved", assignment)
}

func (h *Handler) RejectCarePlanAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(CarePlanAssignmentCtx).(*domain.CarePlanAssignment)

	if assignment.Status != domain.AssignmentStatusPending {
		h.errorResponse(w, r, "only pending assignments can be rejected")
		return
	}

	assignment.Status = domain.AssignmentStatusRejected
	if err := h.repository.UpdateCarePlanAssignment(assignment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the assignment changed underneath you, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "care plan assignment rejected", assignment)
}

// ActivateCarePlanAssignment flips an approved subscription to active, unless
// the resident already has an effective subscription to the same plan.
func (h *Handler) ActivateCarePlanAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(CarePlanAssignmentCtx).(*domain.CarePlanAssignment)

	if assignment.Status != domain.AssignmentStatusApproved && assignment.Status != domain.AssignmentStatusAccepted {
		h.errorResponse(w, r, "only approved assignments can be activated")
		return
	}

	history, err := h.repository.GetCarePlanAssignmentsByResidentID(assignment.ResidentID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	reps := occupancy.Reconcile(occupancy.FromCarePlanAssignments(history), time.Now())
	if rep, ok := reps[assignment.CarePlanID]; ok && rep.Active && rep.Record.ID != assignment.ID {
		h.errorResponse(w, r, "the resident already subscribes to this care plan")
		return
	}

	assignment.Status = domain.AssignmentStatusActive
	if assignment.StartAt == nil {
		now := time.Now()
		assignment.StartAt = &now
	}

	if err := h.repository.UpdateCarePlanAssignment(assignment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the assignment changed underneath you, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "care plan assignment activated", assignment)
}

func (h *Handler) FinishCarePlanAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(CarePlanAssignmentCtx).(*domain.CarePlanAssignment)

	if assignment.Status != domain.AssignmentStatusActive {
		h.errorResponse(w, r, "only active assignments can be finished")
		return
	}

	assignment.Status = domain.AssignmentStatusDone
	if assignment.EndAt == nil {
		now := time.Now()
		assignment.EndAt = &now
	}

	if err := h.repository.UpdateCarePlanAssignment(assignment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the assignment changed underneath you, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "care plan assignment finished", assignment)
}
