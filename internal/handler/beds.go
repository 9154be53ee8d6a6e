package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) CreateBed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BedNumber string `json:"bedNumber" validate:"required"`
		RoomID    int64  `json:"roomID" validate:"required"`
		BedType   string `json:"bedType" validate:"required"`
		Status    string `json:"status" validate:"omitempty,oneof=available occupied maintenance"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	room, err := h.repository.GetRoomByID(req.RoomID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "room not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// the declared bed count caps how many bed rows a room can hold
	count, err := h.repository.CountBedsByRoomID(room.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if count >= room.BedCount {
		h.errorResponse(w, r, "this room already has its full number of beds")
		return
	}

	bed := &domain.Bed{
		BedNumber: req.BedNumber,
		RoomID:    req.RoomID,
		BedType:   req.BedType,
		Status:    domain.BedStatusAvailable,
	}
	if req.Status != "" {
		bed.Status = domain.BedStatus(req.Status)
	}

	if err := h.repository.CreateBed(bed); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "beds_room_id_bed_number_key":
			h.badRequest(w, r, errors.New("this bed number already exists in the room"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "bed created", bed)
}

func (h *Handler) GetBed(w http.ResponseWriter, r *http.Request) {
	bed := r.Context().Value(BedCtx).(*domain.Bed)
	h.successResponse(w, r, "fetched bed info", bed)
}

func (h *Handler) UpdateBed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BedNumber *string `json:"bedNumber"`
		BedType   *string `json:"bedType"`
		Status    *string `json:"status" validate:"omitempty,oneof=available occupied maintenance"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	bed := r.Context().Value(BedCtx).(*domain.Bed)

	if req.BedNumber != nil {
		bed.BedNumber = *req.BedNumber
	}
	if req.BedType != nil {
		bed.BedType = *req.BedType
	}
	if req.Status != nil {
		bed.Status = domain.BedStatus(*req.Status)
	}

	if err := h.repository.UpdateBed(bed); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "could not update the bed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "bed updated", bed)
}

func (h *Handler) DeleteBed(w http.ResponseWriter, r *http.Request) {
	bed := r.Context().Value(BedCtx).(*domain.Bed)

	if err := h.repository.DeleteBed(bed.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "bed_assignments_bed_id_fkey":
			h.errorResponse(w, r, "assignments for this bed still exist")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "bed deleted", nil)
}
