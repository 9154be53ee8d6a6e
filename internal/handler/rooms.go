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

func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomNumber string `json:"roomNumber" validate:"required"`
		RoomTypeID int64  `json:"roomTypeID" validate:"required"`
		Floor      int32  `json:"floor" validate:"required"`
		Gender     string `json:"gender" validate:"required,oneof=male female mixed"`
		BedCount   int32  `json:"bedCount" validate:"required"`
		Status     string `json:"status" validate:"omitempty,oneof=operational maintenance closed"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rt, err := h.repository.GetRoomTypeByID(req.RoomTypeID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "room type not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	room := &domain.Room{
		RoomNumber: req.RoomNumber,
		RoomTypeID: req.RoomTypeID,
		Floor:      req.Floor,
		Gender:     req.Gender,
		BedCount:   req.BedCount,
		Status:     domain.RoomStatusOperational,
	}
	if req.Status != "" {
		room.Status = domain.RoomStatus(req.Status)
	}

	if err := utils.ValidateRoomCapacity(room, rt); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateRoom(room); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "rooms_room_number_key":
			h.badRequest(w, r, errors.New("this room number already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "room created", room)
}

func (h *Handler) GetAllRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.repository.GetAllRooms()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched room list", rooms)
}

func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	room := r.Context().Value(RoomCtx).(*domain.Room)
	h.successResponse(w, r, "fetched room info", room)
}

func (h *Handler) GetRoomBeds(w http.ResponseWriter, r *http.Request) {
	room := r.Context().Value(RoomCtx).(*domain.Room)

	beds, err := h.repository.GetBedsByRoomID(room.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched bed list", beds)
}

// GetRoomOccupancy derives the room's occupancy from its beds' assignment
// history. The result is computed fresh on every call and can disagree with
// the administrative bed statuses; such beds come back flagged.
func (h *Handler) GetRoomOccupancy(w http.ResponseWriter, r *http.Request) {
	room := r.Context().Value(RoomCtx).(*domain.Room)

	beds, err := h.repository.GetBedsByRoomID(room.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	assignments, err := h.repository.GetBedAssignmentsByRoomID(room.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	reps := occupancy.Reconcile(occupancy.FromBedAssignments(assignments), time.Now())
	occ := occupancy.AggregateRoom(room, beds, reps)

	h.successResponse(w, r, "fetched room occupancy", occ)
}

func (h *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomNumber *string `json:"roomNumber"`
		RoomTypeID *int64  `json:"roomTypeID"`
		Floor      *int32  `json:"floor"`
		Gender     *string `json:"gender" validate:"omitempty,oneof=male female mixed"`
		BedCount   *int32  `json:"bedCount"`
		Status     *string `json:"status" validate:"omitempty,oneof=operational maintenance closed"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	room := r.Context().Value(RoomCtx).(*domain.Room)

	if req.RoomNumber != nil {
		room.RoomNumber = *req.RoomNumber
	}
	if req.RoomTypeID != nil {
		room.RoomTypeID = *req.RoomTypeID
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.Gender != nil {
		room.Gender = *req.Gender
	}
	if req.BedCount != nil {
		existing, err := h.repository.CountBedsByRoomID(room.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if *req.BedCount < existing {
			h.errorResponse(w, r, "the room already has more beds than the new capacity")
			return
		}
		room.BedCount = *req.BedCount
	}
	if req.Status != nil {
		room.Status = domain.RoomStatus(*req.Status)
	}

	// re-check the capacity whenever the type or the bed count could have moved
	rt, err := h.repository.GetRoomTypeByID(room.RoomTypeID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "room type not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if err := utils.ValidateRoomCapacity(room, rt); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateRoom(room); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "could not update the room, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "room updated", room)
}

func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	room := r.Context().Value(RoomCtx).(*domain.Room)

	if err := h.repository.DeleteRoom(room.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "beds_room_id_fkey":
			h.errorResponse(w, r, "beds in this room still exist")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "room deleted", nil)
}
