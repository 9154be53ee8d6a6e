package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) CreateRoomType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TypeKey      string   `json:"typeKey" validate:"required"`
		DisplayName  string   `json:"displayName" validate:"required"`
		MonthlyPrice int64    `json:"monthlyPrice" validate:"required,gt=0"`
		Description  string   `json:"description"`
		Amenities    []string `json:"amenities"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rt := &domain.RoomType{
		TypeKey:      req.TypeKey,
		DisplayName:  req.DisplayName,
		MonthlyPrice: req.MonthlyPrice,
		Description:  req.Description,
		Amenities:    req.Amenities,
	}
	if rt.Amenities == nil {
		rt.Amenities = make([]string, 0)
	}

	if err := h.repository.CreateRoomType(rt); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "room_types_type_key_key":
			h.badRequest(w, r, errors.New("this type key already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "room type created", rt)
}

func (h *Handler) GetAllRoomTypes(w http.ResponseWriter, r *http.Request) {
	roomTypes, err := h.repository.GetAllRoomTypes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched room type list", roomTypes)
}

func (h *Handler) GetRoomType(w http.ResponseWriter, r *http.Request) {
	rt := r.Context().Value(RoomTypeCtx).(*domain.RoomType)
	h.successResponse(w, r, "fetched room type info", rt)
}

func (h *Handler) UpdateRoomType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName  *string  `json:"displayName"`
		MonthlyPrice *int64   `json:"monthlyPrice" validate:"omitempty,gt=0"`
		Description  *string  `json:"description"`
		Amenities    []string `json:"amenities"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rt := r.Context().Value(RoomTypeCtx).(*domain.RoomType)

	if req.DisplayName != nil {
		rt.DisplayName = *req.DisplayName
	}
	if req.MonthlyPrice != nil {
		rt.MonthlyPrice = *req.MonthlyPrice
	}
	if req.Description != nil {
		rt.Description = *req.Description
	}
	if req.Amenities != nil {
		rt.Amenities = req.Amenities
	}

	if err := h.repository.UpdateRoomType(rt); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "could not update the room type, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "room type updated", rt)
}

func (h *Handler) DeleteRoomType(w http.ResponseWriter, r *http.Request) {
	rt := r.Context().Value(RoomTypeCtx).(*domain.RoomType)

	if err := h.repository.DeleteRoomType(rt.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "rooms_room_type_id_fkey":
			h.errorResponse(w, r, "rooms of this type still exist")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "room type deleted", nil)
}
