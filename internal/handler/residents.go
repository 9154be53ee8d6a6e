package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"github.com/goldencare-dev/carehome/backend/internal/occupancy"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) CreateResident(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName    string     `json:"fullName" validate:"required"`
		DateOfBirth time.Time  `json:"dateOfBirth" validate:"required"`
		Gender      string     `json:"gender" validate:"required,oneof=male female"`
		GuardianID  *int64     `json:"guardianID"`
		AdmittedAt  *time.Time `json:"admittedAt"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	resident := &domain.Resident{
		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Status:      domain.ResidentStatusActive,
		GuardianID:  req.GuardianID,
		AdmittedAt:  time.Now(),
	}
	if req.AdmittedAt != nil {
		resident.AdmittedAt = *req.AdmittedAt
	}

	if err := h.repository.CreateResident(resident); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "residents_guardian_id_fkey":
			h.badRequest(w, r, errors.New("the guardian account does not exist"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "resident created", resident)
}

func (h *Handler) GetAllResidents(w http.ResponseWriter, r *http.Request) {
	role := domain.Role(r.Context().Value(RoleCtxKey).(string))

	// family members only see the residents they are the guardian of
	if role == domain.RoleFamilyMember {
		subString := r.Context().Value(SubCtxKey).(string)
		sub, err := strconv.ParseInt(subString, 10, 64)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		residents, err := h.repository.GetResidentsByGuardianID(sub)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		h.successResponse(w, r, "fetched resident list", residents)
		return
	}

	residents, err := h.repository.GetAllResidents()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched resident list", residents)
}

func (h *Handler) GetResident(w http.ResponseWriter, r *http.Request) {
	resident := r.Context().Value(ResidentCtx).(*domain.Resident)
	h.successResponse(w, r, "fetched resident info", resident)
}

func (h *Handler) UpdateResident(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName   *string    `json:"fullName"`
		Gender     *string    `json:"gender" validate:"omitempty,oneof=male female"`
		Status     *string    `json:"status" validate:"omitempty,oneof=active discharged deceased"`
		GuardianID *int64     `json:"guardianID"`
		AdmittedAt *time.Time `json:"admittedAt"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	resident := r.Context().Value(ResidentCtx).(*domain.Resident)

	if req.FullName != nil {
		resident.FullName = *req.FullName
	}
	if req.Gender != nil {
		resident.Gender = *req.Gender
	}
	if req.Status != nil {
		resident.Status = domain.ResidentStatus(*req.Status)
	}
	if req.GuardianID != nil {
		resident.GuardianID = req.GuardianID
	}
	if req.AdmittedAt != nil {
		resident.AdmittedAt = *req.AdmittedAt
	}

	if err := h.repository.UpdateResident(resident); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "could not update the resident, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "resident updated", resident)
}

func (h *Handler) DeleteResident(w http.ResponseWriter, r *http.Request) {
	resident := r.Context().Value(ResidentCtx).(*domain.Resident)

	if err := h.repository.DeleteResident(resident.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "resident deleted", nil)
}

type residentCarePlanSummary struct {
	Assignment *domain.CarePlanAssignment `json:"assignment"`
	Plan       *domain.CarePlan           `json:"plan"`
	Expiry     occupancy.ExpiryState      `json:"expiry"`
}

type residentSummary struct {
	Resident  *domain.Resident          `json:"resident"`
	Bed       *domain.Bed               `json:"bed"`
	Room      *domain.Room              `json:"room"`
	RoomType  *domain.RoomType          `json:"roomType"`
	CarePlans []residentCarePlanSummary `json:"carePlans"`
	Cost      occupancy.CostBreakdown   `json:"cost"`
}

// GetResidentSummary assembles the resident's current placement, effective
// care plans with expiry warnings, and the monthly cost. Everything is
// derived from assignment history on every call; nothing here is stored.
func (h *Handler) GetResidentSummary(w http.ResponseWriter, r *http.Request) {
	resident := r.Context().Value(ResidentCtx).(*domain.Resident)
	now := time.Now()

	summary := residentSummary{
		Resident:  resident,
		CarePlans: make([]residentCarePlanSummary, 0),
	}

	// find the bed the resident currently occupies
	bedAssignments, err := h.repository.GetBedAssignmentsByResidentID(resident.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	bedReps := occupancy.Reconcile(occupancy.FromBedAssignments(bedAssignments), now)

	var roomMonthlyPrice int64
	for bedID, rep := range bedReps {
		if !rep.Active {
			continue
		}

		bed, err := h.repository.GetBedByID(bedID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		room, err := h.repository.GetRoomByID(bed.RoomID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		rt, err := h.repository.GetRoomTypeByID(room.RoomTypeID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		summary.Bed = bed
		summary.Room = room
		summary.RoomType = rt
		roomMonthlyPrice = rt.MonthlyPrice
		break
	}

	// reconcile the care plan subscriptions down to one record per plan
	planAssignments, err := h.repository.GetCarePlanAssignmentsByResidentID(resident.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	plans, err := h.repository.GetAllCarePlans()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	plansByID := make(map[int64]*domain.CarePlan, len(plans))
	for _, plan := range plans {
		plansByID[plan.ID] = plan
	}
	assignmentsByID := make(map[int64]*domain.CarePlanAssignment, len(planAssignments))
	for _, a := range planAssignments {
		assignmentsByID[a.ID] = a
	}

	planReps := occupancy.Reconcile(occupancy.FromCarePlanAssignments(planAssignments), now)
	window := time.Duration(h.config.Occupancy.ExpiringSoonDays) * 24 * time.Hour

	// map iteration order is random, so fix the response order by plan id
	planIDs := make([]int64, 0, len(planReps))
	for planID := range planReps {
		planIDs = append(planIDs, planID)
	}
	sort.Slice(planIDs, func(i, j int) bool { return planIDs[i] < planIDs[j] })

	repRecords := make([]occupancy.Record, 0, len(planReps))
	for _, planID := range planIDs {
		rep := planReps[planID]
		if !rep.Active {
			continue
		}
		repRecords = append(repRecords, rep.Record)

		summary.CarePlans = append(summary.CarePlans, residentCarePlanSummary{
			Assignment: assignmentsByID[rep.Record.ID],
			Plan:       plansByID[planID],
			Expiry:     occupancy.ClassifyExpiry(rep.Record, now, window),
		})
	}

	summary.Cost = occupancy.DeriveMonthlyCost(repRecords, plansByID, roomMonthlyPrice, now)

	h.successResponse(w, r, "fetched resident summary", summary)
}
