package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"github.com/goldencare-dev/carehome/backend/internal/occupancy"
	"github.com/goldencare-dev/carehome/backend/internal/utils"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

func (h *Handler) CreateServiceRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		ResidentID           int64  `json:"residentID" validate:"required"`
		RequestType          string `json:"requestType" validate:"required,oneof=care_plan_change date_extension room_change"`
		CarePlanAssignmentID *int64 `json:"carePlanAssignmentID"`
		NewCarePlanID        *int64 `json:"newCarePlanID"`
		NewRoomID            *int64 `json:"newRoomID"`
		ExtensionMonths      *int32 `json:"extensionMonths"`
		Note                 string `json:"note"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	resident, err := h.repository.GetResidentByID(req.ResidentID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "resident not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// family members may only raise requests for their own wards
	if myInfo.Role == domain.RoleFamilyMember {
		if resident.GuardianID == nil || *resident.GuardianID != myInfo.ID {
			h.errorResponse(w, r, "insufficient permissions")
			return
		}
	}

	request := &domain.ServiceRequest{
		Reference:            uuid.NewString(),
		ResidentID:           req.ResidentID,
		RequestType:          domain.ServiceRequestType(req.RequestType),
		CarePlanAssignmentID: req.CarePlanAssignmentID,
		NewCarePlanID:        req.NewCarePlanID,
		NewRoomID:            req.NewRoomID,
		ExtensionMonths:      req.ExtensionMonths,
		Status:               domain.ServiceRequestStatusPending,
		Note:                 req.Note,
	}

	if err := utils.ValidateServiceRequest(request); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateServiceRequest(request); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "service request submitted", request)
}

func (h *Handler) GetServiceRequests(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	if myInfo.Role == domain.RoleFamilyMember {
		residents, err := h.repository.GetResidentsByGuardianID(myInfo.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		requests := make([]*domain.ServiceRequest, 0)
		for _, resident := range residents {
			rs, err := h.repository.GetServiceRequestsByResidentID(resident.ID)
			if err != nil {
				h.internalServerError(w, r, err)
				return
			}
			requests = append(requests, rs...)
		}

		h.successResponse(w, r, "fetched service request list", requests)
		return
	}

	if r.URL.Query().Get("status") == "pending" {
		requests, err := h.repository.GetPendingServiceRequests()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		h.successResponse(w, r, "fetched service request list", requests)
		return
	}

	requests, err := h.repository.GetAllServiceRequests()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched service request list", requests)
}

func (h *Handler) GetServiceRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	request := r.Context().Value(ServiceRequestCtx).(*domain.ServiceRequest)

	if myInfo.Role == domain.RoleFamilyMember {
		resident, err := h.repository.GetResidentByID(request.ResidentID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if resident.GuardianID == nil || *resident.GuardianID != myInfo.ID {
			h.errorResponse(w, r, "insufficient permissions")
			return
		}
	}

	h.successResponse(w, r, "fetched service request info", request)
}

// ApproveServiceRequest applies the requested change and closes the request.
// Date extensions are effective immediately: a follow-up subscription is
// created from the day after the current end date to the last day of the
// month the extension runs into, and the guardian is notified by mail.
func (h *Handler) ApproveServiceRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	request := r.Context().Value(ServiceRequestCtx).(*domain.ServiceRequest)

	if request.Status != domain.ServiceRequestStatusPending {
		h.errorResponse(w, r, "only pending requests can be approved")
		return
	}

	switch request.RequestType {
	case domain.ServiceRequestTypeDateExtension:
		h.approveDateExtension(w, r, request, myInfo)
	case domain.ServiceRequestTypeCarePlanChange:
		h.approveCarePlanChange(w, r, request, myInfo)
	case domain.ServiceRequestTypeRoomChange:
		h.approveRoomChange(w, r, request, myInfo)
	default:
		h.errorResponse(w, r, "unknown request type")
	}
}

func (h *Handler) approveDateExtension(w http.ResponseWriter, r *http.Request, request *domain.ServiceRequest, admin *domain.User) {
	assignment, err := h.repository.GetCarePlanAssignmentByID(*request.CarePlanAssignmentID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the care plan assignment no longer exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if assignment.EndAt == nil {
		h.errorResponse(w, r, "an open-ended subscription cannot be extended")
		return
	}

	newStart, newEnd := occupancy.ExtendEndDate(*assignment.EndAt, int(*request.ExtensionMonths))

	extension := &domain.CarePlanAssignment{
		CarePlanID: assignment.CarePlanID,
		ResidentID: assignment.ResidentID,
		Status:     domain.AssignmentStatusApproved,
		StartAt:    &newStart,
		EndAt:      &newEnd,
	}

	if err := h.repository.CreateCarePlanAssignment(extension); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.closeServiceRequest(request, domain.ServiceRequestStatusCompleted, admin); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.notifyDateExtension(request, extension); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "service request approved", request)
}

func (h *Handler) approveCarePlanChange(w http.ResponseWriter, r *http.Request, request *domain.ServiceRequest, admin *domain.User) {
	plan, err := h.repository.GetCarePlanByID(*request.NewCarePlanID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the requested care plan no longer exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !plan.IsActive {
		h.errorResponse(w, r, "the requested care plan is no longer offered")
		return
	}

	now := time.Now()
	assignment := &domain.CarePlanAssignment{
		CarePlanID: plan.ID,
		ResidentID: request.ResidentID,
		Status:     domain.AssignmentStatusApproved,
		StartAt:    &now,
	}

	if err := h.repository.CreateCarePlanAssignment(assignment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.closeServiceRequest(request, domain.ServiceRequestStatusCompleted, admin); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "service request approved", request)
}

func (h *Handler) approveRoomChange(w http.ResponseWriter, r *http.Request, request *domain.ServiceRequest, admin *domain.User) {
	room, err := h.repository.GetRoomByID(*request.NewRoomID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the requested room no longer exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if room.Status != domain.RoomStatusOperational {
		h.errorResponse(w, r, "the requested room is not operational")
		return
	}

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

	// find a bed the derivation considers free
	reps := occupancy.Reconcile(occupancy.FromBedAssignments(assignments), time.Now())
	occ := occupancy.AggregateRoom(room, beds, reps)

	var freeBedID *int64
	for _, bo := range occ.Beds {
		if !bo.Occupied && !bo.ResidentUnknown {
			bedID := bo.BedID
			freeBedID = &bedID
			break
		}
	}

	if freeBedID == nil {
		h.errorResponse(w, r, "the requested room has no free bed")
		return
	}

	placement := &domain.BedAssignment{
		BedID:      *freeBedID,
		ResidentID: &request.ResidentID,
		Status:     domain.AssignmentStatusApproved,
	}

	if err := h.repository.CreateBedAssignment(placement); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.closeServiceRequest(request, domain.ServiceRequestStatusCompleted, admin); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "service request approved", request)
}

func (h *Handler) RejectServiceRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	request := r.Context().Value(ServiceRequestCtx).(*domain.ServiceRequest)

	if request.Status != domain.ServiceRequestStatusPending {
		h.errorResponse(w, r, "only pending requests can be rejected")
		return
	}

	var req struct {
		Note string `json:"note"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.Note != "" {
		request.Note = req.Note
	}

	if err := h.closeServiceRequest(request, domain.ServiceRequestStatusRejected, myInfo); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "service request rejected", request)
}

func (h *Handler) closeServiceRequest(request *domain.ServiceRequest, status domain.ServiceRequestStatus, admin *domain.User) error {
	request.Status = status
	request.ResolvedBy = &admin.ID
	return h.repository.UpdateServiceRequest(request)
}

func (h *Handler) notifyDateExtension(request *domain.ServiceRequest, extension *domain.CarePlanAssignment) error {
	resident, err := h.repository.GetResidentByID(request.ResidentID)
	if err != nil {
		return err
	}

	// nobody to notify
	if resident.GuardianID == nil {
		return nil
	}

	guardian, err := h.repository.GetUserByID(*resident.GuardianID)
	if err != nil {
		return err
	}

	plan, err := h.repository.GetCarePlanByID(extension.CarePlanID)
	if err != nil {
		return err
	}

	mailMessage := domain.MailMessage{
		Type: "date_extension",
		To:   guardian.Email,
		Data: domain.DateExtensionMailData{
			GuardianName: guardian.FullName,
			ResidentName: resident.FullName,
			PlanName:     plan.PlanName,
			NewStartDate: extension.StartAt.Format("2006-01-02"),
			NewEndDate:   extension.EndAt.Format("2006-01-02"),
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}
