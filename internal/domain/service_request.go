package domain

import "time"

type ServiceRequestType string

const (
	ServiceRequestTypeCarePlanChange ServiceRequestType = "care_plan_change"
	ServiceRequestTypeDateExtension  ServiceRequestType = "date_extension"
	ServiceRequestTypeRoomChange     ServiceRequestType = "room_change"
)

type ServiceRequestStatus string

const (
	ServiceRequestStatusPending   ServiceRequestStatus = "pending"
	ServiceRequestStatusApproved  ServiceRequestStatus = "approved"
	ServiceRequestStatusRejected  ServiceRequestStatus = "rejected"
	ServiceRequestStatusCompleted ServiceRequestStatus = "completed"
)

// ServiceRequest is raised by a family member and resolved by an
// administrator. Which optional fields are required depends on RequestType;
// see utils.ValidateServiceRequest.
type ServiceRequest struct {
	ID                   int64                `json:"id"`
	Reference            string               `json:"reference"` // uuid shown to the requester
	ResidentID           int64                `json:"residentID"`
	RequestType          ServiceRequestType   `json:"requestType"`
	CarePlanAssignmentID *int64               `json:"carePlanAssignmentID"`
	NewCarePlanID        *int64               `json:"newCarePlanID"`
	NewRoomID            *int64               `json:"newRoomID"`
	ExtensionMonths      *int32               `json:"extensionMonths"`
	Status               ServiceRequestStatus `json:"status"`
	Note                 string               `json:"note"`
	ResolvedBy           *int64               `json:"resolvedBy"`
	CreatedAt            time.Time            `json:"createdAt"`
	Version              int32                `json:"-"`
}
