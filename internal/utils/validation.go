package utils

import (
	"errors"
	"fmt"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
)

// ValidateRoomCapacity checks a room's declared bed count against the
// capacity allowed for its type key.
func ValidateRoomCapacity(room *domain.Room, roomType *domain.RoomType) error {
	maxBeds := domain.MaxBedsForRoomType(roomType.TypeKey)
	if room.BedCount < 1 {
		return errors.New("a room must have at least one bed")
	}
	if room.BedCount > maxBeds {
		return fmt.Errorf("room type %s allows at most %d beds", roomType.TypeKey, maxBeds)
	}
	return nil
}

func ValidateBedAssignmentWindow(a *domain.BedAssignment) error {
	if a.AssignedAt != nil && a.UnassignedAt != nil && a.UnassignedAt.Before(*a.AssignedAt) {
		return errors.New("the end date cannot be earlier than the start date")
	}
	return nil
}

func ValidateCarePlanAssignmentWindow(a *domain.CarePlanAssignment) error {
	if a.StartAt != nil && a.EndAt != nil && a.EndAt.Before(*a.StartAt) {
		return errors.New("the end date cannot be earlier than the start date")
	}
	return nil
}

// ValidateServiceRequest checks that the optional fields required by the
// request type are present.
func ValidateServiceRequest(req *domain.ServiceRequest) error {
	switch req.RequestType {
	case domain.ServiceRequestTypeCarePlanChange:
		if req.NewCarePlanID == nil {
			return errors.New("a care plan change request must name the new care plan")
		}
	case domain.ServiceRequestTypeDateExtension:
		if req.CarePlanAssignmentID == nil {
			return errors.New("a date extension request must name the care plan assignment to extend")
		}
		if req.ExtensionMonths == nil || *req.ExtensionMonths < 1 {
			return errors.New("a date extension request must ask for at least one month")
		}
	case domain.ServiceRequestTypeRoomChange:
		if req.NewRoomID == nil {
			return errors.New("a room change request must name the new room")
		}
	default:
		return fmt.Errorf("unknown request type %s", req.RequestType)
	}
	return nil
}
