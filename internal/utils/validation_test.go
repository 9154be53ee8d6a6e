package utils

import (
	"testing"
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRoomCapacity(t *testing.T) {
	twoBed := &domain.RoomType{TypeKey: "2_bed"}

	err := ValidateRoomCapacity(&domain.Room{BedCount: 2}, twoBed)
	assert.NoError(t, err)

	err = ValidateRoomCapacity(&domain.Room{BedCount: 3}, twoBed)
	assert.Error(t, err)

	err = ValidateRoomCapacity(&domain.Room{BedCount: 0}, twoBed)
	assert.Error(t, err)

	// unknown type keys fall back to a capacity of 10
	unknown := &domain.RoomType{TypeKey: "suite"}
	err = ValidateRoomCapacity(&domain.Room{BedCount: 10}, unknown)
	assert.NoError(t, err)
	err = ValidateRoomCapacity(&domain.Room{BedCount: 11}, unknown)
	assert.Error(t, err)
}

func TestValidateBedAssignmentWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	err := ValidateBedAssignmentWindow(&domain.BedAssignment{AssignedAt: &start, UnassignedAt: &end})
	assert.NoError(t, err)

	err = ValidateBedAssignmentWindow(&domain.BedAssignment{AssignedAt: &end, UnassignedAt: &start})
	assert.Error(t, err)

	// open-ended windows are fine
	err = ValidateBedAssignmentWindow(&domain.BedAssignment{AssignedAt: &start})
	assert.NoError(t, err)
	err = ValidateBedAssignmentWindow(&domain.BedAssignment{})
	assert.NoError(t, err)
}

func TestValidateServiceRequest(t *testing.T) {
	planID := int64(3)
	assignmentID := int64(7)
	roomID := int64(11)
	months := int32(3)
	zeroMonths := int32(0)

	tests := []struct {
		name    string
		req     *domain.ServiceRequest
		wantErr bool
	}{
		{
			name: "care plan change with new plan",
			req: &domain.ServiceRequest{
				RequestType:   domain.ServiceRequestTypeCarePlanChange,
				NewCarePlanID: &planID,
			},
		},
		{
			name:    "care plan change without new plan",
			req:     &domain.ServiceRequest{RequestType: domain.ServiceRequestTypeCarePlanChange},
			wantErr: true,
		},
		{
			name: "date extension with assignment and months",
			req: &domain.ServiceRequest{
				RequestType:          domain.ServiceRequestTypeDateExtension,
				CarePlanAssignmentID: &assignmentID,
				ExtensionMonths:      &months,
			},
		},
		{
			name: "date extension without assignment",
			req: &domain.ServiceRequest{
				RequestType:     domain.ServiceRequestTypeDateExtension,
				ExtensionMonths: &months,
			},
			wantErr: true,
		},
		{
			name: "date extension with zero months",
			req: &domain.ServiceRequest{
				RequestType:          domain.ServiceRequestTypeDateExtension,
				CarePlanAssignmentID: &assignmentID,
				ExtensionMonths:      &zeroMonths,
			},
			wantErr: true,
		},
		{
			name: "room change with new room",
			req: &domain.ServiceRequest{
				RequestType: domain.ServiceRequestTypeRoomChange,
				NewRoomID:   &roomID,
			},
		},
		{
			name:    "room change without new room",
			req:     &domain.ServiceRequest{RequestType: domain.ServiceRequestTypeRoomChange},
			wantErr: true,
		},
		{
			name:    "unknown request type",
			req:     &domain.ServiceRequest{RequestType: "bed_upgrade"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateServiceRequest(tt.req)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
