package domain

import "time"

type ResidentStatus string

const (
	ResidentStatusActive     ResidentStatus = "active"
	ResidentStatusDischarged ResidentStatus = "discharged"
	ResidentStatusDeceased   ResidentStatus = "deceased"
)

type Resident struct {
	ID          int64          `json:"id"`
	FullName    string         `json:"fullName"`
	DateOfBirth time.Time      `json:"dateOfBirth"`
	Gender      string         `json:"gender"`
	Status      ResidentStatus `json:"status"`
	GuardianID  *int64         `json:"guardianID"` // family member account, nil until one is linked
	AdmittedAt  time.Time      `json:"admittedAt"`
	CreatedAt   time.Time      `json:"createdAt"`
	Version     int32          `json:"-"`
}
