package domain

import "time"

// CarePlan is a service package a resident can subscribe to, billed monthly
// on top of the room price.
type CarePlan struct {
	ID           int64     `json:"id"`
	PlanName     string    `json:"planName"`
	Category     string    `json:"category"`
	MonthlyPrice int64     `json:"monthlyPrice"`
	Description  string    `json:"description"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
