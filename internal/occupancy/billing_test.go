package occupancy

import (
	"testing"
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testPlans() map[int64]*domain.CarePlan {
	return map[int64]*domain.CarePlan{
		1: {ID: 1, PlanName: "Basic care", MonthlyPrice: 5_000_000},
		2: {ID: 2, PlanName: "Physical therapy", MonthlyPrice: 2_500_000},
		3: {ID: 3, PlanName: "Special diet", MonthlyPrice: 1_200_000},
	}
}

func TestDeriveMonthlyCost_SumsActivePlans(t *testing.T) {
	assignments := []Record{
		{ID: 1, TargetID: 1, Status: domain.AssignmentStatusActive},
		{ID: 2, TargetID: 2, Status: domain.AssignmentStatusDone, EndAt: timePtr(testNow.AddDate(0, 1, 0))},
		{ID: 3, TargetID: 3, Status: domain.AssignmentStatusCancelled},
	}

	cost := DeriveMonthlyCost(assignments, testPlans(), 8_000_000, testNow)

	assert.Equal(t, int64(8_000_000), cost.RoomCost)
	assert.Equal(t, int64(7_500_000), cost.ServiceCost)
	assert.Equal(t, int64(15_500_000), cost.Total)
}

func TestDeriveMonthlyCost_ExpiringSoonStillCounted(t *testing.T) {
	endAt := testNow.Add(5 * 24 * time.Hour)
	assignments := []Record{
		{ID: 1, TargetID: 1, Status: domain.AssignmentStatusActive, EndAt: &endAt},
	}

	state := ClassifyExpiry(assignments[0], testNow, 7*24*time.Hour)
	assert.Equal(t, ExpiringSoon, state)

	cost := DeriveMonthlyCost(assignments, testPlans(), 0, testNow)
	assert.Equal(t, int64(5_000_000), cost.Total)
}

func TestDeriveMonthlyCost_UnknownPlanSkipped(t *testing.T) {
	assignments := []Record{
		{ID: 1, TargetID: 99, Status: domain.AssignmentStatusActive},
	}

	cost := DeriveMonthlyCost(assignments, testPlans(), 1_000_000, testNow)

	assert.Equal(t, int64(0), cost.ServiceCost)
	assert.Equal(t, int64(1_000_000), cost.Total)
}

func TestDeriveMonthlyCost_NoAssignments(t *testing.T) {
	cost := DeriveMonthlyCost(nil, testPlans(), 3_000_000, testNow)

	assert.Equal(t, int64(3_000_000), cost.Total)
	assert.Equal(t, int64(0), cost.ServiceCost)
}

func TestExtendEndDate_AlignsToMonthEnd(t *testing.T) {
	tests := []struct {
		name       string
		currentEnd time.Time
		months     int
		wantStart  time.Time
		wantEnd    time.Time
	}{
		{
			name:       "three months from early october",
			currentEnd: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			months:     3,
			wantStart:  time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC),
			wantEnd:    time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "month-end rollover",
			currentEnd: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			months:     1,
			wantStart:  time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:    time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "into leap february",
			currentEnd: time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC),
			months:     2,
			wantStart:  time.Date(2023, 12, 16, 0, 0, 0, 0, time.UTC),
			wantEnd:    time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ExtendEndDate(tt.currentEnd, tt.months)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
