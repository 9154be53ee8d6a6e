package occupancy

import (
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
)

type CostBreakdown struct {
	RoomCost    int64 `json:"roomCost"`
	ServiceCost int64 `json:"serviceCost"`
	Total       int64 `json:"total"`
}

// DeriveMonthlyCost sums the monthly price of every care plan referenced by
// an assignment that IsActive marks in effect, on top of the room price.
// Assignments pointing at unknown plan ids are skipped rather than failing;
// expiry classification is the caller's concern and does not change what is
// counted here.
func DeriveMonthlyCost(assignments []Record, plansByID map[int64]*domain.CarePlan, roomMonthlyPrice int64, now time.Time) CostBreakdown {
	cost := CostBreakdown{RoomCost: roomMonthlyPrice}

	for _, rec := range assignments {
		if !IsActive(rec, now) {
			continue
		}
		plan, ok := plansByID[rec.TargetID]
		if !ok {
			continue
		}
		cost.ServiceCost += plan.MonthlyPrice
	}

	cost.Total = cost.RoomCost + cost.ServiceCost
	return cost
}

// ExtendEndDate computes the billing window for a date-range extension. The
// new period starts the day after the current end date and runs to the last
// day of the calendar month that lies months months after that start day, so
// billing stays aligned with month boundaries instead of a plain +N months.
func ExtendEndDate(currentEnd time.Time, months int) (newStart time.Time, newEnd time.Time) {
	newStart = currentEnd.AddDate(0, 0, 1)

	firstOfStartMonth := time.Date(newStart.Year(), newStart.Month(), 1, 0, 0, 0, 0, newStart.Location())
	firstOfTargetMonth := firstOfStartMonth.AddDate(0, months, 0)
	newEnd = firstOfTargetMonth.AddDate(0, 1, -1)

	return newStart, newEnd
}
