package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"github.com/goldencare-dev/carehome/backend/internal/occupancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// the care plan list in the summary must come back in the same order on
// every call, not in whatever order the reconciliation map iterates
func TestGetResidentSummary_CarePlansOrderedByPlanID(t *testing.T) {
	h, mock := newTestHandler(t)

	now := time.Now()

	mock.ExpectQuery("FROM bed_assignments").
		WithArgs(int64(50)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bed_id", "resident_id", "status", "assigned_at", "unassigned_at", "created_at", "version"}))

	mock.ExpectQuery("FROM care_plan_assignments").
		WithArgs(int64(50)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "care_plan_id", "resident_id", "status", "start_at", "end_at", "created_at", "version"}).
			AddRow(1, 7, 50, "active", nil, nil, now, 1).
			AddRow(2, 3, 50, "active", nil, nil, now, 1))

	mock.ExpectQuery("FROM care_plans").
		WillReturnRows(sqlmock.NewRows([]string{"id", "plan_name", "category", "monthly_price", "description", "is_active", "created_at", "version"}).
			AddRow(3, "Memory care", "care", 900000, "", true, now, 1).
			AddRow(7, "Physiotherapy", "therapy", 600000, "", true, now, 1))

	resident := &domain.Resident{ID: 50, FullName: "Edna Walsh"}
	req := httptest.NewRequest(http.MethodGet, "/residents/50/summary", nil)
	req = req.WithContext(context.WithValue(req.Context(), ResidentCtx, resident))
	rec := httptest.NewRecorder()

	h.GetResidentSummary(rec, req)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			CarePlans []struct {
				Plan *domain.CarePlan `json:"plan"`
			} `json:"carePlans"`
			Cost occupancy.CostBreakdown `json:"cost"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)

	require.Len(t, resp.Data.CarePlans, 2)
	assert.Equal(t, int64(3), resp.Data.CarePlans[0].Plan.ID)
	assert.Equal(t, int64(7), resp.Data.CarePlans[1].Plan.ID)
	assert.Equal(t, int64(1_500_000), resp.Data.Cost.ServiceCost)
	assert.NoError(t, mock.ExpectationsWereMet())
}
