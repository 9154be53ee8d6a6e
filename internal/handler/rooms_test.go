package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goldencare-dev/carehome/backend/internal/config"
	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"github.com/goldencare-dev/carehome/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	cfg.Occupancy.ExpiringSoonDays = 7

	h, err := NewHandler(cfg, repository.NewRepository(cfg, db), nil, nil)
	require.NoError(t, err)

	return h, mock
}

// lowering the declared capacity below the number of beds already in the room
// must be rejected, otherwise the derived occupancy overflows the capacity
func TestUpdateRoom_RejectsCapacityBelowExistingBeds(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	room := &domain.Room{ID: 1, RoomNumber: "101", RoomTypeID: 1, Floor: 1, Gender: "mixed", BedCount: 3, Status: domain.RoomStatusOperational}
	req := httptest.NewRequest(http.MethodPatch, "/rooms/1", strings.NewReader(`{"bedCount": 2}`))
	req = req.WithContext(context.WithValue(req.Context(), RoomCtx, room))
	rec := httptest.NewRecorder()

	h.UpdateRoom(rec, req)

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "the room already has more beds than the new capacity", resp.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}
