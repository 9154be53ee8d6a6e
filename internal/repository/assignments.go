package repository

import (
	"context"
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
)

func (r *Repository) CreateBedAssignment(a *domain.BedAssignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO bed_assignments (bed_id, resident_id, status, assigned_at, unassigned_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{a.BedID, a.ResidentID, a.Status, a.AssignedAt, a.UnassignedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetBedAssignmentByID(id int64) (*domain.BedAssignment, error) {
	query := `
		SELECT bed_id, resident_id, status, assigned_at, unassigned_at, created_at, version
		FROM bed_assignments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	a := &domain.BedAssignment{
		ID: id,
	}

	dst := []any{&a.BedID, &a.ResidentID, &a.Status, &a.AssignedAt, &a.UnassignedAt, &a.CreatedAt, &a.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return a, nil
}

func (r *Repository) scanBedAssignments(ctx context.Context, query string, args ...any) ([]*domain.BedAssignment, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.BedAssignment, 0)
	for rows.Next() {
		a := &domain.BedAssignment{}
		dst := []any{&a.ID, &a.BedID, &a.ResidentID, &a.Status, &a.AssignedAt, &a.UnassignedAt, &a.CreatedAt, &a.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *Repository) GetAllBedAssignments() ([]*domain.BedAssignment, error) {
	query := `
		SELECT id, bed_id, resident_id, status, assigned_at, unassigned_at, created_at, version
		FROM bed_assignments
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanBedAssignments(ctx, query)
}

func (r *Repository) GetBedAssignmentsByBedID(bedID int64) ([]*domain.BedAssignment, error) {
	query := `
		SELECT id, bed_id, resident_id, status, assigned_at, unassigned_at, created_at, version
		FROM bed_assignments
		WHERE bed_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanBedAssignments(ctx, query, bedID)
}

// GetBedAssignmentsByRoomID fetches the assignment history of every bed in a
// room in one query, for the occupancy derivation.
func (r *Repository) GetBedAssignmentsByRoomID(roomID int64) ([]*domain.BedAssignment, error) {
	query := `
		SELECT ba.id, ba.bed_id, ba.resident_id, ba.status, ba.assigned_at, ba.unassigned_at, ba.created_at, ba.version
		FROM bed_assignments ba
		JOIN beds b ON ba.bed_id = b.id
		WHERE b.room_id = $1
		ORDER BY ba.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanBedAssignments(ctx, query, roomID)
}

func (r *Repository) GetBedAssignmentsByResidentID(residentID int64) ([]*domain.BedAssignment, error) {
	query := `
		SELECT id, bed_id, resident_id, status, assigned_at, unassigned_at, created_at, version
		FROM bed_assignments
		WHERE resident_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanBedAssignments(ctx, query, residentID)
}

func (r *Repository) UpdateBedAssignment(a *domain.BedAssignment) error {
	query := `
		UPDATE bed_assignments
		SET
			status = $1,
			assigned_at = $2,
			unassigned_at = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{a.Status, a.AssignedAt, a.UnassignedAt, a.ID, a.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&a.CreatedAt, &a.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CreateCarePlanAssignment(a *domain.CarePlanAssignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO care_plan_assignments (care_plan_id, resident_id, status, start_at, end_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{a.CarePlanID, a.ResidentID, a.Status, a.StartAt, a.EndAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetCarePlanAssignmentByID(id int64) (*domain.CarePlanAssignment, error) {
	query := `
		SELECT care_plan_id, resident_id, status, start_at, end_at, created_at, version
		FROM care_plan_assignments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	a := &domain.CarePlanAssignment{
		ID: id,
	}

	dst := []any{&a.CarePlanID, &a.ResidentID, &a.Status, &a.StartAt, &a.EndAt, &a.CreatedAt, &a.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return a, nil
}

func (r *Repository) GetCarePlanAssignmentsByResidentID(residentID int64) ([]*domain.CarePlanAssignment, error) {
	query := `
		SELECT id, care_plan_id, resident_id, status, start_at, end_at, created_at, version
		FROM care_plan_assignments
		WHERE resident_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, residentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.CarePlanAssignment, 0)
	for rows.Next() {
		a := &domain.CarePlanAssignment{}
		dst := []any{&a.ID, &a.CarePlanID, &a.ResidentID, &a.Status, &a.StartAt, &a.EndAt, &a.CreatedAt, &a.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *Repository) UpdateCarePlanAssignment(a *domain.CarePlanAssignment) error {
	query := `
		UPDATE care_plan_assignments
		SET
			status = $1,
			start_at = $2,
			end_at = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{a.Status, a.StartAt, a.EndAt, a.ID, a.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&a.CreatedAt, &a.Version); err != nil {
		return err
	}

	return nil
}
