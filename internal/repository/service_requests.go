package repository

import (
	"context"
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
)

func (r *Repository) CreateServiceRequest(req *domain.ServiceRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO service_requests
			(reference, resident_id, request_type, care_plan_assignment_id, new_care_plan_id, new_room_id, extension_months, status, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, version
	`

	args := []any{
		req.Reference,
		req.ResidentID,
		req.RequestType,
		req.CarePlanAssignmentID,
		req.NewCarePlanID,
		req.NewRoomID,
		req.ExtensionMonths,
		req.Status,
		req.Note,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&req.ID, &req.CreatedAt, &req.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetServiceRequestByID(id int64) (*domain.ServiceRequest, error) {
	query := `
		SELECT reference, resident_id, request_type, care_plan_assignment_id, new_care_plan_id, new_room_id, extension_months, status, note, resolved_by, created_at, version
		FROM service_requests WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	req := &domain.ServiceRequest{
		ID: id,
	}

	dst := []any{
		&req.Reference,
		&req.ResidentID,
		&req.RequestType,
		&req.CarePlanAssignmentID,
		&req.NewCarePlanID,
		&req.NewRoomID,
		&req.ExtensionMonths,
		&req.Status,
		&req.Note,
		&req.ResolvedBy,
		&req.CreatedAt,
		&req.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return req, nil
}

func (r *Repository) scanServiceRequests(ctx context.Context, query string, args ...any) ([]*domain.ServiceRequest, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.ServiceRequest, 0)
	for rows.Next() {
		req := &domain.ServiceRequest{}
		dst := []any{
			&req.ID,
			&req.Reference,
			&req.ResidentID,
			&req.RequestType,
			&req.CarePlanAssignmentID,
			&req.NewCarePlanID,
			&req.NewRoomID,
			&req.ExtensionMonths,
			&req.Status,
			&req.Note,
			&req.ResolvedBy,
			&req.CreatedAt,
			&req.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *Repository) GetAllServiceRequests() ([]*domain.ServiceRequest, error) {
	query := `
		SELECT id, reference, resident_id, request_type, care_plan_assignment_id, new_care_plan_id, new_room_id, extension_months, status, note, resolved_by, created_at, version
		FROM service_requests
		ORDER BY id DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanServiceRequests(ctx, query)
}

func (r *Repository) GetServiceRequestsByResidentID(residentID int64) ([]*domain.ServiceRequest, error) {
	query := `
		SELECT id, reference, resident_id, request_type, care_plan_assignment_id, new_care_plan_id, new_room_id, extension_months, status, note, resolved_by, created_at, version
		FROM service_requests
		WHERE resident_id = $1
		ORDER BY id DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanServiceRequests(ctx, query, residentID)
}

func (r *Repository) GetPendingServiceRequests() ([]*domain.ServiceRequest, error) {
	query := `
		SELECT id, reference, resident_id, request_type, care_plan_assignment_id, new_care_plan_id, new_room_id, extension_months, status, note, resolved_by, created_at, version
		FROM service_requests
		WHERE status = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanServiceRequests(ctx, query, domain.ServiceRequestStatusPending)
}

func (r *Repository) UpdateServiceRequest(req *domain.ServiceRequest) error {
	query := `
		UPDATE service_requests
		SET
			status = $1,
			note = $2,
			resolved_by = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{req.Status, req.Note, req.ResolvedBy, req.ID, req.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&req.CreatedAt, &req.Version); err != nil {
		return err
	}

	return nil
}
