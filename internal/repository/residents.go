package repository

import (
	"context"
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
)

func (r *Repository) CreateResident(resident *domain.Resident) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO residents (full_name, date_of_birth, gender, status, guardian_id, admitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	args := []any{resident.FullName, resident.DateOfBirth, resident.Gender, resident.Status, resident.GuardianID, resident.AdmittedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&resident.ID, &resident.CreatedAt, &resident.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetResidentByID(id int64) (*domain.Resident, error) {
	query := `
		SELECT full_name, date_of_birth, gender, status, guardian_id, admitted_at, created_at, version
		FROM residents WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	resident := &domain.Resident{
		ID: id,
	}

	dst := []any{&resident.FullName, &resident.DateOfBirth, &resident.Gender, &resident.Status, &resident.GuardianID, &resident.AdmittedAt, &resident.CreatedAt, &resident.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return resident, nil
}

func (r *Repository) GetAllResidents() ([]*domain.Resident, error) {
	query := `
		SELECT id, full_name, date_of_birth, gender, status, guardian_id, admitted_at, created_at, version
		FROM residents
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	residents := make([]*domain.Resident, 0)
	for rows.Next() {
		resident := &domain.Resident{}
		dst := []any{&resident.ID, &resident.FullName, &resident.DateOfBirth, &resident.Gender, &resident.Status, &resident.GuardianID, &resident.AdmittedAt, &resident.CreatedAt, &resident.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		residents = append(residents, resident)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return residents, nil
}

func (r *Repository) GetResidentsByGuardianID(guardianID int64) ([]*domain.Resident, error) {
	query := `
		SELECT id, full_name, date_of_birth, gender, status, guardian_id, admitted_at, created_at, version
		FROM residents
		WHERE guardian_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, guardianID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	residents := make([]*domain.Resident, 0)
	for rows.Next() {
		resident := &domain.Resident{}
		dst := []any{&resident.ID, &resident.FullName, &resident.DateOfBirth, &resident.Gender, &resident.Status, &resident.GuardianID, &resident.AdmittedAt, &resident.CreatedAt, &resident.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		residents = append(residents, resident)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return residents, nil
}

func (r *Repository) UpdateResident(resident *domain.Resident) error {
	query := `
		UPDATE residents
		SET
			full_name = $1,
			date_of_birth = $2,
			gender = $3,
			status = $4,
			guardian_id = $5,
			admitted_at = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{resident.FullName, resident.DateOfBirth, resident.Gender, resident.Status, resident.GuardianID, resident.AdmittedAt, resident.ID, resident.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&resident.CreatedAt, &resident.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteResident(id int64) error {
	query := `
		DELETE FROM residents WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
