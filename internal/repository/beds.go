package repository

import (
	"context"
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
)

func (r *Repository) CreateBed(bed *domain.Bed) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO beds (bed_number, room_id, bed_type, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	args := []any{bed.BedNumber, bed.RoomID, bed.BedType, bed.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&bed.ID, &bed.CreatedAt, &bed.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetBedByID(id int64) (*domain.Bed, error) {
	query := `
		SELECT bed_number, room_id, bed_type, status, created_at, version
		FROM beds WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	bed := &domain.Bed{
		ID: id,
	}

	dst := []any{&bed.BedNumber, &bed.RoomID, &bed.BedType, &bed.Status, &bed.CreatedAt, &bed.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return bed, nil
}

func (r *Repository) GetBedsByRoomID(roomID int64) ([]*domain.Bed, error) {
	query := `
		SELECT id, bed_number, room_id, bed_type, status, created_at, version
		FROM beds
		WHERE room_id = $1
		ORDER BY bed_number
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	beds := make([]*domain.Bed, 0)
	for rows.Next() {
		bed := &domain.Bed{}
		dst := []any{&bed.ID, &bed.BedNumber, &bed.RoomID, &bed.BedType, &bed.Status, &bed.CreatedAt, &bed.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		beds = append(beds, bed)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return beds, nil
}

func (r *Repository) CountBedsByRoomID(roomID int64) (int32, error) {
	query := `
		SELECT COUNT(*) FROM beds WHERE room_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var count int32
	if err := r.dbpool.QueryRowContext(ctx, query, roomID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) UpdateBed(bed *domain.Bed) error {
	query := `
		UPDATE beds
		SET
			bed_number = $1,
			room_id = $2,
			bed_type = $3,
			status = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{bed.BedNumber, bed.RoomID, bed.BedType, bed.Status, bed.ID, bed.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&bed.CreatedAt, &bed.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteBed(id int64) error {
	query := `
		DELETE FROM beds WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
