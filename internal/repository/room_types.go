package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
)

func (r *Repository) GetAllRoomTypes() ([]*domain.RoomType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			rt.id,
			rt.type_key,
			rt.display_name,
			rt.monthly_price,
			rt.description,
			rt.created_at,
			rt.version,
			rta.amenity
		FROM room_types rt
		LEFT JOIN room_type_amenities rta ON rt.id = rta.room_type_id
		ORDER BY rt.id, rta.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	typesMap := make(map[int64]*domain.RoomType)
	order := make([]int64, 0)

	for rows.Next() {
		var row struct {
			ID           int64
			TypeKey      string
			DisplayName  string
			MonthlyPrice int64
			Description  string
			CreatedAt    time.Time
			Version      int32

			Amenity sql.NullString
		}

		dst := []any{
			&row.ID,
			&row.TypeKey,
			&row.DisplayName,
			&row.MonthlyPrice,
			&row.Description,
			&row.CreatedAt,
			&row.Version,
			&row.Amenity,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := typesMap[row.ID]; !exists {
			// first row for this room type, initialize it in the map
			typesMap[row.ID] = &domain.RoomType{
				ID:           row.ID,
				TypeKey:      row.TypeKey,
				DisplayName:  row.DisplayName,
				MonthlyPrice: row.MonthlyPrice,
				Description:  row.Description,
				Amenities:    make([]string, 0),
				CreatedAt:    row.CreatedAt,
				Version:      row.Version,
			}
			order = append(order, row.ID)
		}

		// a null amenity means this room type has none
		if !row.Amenity.Valid {
			continue
		}

		typesMap[row.ID].Amenities = append(typesMap[row.ID].Amenities, row.Amenity.String)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	roomTypes := make([]*domain.RoomType, 0, len(order))
	for _, id := range order {
		roomTypes = append(roomTypes, typesMap[id])
	}

	return roomTypes, nil
}

func (r *Repository) GetRoomTypeByID(id int64) (*domain.RoomType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			rt.type_key,
			rt.display_name,
			rt.monthly_price,
			rt.description,
			rt.created_at,
			rt.version,
			rta.amenity
		FROM room_types rt
		LEFT JOIN room_type_amenities rta ON rt.id = rta.room_type_id
		WHERE rt.id = $1
		ORDER BY rta.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rt := &domain.RoomType{
		ID:        id,
		Amenities: make([]string, 0),
	}
	found := false

	for rows.Next() {
		var row struct {
			TypeKey      string
			DisplayName  string
			MonthlyPrice int64
			Description  string
			CreatedAt    time.Time
			Version      int32

			Amenity sql.NullString
		}

		dst := []any{
			&row.TypeKey,
			&row.DisplayName,
			&row.MonthlyPrice,
			&row.Description,
			&row.CreatedAt,
			&row.Version,
			&row.Amenity,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !found {
			rt.TypeKey = row.TypeKey
			rt.DisplayName = row.DisplayName
			rt.MonthlyPrice = row.MonthlyPrice
			rt.Description = row.Description
			rt.CreatedAt = row.CreatedAt
			rt.Version = row.Version
			found = true
		}

		if !row.Amenity.Valid {
			continue
		}

		rt.Amenities = append(rt.Amenities, row.Amenity.String)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return rt, nil
}

func (r *Repository) CreateRoomType(rt *domain.RoomType) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO room_types (type_key, display_name, monthly_price, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`
	args := []any{rt.TypeKey, rt.DisplayName, rt.MonthlyPrice, rt.Description}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&rt.ID, &rt.CreatedAt, &rt.Version); err != nil {
		return err
	}

	for _, amenity := range rt.Amenities {
		query = `
			INSERT INTO room_type_amenities (room_type_id, amenity)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, rt.ID, amenity); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateRoomType(rt *domain.RoomType) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE room_types
		SET
			display_name = $1,
			monthly_price = $2,
			description = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	args := []any{rt.DisplayName, rt.MonthlyPrice, rt.Description, rt.ID, rt.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&rt.Version); err != nil {
		return err
	}

	// amenities are replaced wholesale on update
	if _, err := tx.ExecContext(ctx, `DELETE FROM room_type_amenities WHERE room_type_id = $1`, rt.ID); err != nil {
		return err
	}

	for _, amenity := range rt.Amenities {
		query = `
			INSERT INTO room_type_amenities (room_type_id, amenity)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, rt.ID, amenity); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteRoomType(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM room_types WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
