package repository

import (
	"context"
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
)

func (r *Repository) CreateCarePlan(plan *domain.CarePlan) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO care_plans (plan_name, category, monthly_price, description, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{plan.PlanName, plan.Category, plan.MonthlyPrice, plan.Description, plan.IsActive}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&plan.ID, &plan.CreatedAt, &plan.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetCarePlanByID(id int64) (*domain.CarePlan, error) {
	query := `
		SELECT plan_name, category, monthly_price, description, is_active, created_at, version
		FROM care_plans WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	plan := &domain.CarePlan{
		ID: id,
	}

	dst := []any{&plan.PlanName, &plan.Category, &plan.MonthlyPrice, &plan.Description, &plan.IsActive, &plan.CreatedAt, &plan.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return plan, nil
}

func (r *Repository) GetAllCarePlans() ([]*domain.CarePlan, error) {
	query := `
		SELECT id, plan_name, category, monthly_price, description, is_active, created_at, version
		FROM care_plans
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]*domain.CarePlan, 0)
	for rows.Next() {
		plan := &domain.CarePlan{}
		dst := []any{&plan.ID, &plan.PlanName, &plan.Category, &plan.MonthlyPrice, &plan.Description, &plan.IsActive, &plan.CreatedAt, &plan.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *Repository) UpdateCarePlan(plan *domain.CarePlan) error {
	query := `
		UPDATE care_plans
		SET
			plan_name = $1,
			category = $2,
			monthly_price = $3,
			description = $4,
			is_active = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{plan.PlanName, plan.Category, plan.MonthlyPrice, plan.Description, plan.IsActive, plan.ID, plan.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&plan.CreatedAt, &plan.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteCarePlan(id int64) error {
	query := `
		DELETE FROM care_plans WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
