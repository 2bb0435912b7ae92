package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Shivam-knight-owl/product-tour-platform/internal/model"
)

type StepUpdate struct {
	Title    *string
	Body     *string
	ImageURL *string
	Order    *int
}

// StepRepository scopes every lookup and mutation to (stepID, tourID) so a
// step can never be reached through the wrong tour id.
type StepRepository interface {
	Create(ctx context.Context, step *model.Step) (*model.Step, error)
	FindByID(ctx context.Context, tourID, stepID uuid.UUID) (*model.Step, error)
	Update(ctx context.Context, tourID, stepID uuid.UUID, update StepUpdate) (*model.Step, error)
	Delete(ctx context.Context, tourID, stepID uuid.UUID) (bool, error)
}

type postgresStepRepository struct {
	db *sqlx.DB
}

func NewPostgresStepRepository(db *sqlx.DB) StepRepository {
	return &postgresStepRepository{db: db}
}

const stepColumns = `id, tour_id, title, body, image_url, step_order, created_at, updated_at`

func (r *postgresStepRepository) Create(ctx context.Context, step *model.Step) (*model.Step, error) {
	query := `
		INSERT INTO steps (tour_id, title, body, image_url, step_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query, step.TourID, step.Title, step.Body, step.ImageURL, step.Order)
	err := row.Scan(&step.ID, &step.CreatedAt, &step.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return step, nil
}

func (r *postgresStepRepository) FindByID(ctx context.Context, tourID, stepID uuid.UUID) (*model.Step, error) {
	var step model.Step
	query := `SELECT ` + stepColumns + ` FROM steps WHERE id = $1 AND tour_id = $2`
	err := r.db.GetContext(ctx, &step, query, stepID, tourID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &step, nil
}

func (r *postgresStepRepository) Update(ctx context.Context, tourID, stepID uuid.UUID, update StepUpdate) (*model.Step, error) {
	var setClauses []string
	var args []interface{}
	argId := 1

	if update.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argId))
		args = append(args, *update.Title)
		argId++
	}
	if update.Body != nil {
		setClauses = append(setClauses, fmt.Sprintf("body = $%d", argId))
		args = append(args, *update.Body)
		argId++
	}
	if update.ImageURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("image_url = $%d", argId))
		args = append(args, *update.ImageURL)
		argId++
	}
	if update.Order != nil {
		setClauses = append(setClauses, fmt.Sprintf("step_order = $%d", argId))
		args = append(args, *update.Order)
		argId++
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, tourID, stepID)
	}

	setClauses = append(setClauses, "updated_at = now()")

	query := fmt.Sprintf(
		"UPDATE steps SET %s WHERE id = $%d AND tour_id = $%d RETURNING "+stepColumns,
		strings.Join(setClauses, ", "), argId, argId+1,
	)
	args = append(args, stepID, tourID)

	var step model.Step
	err := r.db.GetContext(ctx, &step, query, args...)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &step, nil
}

func (r *postgresStepRepository) Delete(ctx context.Context, tourID, stepID uuid.UUID) (bool, error) {
	query := `DELETE FROM steps WHERE id = $1 AND tour_id = $2`
	res, err := r.db.ExecContext(ctx, query, stepID, tourID)

	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
