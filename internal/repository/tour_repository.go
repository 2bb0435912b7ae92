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

// TourSort selects the descending sort column for tour listings.
type TourSort string

const (
	SortByCreatedAt TourSort = "createdAt"
	SortByViews     TourSort = "views"
)

type TourUpdate struct {
	Title       *string
	Description *string
	IsPublic    *bool
}

type TourRepository interface {
	Create(ctx context.Context, tour *model.Tour) (*model.Tour, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tour, error)
	OwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	ListByOwner(ctx context.Context, userID uuid.UUID, sort TourSort) ([]model.Tour, error)
	ListPublic(ctx context.Context, sort TourSort) ([]model.Tour, error)
	Update(ctx context.Context, id uuid.UUID, update TourUpdate) (*model.Tour, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type postgresTourRepository struct {
	db *sqlx.DB
}

func NewPostgresTourRepository(db *sqlx.DB) TourRepository {
	return &postgresTourRepository{db: db}
}

const tourColumns = `id, user_id, title, description, is_public, views, created_at, updated_at`

func (r *postgresTourRepository) Create(ctx context.Context, tour *model.Tour) (*model.Tour, error) {
	query := `
		INSERT INTO tours (user_id, title, description, is_public)
		VALUES ($1, $2, $3, $4)
		RETURNING id, views, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query, tour.UserID, tour.Title, tour.Description, tour.IsPublic)
	err := row.Scan(&tour.ID, &tour.Views, &tour.CreatedAt, &tour.UpdatedAt)

	if err != nil {
		return nil, err
	}

	tour.Steps = []model.Step{}

	return tour, nil
}

func (r *postgresTourRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Tour, error) {
	var tour model.Tour
	query := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1`
	err := r.db.GetContext(ctx, &tour, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if err := r.attachSteps(ctx, []*model.Tour{&tour}); err != nil {
		return nil, err
	}

	return &tour, nil
}

// OwnerID is the dedicated ownership lookup used by every mutating
// operation on a tour or its steps.
func (r *postgresTourRepository) OwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var ownerID uuid.UUID
	query := `SELECT user_id FROM tours WHERE id = $1`
	err := r.db.GetContext(ctx, &ownerID, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, nil
		}

		return uuid.Nil, err
	}

	return ownerID, nil
}

func (r *postgresTourRepository) ListByOwner(ctx context.Context, userID uuid.UUID, sort TourSort) ([]model.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE user_id = $1 ORDER BY ` + orderClause(sort)
	return r.list(ctx, query, userID)
}

func (r *postgresTourRepository) ListPublic(ctx context.Context, sort TourSort) ([]model.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE is_public = true ORDER BY ` + orderClause(sort)
	return r.list(ctx, query)
}

func (r *postgresTourRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Tour, error) {
	var tours []model.Tour
	err := r.db.SelectContext(ctx, &tours, query, args...)

	if err != nil {
		return nil, err
	}

	if tours == nil {
		tours = []model.Tour{}
	}

	refs := make([]*model.Tour, len(tours))
	for i := range tours {
		refs[i] = &tours[i]
	}

	if err := r.attachSteps(ctx, refs); err != nil {
		return nil, err
	}

	return tours, nil
}

func (r *postgresTourRepository) Update(ctx context.Context, id uuid.UUID, update TourUpdate) (*model.Tour, error) {
	var setClauses []string
	var args []interface{}
	argId := 1

	if update.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argId))
		args = append(args, *update.Title)
		argId++
	}
	if update.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argId))
		args = append(args, *update.Description)
		argId++
	}
	if update.IsPublic != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_public = $%d", argId))
		args = append(args, *update.IsPublic)
		argId++
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = now()")

	query := fmt.Sprintf(
		"UPDATE tours SET %s WHERE id = $%d RETURNING "+tourColumns,
		strings.Join(setClauses, ", "), argId,
	)
	args = append(args, id)

	var tour model.Tour
	err := r.db.GetContext(ctx, &tour, query, args...)

	if err != nil {
		return nil, err
	}

	if err := r.attachSteps(ctx, []*model.Tour{&tour}); err != nil {
		return nil, err
	}

	return &tour, nil
}

func (r *postgresTourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Steps are removed by the ON DELETE CASCADE on steps.tour_id.
	query := `DELETE FROM tours WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// IncrementViews is deliberately not linked transactionally to the read
// that precedes it; concurrent reads of the same public tour may each
// observe the pre-increment count.
func (r *postgresTourRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE tours SET views = views + 1 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *postgresTourRepository) attachSteps(ctx context.Context, tours []*model.Tour) error {
	if len(tours) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(tours))
	byID := make(map[uuid.UUID]*model.Tour, len(tours))
	for i, tour := range tours {
		ids[i] = tour.ID
		byID[tour.ID] = tour
		tour.Steps = []model.Step{}
	}

	query, args, err := sqlx.In(
		`SELECT id, tour_id, title, body, image_url, step_order, created_at, updated_at
		 FROM steps WHERE tour_id IN (?) ORDER BY step_order ASC`, ids,
	)
	if err != nil {
		return err
	}

	var steps []model.Step
	err = r.db.SelectContext(ctx, &steps, r.db.Rebind(query), args...)
	if err != nil {
		return err
	}

	for _, step := range steps {
		tour := byID[step.TourID]
		tour.Steps = append(tour.Steps, step)
	}

	return nil
}

func orderClause(sort TourSort) string {
	if sort == SortByViews {
		return "views DESC"
	}
	return "created_at DESC"
}
