package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Shivam-knight-owl/product-tour-platform/internal/model"
)

type StatsRepository interface {
	CountTours(ctx context.Context, userID uuid.UUID) (int, error)
	CountToursByVisibility(ctx context.Context, userID uuid.UUID, isPublic bool) (int, error)
	SumViews(ctx context.Context, userID uuid.UUID) (int, error)
	MostViewedTour(ctx context.Context, userID uuid.UUID) (*model.TourSummary, error)
	LatestTour(ctx context.Context, userID uuid.UUID) (*model.TourSummary, error)
}

type postgresStatsRepository struct {
	db *sqlx.DB
}

func NewPostgresStatsRepository(db *sqlx.DB) StatsRepository {
	return &postgresStatsRepository{db: db}
}

func (r *postgresStatsRepository) CountTours(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM tours WHERE user_id = $1`
	err := r.db.GetContext(ctx, &count, query, userID)

	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postgresStatsRepository) CountToursByVisibility(ctx context.Context, userID uuid.UUID, isPublic bool) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM tours WHERE user_id = $1 AND is_public = $2`
	err := r.db.GetContext(ctx, &count, query, userID, isPublic)

	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postgresStatsRepository) SumViews(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	query := `SELECT COALESCE(SUM(views), 0) FROM tours WHERE user_id = $1`
	err := r.db.GetContext(ctx, &total, query, userID)

	if err != nil {
		return 0, err
	}

	return total, nil
}

// MostViewedTour breaks view-count ties by creation order, oldest first.
func (r *postgresStatsRepository) MostViewedTour(ctx context.Context, userID uuid.UUID) (*model.TourSummary, error) {
	query := `
		SELECT id, title, views, is_public, created_at
		FROM tours WHERE user_id = $1
		ORDER BY views DESC, created_at ASC
		LIMIT 1
	`
	return r.firstTour(ctx, query, userID)
}

func (r *postgresStatsRepository) LatestTour(ctx context.Context, userID uuid.UUID) (*model.TourSummary, error) {
	query := `
		SELECT id, title, views, is_public, created_at
		FROM tours WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.firstTour(ctx, query, userID)
}

func (r *postgresStatsRepository) firstTour(ctx context.Context, query string, userID uuid.UUID) (*model.TourSummary, error) {
	var summary model.TourSummary
	err := r.db.GetContext(ctx, &summary, query, userID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &summary, nil
}
