package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	repo "github.com/Shivam-knight-owl/product-tour-platform/internal/repository"
)

func TestPostgresStatsRepository_Counts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresStatsRepository(sqlxDB)

	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM tours WHERE user_id = $1`)).
		WithArgs(userID).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM tours WHERE user_id = $1 AND is_public = $2`)).
		WithArgs(userID, true).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(views), 0) FROM tours WHERE user_id = $1`)).
		WithArgs(userID).WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(42))

	total, err := r.CountTours(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 5, total)

	public, err := r.CountToursByVisibility(context.Background(), userID, true)
	require.NoError(t, err)
	require.Equal(t, 2, public)

	views, err := r.SumViews(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 42, views)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStatsRepository_MostViewedTour_TiesBrokenByCreation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresStatsRepository(sqlxDB)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY views DESC, created_at ASC`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "views", "is_public", "created_at"}).
			AddRow(id, "Top Tour", 99, true, time.Now()))

	summary, err := r.MostViewedTour(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Equal(t, id, summary.ID)
	require.Equal(t, 99, summary.Views)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStatsRepository_LatestTour_NilWhenNoTours(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresStatsRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC`)).
		WithArgs(sqlmock.AnyArg()).WillReturnError(sql.ErrNoRows)

	summary, err := r.LatestTour(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Nil(t, summary)
	require.NoError(t, mock.ExpectationsWereMet())
}
