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

	"github.com/Shivam-knight-owl/product-tour-platform/internal/model"
	repo "github.com/Shivam-knight-owl/product-tour-platform/internal/repository"
)

const stepCols = `id, tour_id, title, body, image_url, step_order, created_at, updated_at`

func TestPostgresStepRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresStepRepository(sqlxDB)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO steps (tour_id, title, body, image_url, step_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`)).WithArgs(sqlmock.AnyArg(), "Click here", nil, nil, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))

	step := &model.Step{TourID: uuid.New(), Title: "Click here", Order: 0}
	created, err := r.Create(context.Background(), step)
	require.NoError(t, err)
	require.Equal(t, id, created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStepRepository_FindByID_ScopedToTour(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresStepRepository(sqlxDB)

	tourID := uuid.New()
	stepID := uuid.New()

	// looked up through the wrong tour id, the step does not exist
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+stepCols+` FROM steps WHERE id = $1 AND tour_id = $2`)).
		WithArgs(stepID, tourID).WillReturnError(sql.ErrNoRows)

	step, err := r.FindByID(context.Background(), tourID, stepID)
	require.NoError(t, err)
	require.Nil(t, step)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStepRepository_Update_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresStepRepository(sqlxDB)

	title := "Renamed"
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE steps SET title = $1, updated_at = now() WHERE id = $2 AND tour_id = $3 RETURNING `+stepCols)).
		WithArgs(title, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	step, err := r.Update(context.Background(), uuid.New(), uuid.New(), repo.StepUpdate{Title: &title})
	require.NoError(t, err)
	require.Nil(t, step)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStepRepository_Delete_ReportsAffected(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresStepRepository(sqlxDB)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM steps WHERE id = $1 AND tour_id = $2`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM steps WHERE id = $1 AND tour_id = $2`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := r.Delete(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = r.Delete(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	require.False(t, deleted)

	require.NoError(t, mock.ExpectationsWereMet())
}
