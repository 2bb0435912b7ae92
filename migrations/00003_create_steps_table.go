package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateStepsTable, downCreateStepsTable)
}

func upCreateStepsTable(ctx context.Context, tx *sql.Tx) error {
	// step_order is intentionally not unique per tour: the client assigns
	// positions and duplicates or gaps only affect display sort order.
	query := `
	CREATE TABLE steps (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  tour_id UUID NOT NULL REFERENCES tours(id) ON DELETE CASCADE,
	  title TEXT NOT NULL,
	  body TEXT,
	  image_url TEXT,
	  step_order INTEGER NOT NULL DEFAULT 0,
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX idx_steps_tour_id ON steps(tour_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateStepsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS steps;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
