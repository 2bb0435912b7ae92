package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateToursTable, downCreateToursTable)
}

func upCreateToursTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE tours (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	  title TEXT NOT NULL,
	  description TEXT,
	  is_public BOOLEAN NOT NULL DEFAULT false,
	  views INTEGER NOT NULL DEFAULT 0,
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX idx_tours_user_id ON tours(user_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateToursTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS tours;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
