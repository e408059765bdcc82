package scorecardmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating saved_games table...")

		if _, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS saved_games (
				slot_key VARCHAR(128) PRIMARY KEY,
				payload TEXT NOT NULL,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`); err != nil {
			return fmt.Errorf("failed to create saved_games table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping saved_games table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS saved_games`); err != nil {
			return fmt.Errorf("failed to drop saved_games table: %w", err)
		}
		return nil
	})
}
