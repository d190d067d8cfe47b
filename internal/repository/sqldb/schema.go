package sqldb

import (
	"context"
	"fmt"
)

// daily_data is the single owned table. TEXT dates keep the schema identical
// across sqlite and postgres; the ISO form sorts correctly as a string.
const createDailyData = `
CREATE TABLE IF NOT EXISTS daily_data (
	date            TEXT PRIMARY KEY,
	demand          INTEGER NOT NULL DEFAULT 0,
	production_plan INTEGER NOT NULL DEFAULT 0,
	forecast        INTEGER,
	inventory       INTEGER NOT NULL DEFAULT 0
)`

// Migrate creates the schema if it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, createDailyData); err != nil {
		return fmt.Errorf("failed to create daily_data table: %w", err)
	}
	return nil
}
