package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateUsageCounters, downCreateUsageCounters)
}

func upCreateUsageCounters(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE usage_counters (
		id INT PRIMARY KEY,
		total_requests BIGINT NOT NULL DEFAULT 0,
		successes BIGINT NOT NULL DEFAULT 0,
		media_delivered BIGINT NOT NULL DEFAULT 0,
		failures_by_cause JSONB NOT NULL DEFAULT '{}'::jsonb,
		requests_by_identity JSONB NOT NULL DEFAULT '{}'::jsonb,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downCreateUsageCounters(tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE usage_counters;
	`)
	if err != nil {
		return err
	}
	return nil
}
