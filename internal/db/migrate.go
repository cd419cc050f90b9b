package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Single-user installation: one row carrying the stable opaque user id.
	`CREATE TABLE IF NOT EXISTS user_identity (
		id         INTEGER PRIMARY KEY CHECK(id = 1),
		user_id    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS profiles (
		user_id      TEXT PRIMARY KEY,
		profile_json TEXT NOT NULL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS macro_plans (
		plan_id    TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		plan_text  TEXT NOT NULL,
		created_at TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'active'
		           CHECK(status IN ('active','inactive'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_macro_plans_user ON macro_plans(user_id, status)`,

	`CREATE TABLE IF NOT EXISTS schedules (
		schedule_id        TEXT PRIMARY KEY,
		user_id            TEXT NOT NULL,
		macro_plan_id      TEXT,
		micro_plan_json    TEXT NOT NULL,
		availability_json  TEXT,
		optimization_notes TEXT NOT NULL DEFAULT '',
		created_at         TEXT NOT NULL,
		status             TEXT NOT NULL DEFAULT 'draft'
		                   CHECK(status IN ('draft','active','inactive'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedules_user ON schedules(user_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS feedback (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		schedule_id   TEXT NOT NULL,
		feedback_text TEXT NOT NULL,
		analysis_text TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_feedback_schedule ON feedback(schedule_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS work_hours (
		user_id         TEXT PRIMARY KEY,
		work_hours_json TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,
}
