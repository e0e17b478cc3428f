package store

import (
	"database/sql"
	"fmt"
)

// schema lists the DDL applied on every Open. Statements must be idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS paused_interviews (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		company_name TEXT NOT NULL,
		job_role TEXT NOT NULL,
		data BLOB NOT NULL,
		paused_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS progress (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		tier TEXT NOT NULL,
		interviews_completed INTEGER NOT NULL DEFAULT 0,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		created_at INTEGER NOT NULL,
		company_name TEXT NOT NULL,
		job_role TEXT NOT NULL,
		company_url TEXT NOT NULL DEFAULT '',
		tier TEXT NOT NULL,
		language TEXT NOT NULL,
		feedback TEXT NOT NULL,
		transcript BLOB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS test_attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		created_at INTEGER NOT NULL,
		tier TEXT NOT NULL,
		score INTEGER NOT NULL,
		passed INTEGER NOT NULL,
		detail BLOB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		created_at INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_purpose ON llm_request_events (purpose)`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
