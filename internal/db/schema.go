package db

// schemaStatements are applied in order by EnsureSchema. Each is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS pipeline_runs (
		id            UUID PRIMARY KEY,
		username      TEXT NOT NULL,
		document_path TEXT NOT NULL,
		status        TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		completed_at  TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS run_steps (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		run_id      UUID NOT NULL REFERENCES pipeline_runs(id) ON DELETE CASCADE,
		step        TEXT NOT NULL,
		category    TEXT NOT NULL,
		status      TEXT NOT NULL,
		message     TEXT,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (run_id, step)
	)`,
	`CREATE TABLE IF NOT EXISTS artifacts (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		run_id     UUID NOT NULL REFERENCES pipeline_runs(id) ON DELETE CASCADE,
		step       TEXT NOT NULL,
		category   TEXT NOT NULL,
		content    JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (run_id, step)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_run_steps_run_id ON run_steps(run_id)`,
}
