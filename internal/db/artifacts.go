package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-pipeline/internal/schemas"
	"github.com/jonathan/career-pipeline/internal/types"
	reportschema "github.com/jonathan/career-pipeline/schemas"
)

// SaveArtifact stores a JSON artifact for a pipeline run
func (db *DB) SaveArtifact(ctx context.Context, runID uuid.UUID, step, category string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO artifacts (run_id, step, category, content)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (run_id, step) DO UPDATE SET category = $3, content = $4, created_at = NOW()`,
		runID, step, category, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", step, err)
	}
	return nil
}

// GetArtifact retrieves a JSON artifact by run ID and step. Returns nil when absent.
func (db *DB) GetArtifact(ctx context.Context, runID uuid.UUID, step string) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM artifacts WHERE run_id = $1 AND step = $2`,
		runID, step,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", step, err)
	}
	return content, nil
}

// SaveReport stores the run report as an artifact. Reports that do not match the report schema
// are rejected before reaching the database.
func (db *DB) SaveReport(ctx context.Context, runID uuid.UUID, report *types.PipelineReport) error {
	if err := schemas.ValidateValue(reportschema.PipelineReport, report); err != nil {
		return fmt.Errorf("report failed schema validation: %w", err)
	}
	return db.SaveArtifact(ctx, runID, ArtifactReport, CategoryReporting, report)
}

// GetReport retrieves the stored report of a run. Returns nil when none was saved.
func (db *DB) GetReport(ctx context.Context, runID uuid.UUID) (*types.PipelineReport, error) {
	content, err := db.GetArtifact(ctx, runID, ArtifactReport)
	if err != nil || content == nil {
		return nil, err
	}

	var report types.PipelineReport
	if err := json.Unmarshal(content, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}
