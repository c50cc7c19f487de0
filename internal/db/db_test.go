package db

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-pipeline/internal/schemas"
	"github.com/jonathan/career-pipeline/internal/types"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, "running", RunStatusRunning)
	assert.Equal(t, "report", ArtifactReport)
	assert.Equal(t, "reporting", CategoryReporting)
	assert.Positive(t, DefaultListLimit)
}

func TestSchemaStatementsAreIdempotent(t *testing.T) {
	assert.NotEmpty(t, schemaStatements)
	for _, stmt := range schemaStatements {
		assert.Contains(t, stmt, "IF NOT EXISTS")
	}
}

func TestSchemaCoversTables(t *testing.T) {
	all := strings.Join(schemaStatements, "\n")
	for _, table := range []string{"pipeline_runs", "run_steps", "artifacts"} {
		assert.Contains(t, all, "CREATE TABLE IF NOT EXISTS "+table)
	}
}

func TestRunType(t *testing.T) {
	run := Run{
		Username:     "test_user_4821",
		DocumentPath: "cv.pdf",
		Status:       RunStatusRunning,
	}

	assert.Equal(t, "test_user_4821", run.Username)
	assert.Equal(t, RunStatusRunning, run.Status)
	assert.Nil(t, run.CompletedAt)
}

func TestNullableText(t *testing.T) {
	assert.Nil(t, nullableText(""))
	if s := nullableText("ok"); assert.NotNil(t, s) {
		assert.Equal(t, "ok", *s)
	}
}

func TestSaveReport_RejectsInvalidReportBeforeQuery(t *testing.T) {
	// No pool: validation has to fail before any query is attempted.
	store := &DB{}

	err := store.SaveReport(context.Background(), uuid.New(), &types.PipelineReport{Timestamp: "2026-10-15 09:30:00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report failed schema validation")

	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}
