// Package report builds and persists the combined result of a pipeline run.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/career-pipeline/internal/schemas"
	"github.com/jonathan/career-pipeline/internal/types"
	reportschema "github.com/jonathan/career-pipeline/schemas"
)

// DefaultPath is where the report is written when no path is configured.
const DefaultPath = "pipeline_test_results.json"

// TimestampLayout formats the report timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// ErrIncomplete is returned when extraction or job search results are missing.
var ErrIncomplete = errors.New("report requires both extraction and job search results")

// Build assembles a report. Favorites and the chat answer are optional and serialize as null
// when absent.
func Build(now time.Time, extraction *types.ExtractionResult, jobs *types.JobSearchResult, favorites *types.FavoriteRecord, chatAnswer *string) (*types.PipelineReport, error) {
	if extraction == nil || jobs == nil {
		return nil, ErrIncomplete
	}

	return &types.PipelineReport{
		Timestamp:  now.Format(TimestampLayout),
		Extraction: normalizeExtraction(*extraction),
		JobSearch:  normalizeJobs(*jobs),
		Favorites:  favorites,
		ChatAnswer: chatAnswer,
	}, nil
}

// Encode renders the report as indented UTF-8 JSON. Non-ASCII text and HTML characters are
// written as-is.
func Encode(r *types.PipelineReport) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return buf.Bytes(), nil
}

// Write validates the report against the report schema and writes it to path.
func Write(path string, r *types.PipelineReport) error {
	data, err := Encode(r)
	if err != nil {
		return err
	}
	if err := schemas.ValidateJSONString(reportschema.PipelineReport, string(data)); err != nil {
		return fmt.Errorf("report failed schema validation: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// The normalize helpers copy slices so the report never aliases stage outputs and empty
// lists serialize as [] rather than null.

func normalizeExtraction(e types.ExtractionResult) types.ExtractionResult {
	fields := make([]types.CareerField, 0, len(e.CareerFields))
	for _, cf := range e.CareerFields {
		cf.Skills = append(make([]string, 0, len(cf.Skills)), cf.Skills...)
		fields = append(fields, cf)
	}
	e.CareerFields = fields
	e.PageCount = types.NonNegative(e.PageCount).Int()
	e.CharCount = types.NonNegative(e.CharCount).Int()
	return e
}

func normalizeJobs(r types.JobSearchResult) types.JobSearchResult {
	r.CareerFieldSearch.Jobs = append(make([]types.Job, 0, len(r.CareerFieldSearch.Jobs)), r.CareerFieldSearch.Jobs...)
	r.SkillsSearch.Jobs = append(make([]types.Job, 0, len(r.SkillsSearch.Jobs)), r.SkillsSearch.Jobs...)
	r.SkillsSearch.Skills = append(make([]types.SkillRef, 0, len(r.SkillsSearch.Skills)), r.SkillsSearch.Skills...)
	r.TotalJobs = types.NonNegative(r.TotalJobs).Int()
	r.CareerFieldSearch.JobsFound = types.NonNegative(r.CareerFieldSearch.JobsFound).Int()
	r.SkillsSearch.JobsFound = types.NonNegative(r.SkillsSearch.JobsFound).Int()
	return r
}
