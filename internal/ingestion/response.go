package ingestion

import (
	"strings"

	"github.com/jonathan/career-pipeline/internal/types"
)

// extractionResponse mirrors the /extract-text body. Every field is optional.
type extractionResponse struct {
	Filename       types.Text                      `json:"filename"`
	Pages          types.Count                     `json:"pages"`
	Characters     types.Count                     `json:"characters"`
	SavedToDB      types.Flag                      `json:"saved_to_db"`
	CareerFields   types.List[careerFieldResponse] `json:"career_fields"`
	OverallSummary types.Text                      `json:"overall_summary"`
	Error          types.Text                      `json:"error"`
}

type careerFieldResponse struct {
	Field              types.Text             `json:"field"`
	Summary            types.Text             `json:"summary"`
	KeySkillsMentioned types.List[types.Text] `json:"key_skills_mentioned"`
}

// decodeExtraction builds an ExtractionResult from a response body. Absent or malformed
// fields default to empty values; decoding never fails.
func decodeExtraction(body []byte) types.ExtractionResult {
	var resp extractionResponse
	types.DecodeLenient(body, &resp)

	fields := make([]types.CareerField, 0, len(resp.CareerFields))
	for _, cf := range resp.CareerFields {
		fields = append(fields, types.CareerField{
			Field:   cf.Field.String(),
			Summary: cf.Summary.String(),
			Skills:  uniqueStrings(types.TextList(cf.KeySkillsMentioned)),
		})
	}

	return types.ExtractionResult{
		Filename:       resp.Filename.String(),
		PageCount:      resp.Pages.Int(),
		CharCount:      resp.Characters.Int(),
		SavedToDB:      resp.SavedToDB.Bool(),
		CareerFields:   fields,
		OverallSummary: resp.OverallSummary.String(),
		ErrorNote:      strings.TrimSpace(resp.Error.String()),
	}
}

// uniqueStrings removes case-insensitive duplicates, keeping the first spelling seen.
func uniqueStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
