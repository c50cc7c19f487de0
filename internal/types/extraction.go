package types

// ExtractionResult is the structured data the backend extracted from an uploaded document.
type ExtractionResult struct {
	Filename       string        `json:"filename"`
	PageCount      int           `json:"pages"`
	CharCount      int           `json:"characters"`
	SavedToDB      bool          `json:"saved_to_db"`
	CareerFields   []CareerField `json:"career_fields"`
	OverallSummary string        `json:"overall_summary"`
	ErrorNote      string        `json:"error,omitempty"`
}

// CareerField is a profession area detected in the document.
type CareerField struct {
	Field   string   `json:"field"`
	Summary string   `json:"summary"`
	Skills  []string `json:"key_skills_mentioned"`
}

// FieldNames returns the names of all detected career fields in order.
func (r ExtractionResult) FieldNames() []string {
	names := make([]string, 0, len(r.CareerFields))
	for _, cf := range r.CareerFields {
		names = append(names, cf.Field)
	}
	return names
}
