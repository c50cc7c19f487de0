package types

// PipelineReport is the artifact written at the end of a run in which both extraction and
// job discovery succeeded.
type PipelineReport struct {
	Timestamp  string           `json:"timestamp"`
	Extraction ExtractionResult `json:"pdf_extraction"`
	JobSearch  JobSearchResult  `json:"job_scraping"`
	Favorites  *FavoriteRecord  `json:"favorites"`
	ChatAnswer *string          `json:"career_chat"`
}
