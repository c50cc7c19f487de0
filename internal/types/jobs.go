package types

import "time"

// Job is a single posting returned by job discovery.
type Job struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	URN         string `json:"urn,omitempty"`
	ApplyLink   string `json:"apply_link,omitempty"`
}

// SearchBucket holds the fields shared by both search strategies.
type SearchBucket struct {
	Keywords  string `json:"keywords"`
	JobsFound int    `json:"jobs_found"`
	Jobs      []Job  `json:"jobs"`
}

// CareerFieldRef names the career field a search was derived from.
type CareerFieldRef struct {
	FieldName string `json:"field_name"`
}

// SkillRef names a skill a search was derived from.
type SkillRef struct {
	SkillName string `json:"skill_name"`
}

// CareerFieldSearch is the bucket of jobs found by career field.
type CareerFieldSearch struct {
	CareerField CareerFieldRef `json:"career_field"`
	SearchBucket
}

// SkillsSearch is the bucket of jobs found by skills.
type SkillsSearch struct {
	Skills []SkillRef `json:"skills"`
	SearchBucket
}

// SkillNames returns the skill names the search used.
func (s SkillsSearch) SkillNames() []string {
	names := make([]string, 0, len(s.Skills))
	for _, sk := range s.Skills {
		names = append(names, sk.SkillName)
	}
	return names
}

// JobSearchResult aggregates both search buckets for a city.
type JobSearchResult struct {
	City              string            `json:"city"`
	TotalJobs         int               `json:"total_jobs"`
	CareerFieldSearch CareerFieldSearch `json:"career_field_search"`
	SkillsSearch      SkillsSearch      `json:"skills_search"`

	// Elapsed is the wall time of the search call. It is shown to the user but not persisted.
	Elapsed time.Duration `json:"-"`
}

// JobCount returns the number of jobs present across both buckets.
func (r JobSearchResult) JobCount() int {
	return len(r.CareerFieldSearch.Jobs) + len(r.SkillsSearch.Jobs)
}
