package discovery

import (
	"strings"

	"github.com/jonathan/career-pipeline/internal/types"
)

// searchResponse mirrors the /scrape-jobs body. Both buckets are optional.
type searchResponse struct {
	City              types.Text                           `json:"city"`
	TotalJobs         types.Opt[types.Count]               `json:"total_jobs"`
	CareerFieldSearch types.Opt[careerFieldSearchResponse] `json:"career_field_search"`
	SkillsSearch      types.Opt[skillsSearchResponse]      `json:"skills_search"`
}

type careerFieldSearchResponse struct {
	CareerField types.Opt[struct {
		FieldName types.Text `json:"field_name"`
	}] `json:"career_field"`
	bucketResponse
}

type skillsSearchResponse struct {
	Skills types.List[struct {
		SkillName types.Text `json:"skill_name"`
	}] `json:"skills"`
	bucketResponse
}

type bucketResponse struct {
	Keywords  keywords                `json:"keywords"`
	JobsFound types.Opt[types.Count]  `json:"jobs_found"`
	Jobs      types.List[jobResponse] `json:"jobs"`
}

type jobResponse struct {
	Title       types.Text `json:"title"`
	Company     types.Text `json:"company"`
	Location    types.Text `json:"location"`
	Description types.Text `json:"description"`
	URL         types.Text `json:"url"`
	URN         types.Text `json:"urn"`
	ApplyLink   types.Text `json:"apply_link"`
}

// keywords accepts either a single string or a list of strings.
type keywords string

func (k *keywords) UnmarshalJSON(data []byte) error {
	var list types.List[types.Text]
	_ = list.UnmarshalJSON(data)
	if len(list) > 0 {
		*k = keywords(strings.Join(types.TextList(list), ", "))
		return nil
	}
	var text types.Text
	_ = text.UnmarshalJSON(data)
	*k = keywords(text)
	return nil
}

func decodeSearch(body []byte) types.JobSearchResult {
	var resp searchResponse
	types.DecodeLenient(body, &resp)

	cf := resp.CareerFieldSearch.Value
	sk := resp.SkillsSearch.Value

	skills := make([]types.SkillRef, 0, len(sk.Skills))
	for _, s := range sk.Skills {
		skills = append(skills, types.SkillRef{SkillName: s.SkillName.String()})
	}

	result := types.JobSearchResult{
		City: resp.City.String(),
		CareerFieldSearch: types.CareerFieldSearch{
			CareerField:  types.CareerFieldRef{FieldName: cf.CareerField.Value.FieldName.String()},
			SearchBucket: cf.bucket(),
		},
		SkillsSearch: types.SkillsSearch{
			Skills:       skills,
			SearchBucket: sk.bucket(),
		},
	}
	result.TotalJobs = resp.TotalJobs.Or(types.Count(result.JobCount())).Int()
	return result
}

// bucket converts a bucket body. jobs_found defaults to the number of jobs present.
func (b bucketResponse) bucket() types.SearchBucket {
	jobs := make([]types.Job, 0, len(b.Jobs))
	for _, j := range b.Jobs {
		jobs = append(jobs, types.Job{
			Title:       j.Title.String(),
			Company:     j.Company.String(),
			Location:    j.Location.String(),
			Description: j.Description.String(),
			URL:         j.URL.String(),
			URN:         j.URN.String(),
			ApplyLink:   j.ApplyLink.String(),
		})
	}
	return types.SearchBucket{
		Keywords:  string(b.Keywords),
		JobsFound: b.JobsFound.Or(types.Count(len(jobs))).Int(),
		Jobs:      jobs,
	}
}
