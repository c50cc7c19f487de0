package discovery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-pipeline/internal/apiclient"
)

const berlinResponse = `{
	"city": "Berlin",
	"total_jobs": 5,
	"career_field_search": {
		"career_field": {"field_name": "Data Analytics"},
		"keywords": "data analyst",
		"jobs_found": 3,
		"jobs": [
			{"title": "Data Analyst", "company": "Zalando", "location": "Berlin", "urn": "urn:li:job:1", "apply_link": "https://example.com/1"},
			{"title": "BI Analyst", "company": "N26", "location": "Berlin"},
			{"title": "Analytics Engineer", "company": "Delivery Hero", "location": "Berlin", "description": "<p>dbt</p>"}
		]
	},
	"skills_search": {
		"skills": [{"skill_name": "SQL"}, {"skill_name": "Python"}],
		"keywords": ["SQL", "Python"],
		"jobs_found": 2,
		"jobs": [
			{"title": "Python Developer", "company": "SAP", "location": "Berlin", "urn": 4242},
			{"title": "SQL Developer", "company": "Siemens", "location": "Berlin"}
		]
	}
}`

func newDiscovery(t *testing.T, handler http.HandlerFunc) *Discovery {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := apiclient.New(apiclient.Options{BaseURL: server.URL})
	require.NoError(t, err)
	return NewDiscovery(client, time.Second)
}

func TestParsePages(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"abc", 1},
		{"7", 3},
		{"2", 2},
		{"", 1},
		{"  3 ", 3},
		{"0", 1},
		{"-4", 1},
		{"1.5", 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePages(tt.input))
		})
	}
}

func TestClampPages(t *testing.T) {
	assert.Equal(t, 1, ClampPages(-10))
	assert.Equal(t, 1, ClampPages(1))
	assert.Equal(t, 3, ClampPages(3))
	assert.Equal(t, 3, ClampPages(99))
}

func TestSearch_Success(t *testing.T) {
	d := newDiscovery(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scrape-jobs", r.URL.Path)
		assert.Equal(t, "Berlin", r.URL.Query().Get("city"))
		assert.Equal(t, "1", r.URL.Query().Get("max_pages"))
		_, _ = w.Write([]byte(berlinResponse))
	})

	result, err := d.Search(context.Background(), "Berlin", 1)
	require.NoError(t, err)

	assert.Equal(t, "Berlin", result.City)
	assert.Equal(t, 5, result.TotalJobs)
	assert.Equal(t, 5, result.JobCount())

	cf := result.CareerFieldSearch
	assert.Equal(t, "Data Analytics", cf.CareerField.FieldName)
	assert.Equal(t, "data analyst", cf.Keywords)
	assert.Equal(t, 3, cf.JobsFound)
	require.Len(t, cf.Jobs, 3)
	assert.Equal(t, "Data Analyst", cf.Jobs[0].Title)
	assert.Equal(t, "urn:li:job:1", cf.Jobs[0].URN)
	assert.Equal(t, "https://example.com/1", cf.Jobs[0].ApplyLink)

	sk := result.SkillsSearch
	assert.Equal(t, []string{"SQL", "Python"}, sk.SkillNames())
	assert.Equal(t, "SQL, Python", sk.Keywords)
	require.Len(t, sk.Jobs, 2)
	assert.Equal(t, "4242", sk.Jobs[0].URN)
}

func TestSearch_ClampsPagesInQuery(t *testing.T) {
	d := newDiscovery(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("max_pages"))
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := d.Search(context.Background(), "London", 7)
	require.NoError(t, err)
}

func TestSearch_MissingBucketsDefaultToEmpty(t *testing.T) {
	d := newDiscovery(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"city": "Paris", "skills_search": "unexpected"}`))
	})

	result, err := d.Search(context.Background(), "Paris", 1)
	require.NoError(t, err)

	assert.Equal(t, "Paris", result.City)
	assert.Zero(t, result.TotalJobs)
	assert.Empty(t, result.CareerFieldSearch.Jobs)
	assert.Empty(t, result.CareerFieldSearch.CareerField.FieldName)
	assert.Empty(t, result.SkillsSearch.Jobs)
	assert.Empty(t, result.SkillsSearch.Skills)
}

func TestSearch_JobsFoundDefaultsToJobsPresent(t *testing.T) {
	d := newDiscovery(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"career_field_search": {"jobs": [{"title": "A"}, "junk", {"title": "B"}]}}`))
	})

	result, err := d.Search(context.Background(), "Rome", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, result.CareerFieldSearch.JobsFound)
	assert.Equal(t, 2, result.TotalJobs)
}

func TestSearch_NotFoundMeansNoExtractionData(t *testing.T) {
	d := newDiscovery(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"No career fields found in database"}`))
	})

	result, err := d.Search(context.Background(), "Berlin", 1)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoExtractionData))

	var noData *NoExtractionDataError
	require.True(t, errors.As(err, &noData))
	assert.Equal(t, "No career fields found in database", noData.Detail)
	assert.Contains(t, err.Error(), "upload a document first")
}

func TestSearch_OtherStatusIsGenericFailure(t *testing.T) {
	d := newDiscovery(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := d.Search(context.Background(), "Berlin", 1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoExtractionData))

	var perr *apiclient.ProtocolError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusBadGateway, perr.StatusCode)
}
