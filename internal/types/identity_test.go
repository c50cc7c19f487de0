package types

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestSession_TokenIsFixed(t *testing.T) {
	identity := TestIdentity{Username: "test_user_4821", Password: "test123"}
	s := NewSession(identity, "abc")

	assert.True(t, s.Authenticated())
	assert.Equal(t, "abc", s.Token())
	assert.Equal(t, "test_user_4821", s.Identity.Username)

	var empty Session
	assert.False(t, empty.Authenticated())
}

func TestTestIdentity_Validation(t *testing.T) {
	validate := validator.New()

	assert.NoError(t, validate.Struct(TestIdentity{Username: "test_user_1000", Password: "test123"}))
	assert.Error(t, validate.Struct(TestIdentity{Username: "", Password: "test123"}))
	assert.Error(t, validate.Struct(TestIdentity{Username: "test_user_1000"}))
}

func TestJobSearchResult_JobCount(t *testing.T) {
	r := JobSearchResult{
		CareerFieldSearch: CareerFieldSearch{SearchBucket: SearchBucket{Jobs: []Job{{Title: "a"}, {Title: "b"}}}},
		SkillsSearch:      SkillsSearch{SearchBucket: SearchBucket{Jobs: []Job{{Title: "c"}}}},
	}
	assert.Equal(t, 3, r.JobCount())
}
