package dto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateRequest_Validate(t *testing.T) {
	req := CandidateRequest{
		FullName: "Ada",
		Email:    "ada@example.com",
		ProfilePayload: ProfilePayload{
			Skills:      []SkillPayload{{Name: "Go", Level: 4}},
			TestResults: []TestResultPayload{{Dimension: "logic", Score: 80}},
		},
	}
	require.NoError(t, req.Validate())

	req.FullName = ""
	req.Email = "not-an-email"
	req.Skills = append(req.Skills, SkillPayload{Level: 9})
	req.TestResults[0].Score = 120

	err := req.Validate()
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "is required", fields["full_name"])
	assert.Equal(t, "must be a valid email", fields["email"])
	assert.Equal(t, "is required", fields["skills[1].name"])
	assert.Equal(t, "must be at most 5", fields["skills[1].level"])
	assert.Equal(t, "must be at most 100", fields["test_results[0].score"])
}

func TestCandidateRequest_ToModel(t *testing.T) {
	req := CandidateRequest{
		FullName: "Ada",
		ProfilePayload: ProfilePayload{
			Location:            "Paris",
			ContractPreferences: []string{"CDI"},
			Skills:              []SkillPayload{{Name: "Go", Category: "backend", Level: 4}},
			Experiences:         []ExperiencePayload{{Title: "Dev", DurationMonths: 24}},
			Educations:          []EducationPayload{{Level: "master"}},
			Certifications:      []string{"CKA"},
			Badges:              []string{"Mentor"},
			TestResults:         []TestResultPayload{{Dimension: "logic", Score: 70}},
		},
	}

	c := req.ToModel()
	assert.Equal(t, "Ada", c.FullName)
	assert.Equal(t, "Paris", c.Location)
	require.Len(t, c.Skills, 1)
	assert.Equal(t, 4, c.Skills[0].Level)
	assert.Equal(t, 24, c.Experiences[0].DurationMonths)
	assert.Equal(t, "master", c.Educations[0].Level)
	assert.Equal(t, "CKA", c.Certifications[0].Name)
	assert.Equal(t, "Mentor", c.Badges[0].Name)
	assert.Equal(t, 70.0, c.TestResults[0].Score)
}

func TestOfferRequest_Validate(t *testing.T) {
	req := OfferRequest{Title: "Backend", Status: "published"}
	require.NoError(t, req.Validate())

	req.Status = "archived"
	req.Title = ""
	fields := FieldErrors(req.Validate())
	assert.Equal(t, "is required", fields["title"])
	assert.Equal(t, "must be one of: draft published closed", fields["status"])
}

func TestRankCandidatesRequest_Validate(t *testing.T) {
	req := RankCandidatesRequest{CandidateIDs: []string{"2f0e3c3e-4c7a-4b36-9a52-0a4b8c1d9e11"}}
	require.NoError(t, req.Validate())

	req.CandidateIDs = nil
	assert.Error(t, req.Validate())

	req.CandidateIDs = []string{"nope"}
	fields := FieldErrors(req.Validate())
	assert.Equal(t, "must be a UUID", fields["candidate_ids[0]"])
}

func TestInlineMatchRequest_Conversions(t *testing.T) {
	req := InlineMatchRequest{
		Candidate: ProfilePayload{Skills: []SkillPayload{{Name: "Go"}}, Location: "Lyon"},
		Requirement: RequirementPayload{
			RequiredSkills: []string{"Go"},
			Location:       "Paris",
			RemoteAllowed:  true,
		},
	}
	require.NoError(t, req.Validate())

	p := req.Profile()
	assert.Equal(t, "Lyon", p.Location)
	require.Len(t, p.Skills, 1)

	r := req.JobRequirement()
	assert.Equal(t, []string{"Go"}, r.RequiredSkills)
	assert.True(t, r.RemoteAllowed)
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	assert.Equal(t, map[string]string{"body": "boom"}, FieldErrors(errors.New("boom")))
}
