package matching

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seniorBackend() *JobRequirement {
	return &JobRequirement{
		ID:                 "offer_1",
		RequiredSkills:     []string{"Go", "PostgreSQL", "Kubernetes"},
		RequiredExperience: "senior",
		RequiredEducation:  "master",
		ContractType:       "CDI",
		Location:           "Paris",
	}
}

func experiencedCandidate() *CandidateProfile {
	return &CandidateProfile{
		ID:       "cand_1",
		Location: "Paris, France",
		Skills: []Skill{
			{Name: "golang", Level: 4},
			{Name: "Postgres", Level: 3},
			{Name: "k8s", Level: 2},
		},
		Experiences: []Experience{
			{Title: "Backend engineer", DurationMonths: 48},
			{Title: "Tech lead", DurationMonths: 24},
		},
		Education:           []Education{{Level: "Master's degree", Field: "Computer Science"}},
		ContractPreferences: []string{"permanent"},
	}
}

func TestScore_NilInputs(t *testing.T) {
	_, err := Score(nil, &JobRequirement{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Score(&CandidateProfile{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestScore_PerfectMatch(t *testing.T) {
	res, err := Score(experiencedCandidate(), seniorBackend())
	require.NoError(t, err)

	assert.Equal(t, 100, res.MatchScore)
	assert.Equal(t, 100.0, res.SkillsMatch)
	assert.Equal(t, 100.0, res.ExperienceMatch)
	assert.Equal(t, 100.0, res.EducationMatch)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Kubernetes"}, res.Details.MatchedSkills)
	assert.Empty(t, res.Details.MissingSkills)
	assert.True(t, res.Details.LocationCompatible)
	assert.True(t, res.Details.ContractCompatible)
	assert.Zero(t, res.Details.Penalty)
	assert.Equal(t, 6.0, res.Details.CandidateYears)
	assert.Equal(t, 5.0, res.Details.RequiredYears)
}

func TestScore_PartialSkills(t *testing.T) {
	c := &CandidateProfile{Skills: []Skill{{Name: "JavaScript"}, {Name: "SQL"}}}
	r := &JobRequirement{RequiredSkills: []string{"javascript", "sql", "python"}}

	res, err := Score(c, r)
	require.NoError(t, err)

	assert.InDelta(t, 66.7, res.SkillsMatch, 0.05)
	assert.Equal(t, []string{"javascript", "sql"}, res.Details.MatchedSkills)
	assert.Equal(t, []string{"python"}, res.Details.MissingSkills)
	// 66.7*0.5 + 100*0.3 + 100*0.2
	assert.Equal(t, 83, res.MatchScore)
}

func TestScore_EmptyRequiredSkillsIsNeutral(t *testing.T) {
	for _, c := range []*CandidateProfile{
		{},
		{Skills: []Skill{{Name: "Rust"}}},
		experiencedCandidate(),
	} {
		res, err := Score(c, &JobRequirement{RequiredSkills: []string{}})
		require.NoError(t, err)
		assert.Equal(t, NeutralScore, res.SkillsMatch)
		assert.Contains(t, res.Details.NeutralDimensions, "skills")
	}
}

func TestScore_NoExperienceAgainstSenior(t *testing.T) {
	res, err := Score(&CandidateProfile{}, &JobRequirement{RequiredExperience: "senior"})
	require.NoError(t, err)

	assert.Equal(t, ExperienceFloor, res.ExperienceMatch)
	assert.Zero(t, res.Details.CandidateYears)
	assert.Equal(t, 5.0, res.Details.RequiredYears)
}

func TestScore_RemoteIgnoresLocation(t *testing.T) {
	r := &JobRequirement{Location: "Paris", RemoteAllowed: true}

	res, err := Score(&CandidateProfile{}, r)
	require.NoError(t, err)
	assert.True(t, res.Details.LocationCompatible)
	assert.Zero(t, res.Details.Penalty)

	res, err = Score(&CandidateProfile{Location: "Lyon"}, r)
	require.NoError(t, err)
	assert.True(t, res.Details.LocationCompatible)
	assert.Equal(t, 100, res.MatchScore)
}

func TestScore_LocationMismatchPenalty(t *testing.T) {
	r := &JobRequirement{Location: "Paris"}

	res, err := Score(&CandidateProfile{Location: "Lyon"}, r)
	require.NoError(t, err)
	assert.False(t, res.Details.LocationCompatible)
	assert.Equal(t, LocationPenalty, res.Details.Penalty)
	assert.Equal(t, 100-LocationPenalty, res.MatchScore)
}

func TestScore_ContractMismatchPenalty(t *testing.T) {
	c := &CandidateProfile{ContractPreferences: []string{"freelance"}}
	res, err := Score(c, &JobRequirement{ContractType: "CDI", Location: "Paris"})
	require.NoError(t, err)

	assert.False(t, res.Details.ContractCompatible)
	assert.True(t, res.Details.LocationCompatible)
	assert.Equal(t, 100-ContractPenalty, res.MatchScore)
}

func TestScore_EmptyRequirementBaseline(t *testing.T) {
	res, err := Score(&CandidateProfile{}, &JobRequirement{})
	require.NoError(t, err)

	assert.Equal(t, MaxScore, res.MatchScore)
	assert.ElementsMatch(t, []string{"skills", "experience", "education"}, res.Details.NeutralDimensions)
}

func TestScore_ToleratesNilSlices(t *testing.T) {
	c := &CandidateProfile{ID: "c"}
	r := &JobRequirement{
		RequiredSkills:     []string{"Go"},
		RequiredExperience: "junior",
		RequiredEducation:  "bachelor",
		Location:           "Berlin",
	}

	res, err := Score(c, r)
	require.NoError(t, err)

	assert.Zero(t, res.SkillsMatch)
	assert.Equal(t, ExperienceFloor, res.ExperienceMatch)
	assert.Equal(t, EducationFloor, res.EducationMatch)
	assert.Nil(t, res.Details.AverageTestScore)
	// 0*0.5 + 20*0.3 + 10*0.2
	assert.Equal(t, 8, res.MatchScore)
}

func TestScore_WorstCaseClampsToZero(t *testing.T) {
	c := &CandidateProfile{
		Location:            "Tokyo",
		ContractPreferences: []string{"internship"},
	}
	r := &JobRequirement{
		RequiredSkills:     []string{"Go"},
		RequiredExperience: "expert",
		RequiredEducation:  "phd",
		ContractType:       "permanent",
		Location:           "Paris",
	}

	res, err := Score(c, r)
	require.NoError(t, err)
	// 0 + 6 + 2 - 15 is below zero
	assert.Equal(t, 0, res.MatchScore)
	assert.Equal(t, LocationPenalty+ContractPenalty, res.Details.Penalty)
}

func TestScore_Deterministic(t *testing.T) {
	c, r := experiencedCandidate(), seniorBackend()
	r.RequiredSkills = append(r.RequiredSkills, "Terraform")

	first, err := Score(c, r)
	require.NoError(t, err)
	second, err := Score(c, r)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScore_RangeInvariant(t *testing.T) {
	candidates := []*CandidateProfile{
		{},
		experiencedCandidate(),
		{Skills: []Skill{{Name: "Go"}}, Experiences: []Experience{{DurationMonths: -40}}},
		{Education: []Education{{Level: "unknown"}}, Location: "Lyon"},
	}
	requirements := []*JobRequirement{
		{},
		seniorBackend(),
		{RequiredSkills: []string{"", "  "}, RequiredExperience: "12 years"},
		{RequiredEducation: "doctorate", Location: "Marseille", ContractType: "freelance"},
	}

	for _, c := range candidates {
		for _, r := range requirements {
			res, err := Score(c, r)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, res.MatchScore, 0)
			assert.LessOrEqual(t, res.MatchScore, MaxScore)
			for _, sub := range []float64{res.SkillsMatch, res.ExperienceMatch, res.EducationMatch} {
				assert.GreaterOrEqual(t, sub, 0.0)
				assert.LessOrEqual(t, sub, 100.0)
			}
		}
	}
}

func TestScore_AddingRequiredSkillNeverDecreases(t *testing.T) {
	r := &JobRequirement{RequiredSkills: []string{"Go", "Docker", "gRPC", "Redis"}}
	c := &CandidateProfile{}

	prev, err := Score(c, r)
	require.NoError(t, err)
	for _, skill := range r.RequiredSkills {
		c.Skills = append(c.Skills, Skill{Name: skill})
		next, err := Score(c, r)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, next.SkillsMatch, prev.SkillsMatch)
		assert.GreaterOrEqual(t, next.MatchScore, prev.MatchScore)
		prev = next
	}
	assert.Equal(t, 100.0, prev.SkillsMatch)
}

func TestScore_TestResultsAndCredentialsInDetails(t *testing.T) {
	c := &CandidateProfile{
		Certifications: []string{"AWS"},
		Badges:         []string{"Mentor"},
		TestResults:    []TestResult{{Dimension: "logic", Score: 70}, {Dimension: "verbal", Score: 85}},
	}
	res, err := Score(c, &JobRequirement{RequiredSkills: []string{"aws"}})
	require.NoError(t, err)

	assert.Equal(t, 100.0, res.SkillsMatch)
	assert.Equal(t, 1, res.Details.Certifications)
	assert.Equal(t, 1, res.Details.Badges)
	require.NotNil(t, res.Details.AverageTestScore)
	assert.Equal(t, 77.5, *res.Details.AverageTestScore)
}
