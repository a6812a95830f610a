// Package matching computes candidate/job-offer compatibility scores.
//
// Scoring is a pure, deterministic computation over copies of its inputs: it performs no I/O,
// holds no shared state and may be called concurrently without synchronization.
package matching

import "errors"

// ErrInvalidInput is returned when a candidate or a requirement is absent.
var ErrInvalidInput = errors.New("matching: invalid input")

type Skill struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Level    int    `json:"level,omitempty"` // 1-5, 0 when unknown
}

type Experience struct {
	Title          string `json:"title"`
	DurationMonths int    `json:"duration_months"`
	Location       string `json:"location,omitempty"`
}

type Education struct {
	Level string `json:"level"`
	Field string `json:"field,omitempty"`
}

type TestResult struct {
	Dimension string  `json:"dimension"`
	Score     float64 `json:"score"`
}

// CandidateProfile is the aggregated data for one candidate. Every slice may be empty.
type CandidateProfile struct {
	ID                  string       `json:"id"`
	Location            string       `json:"location,omitempty"`
	ContractPreferences []string     `json:"contract_preferences,omitempty"`
	Skills              []Skill      `json:"skills"`
	Experiences         []Experience `json:"experiences"`
	Education           []Education  `json:"education"`
	Certifications      []string     `json:"certifications"`
	Badges              []string     `json:"badges"`
	TestResults         []TestResult `json:"test_results"`
}

// JobRequirement holds the hiring criteria of a job offer.
type JobRequirement struct {
	ID                 string   `json:"id"`
	RequiredSkills     []string `json:"required_skills"`
	RequiredExperience string   `json:"required_experience,omitempty"`
	RequiredEducation  string   `json:"required_education,omitempty"`
	ContractType       string   `json:"contract_type,omitempty"`
	Location           string   `json:"location,omitempty"`
	RemoteAllowed      bool     `json:"remote_allowed"`
}

// MatchResult is the outcome of one scoring call. Sub-scores are percentages in [0, 100].
type MatchResult struct {
	MatchScore      int     `json:"match_score"`
	SkillsMatch     float64 `json:"skills_match"`
	ExperienceMatch float64 `json:"experience_match"`
	EducationMatch  float64 `json:"education_match"`
	Details         Details `json:"details"`
}

// Details explains how each sub-score was obtained.
type Details struct {
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`

	CandidateYears float64 `json:"candidate_years"`
	RequiredYears  float64 `json:"required_years"`

	CandidateEducation string `json:"candidate_education,omitempty"`
	RequiredEducation  string `json:"required_education,omitempty"`

	LocationCompatible bool `json:"location_compatible"`
	ContractCompatible bool `json:"contract_compatible"`
	Penalty            int  `json:"penalty"`

	Certifications    int      `json:"certifications"`
	Badges            int      `json:"badges"`
	AverageTestScore  *float64 `json:"average_test_score,omitempty"`
	NeutralDimensions []string `json:"neutral_dimensions,omitempty"`
}
