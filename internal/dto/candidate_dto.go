package dto

import (
	"github.com/fadilmartias/connect-matching/internal/model"
	"github.com/google/uuid"
)

type SkillPayload struct {
	Name     string `json:"name" validate:"required,max=120"`
	Category string `json:"category" validate:"max=120"`
	Level    int    `json:"level" validate:"gte=0,lte=5"`
}

type ExperiencePayload struct {
	Title          string `json:"title" validate:"required,max=255"`
	Company        string `json:"company" validate:"max=255"`
	DurationMonths int    `json:"duration_months" validate:"gte=0,lte=720"`
	Location       string `json:"location" validate:"max=255"`
}

type EducationPayload struct {
	Level  string `json:"level" validate:"required,max=80"`
	Field  string `json:"field" validate:"max=255"`
	School string `json:"school" validate:"max=255"`
}

type TestResultPayload struct {
	Dimension string  `json:"dimension" validate:"required,max=120"`
	Score     float64 `json:"score" validate:"gte=0,lte=100"`
}

// ProfilePayload is everything the scorer reads about a candidate.
type ProfilePayload struct {
	Location            string              `json:"location" validate:"max=255"`
	ContractPreferences []string            `json:"contract_preferences" validate:"dive,max=80"`
	Skills              []SkillPayload      `json:"skills" validate:"dive"`
	Experiences         []ExperiencePayload `json:"experiences" validate:"dive"`
	Educations          []EducationPayload  `json:"educations" validate:"dive"`
	Certifications      []string            `json:"certifications" validate:"dive,required,max=255"`
	Badges              []string            `json:"badges" validate:"dive,required,max=255"`
	TestResults         []TestResultPayload `json:"test_results" validate:"dive"`
}

type CandidateRequest struct {
	UserID   *uuid.UUID `json:"user_id"`
	FullName string     `json:"full_name" validate:"required,max=255"`
	Email    string     `json:"email" validate:"omitempty,email"`
	ProfilePayload
}

func (r *CandidateRequest) Validate() error {
	return validate.Struct(r)
}

// ToModel builds a candidate row with fresh child rows.
func (r *CandidateRequest) ToModel() *model.Candidate {
	c := &model.Candidate{
		UserID:   r.UserID,
		FullName: r.FullName,
		Email:    r.Email,
	}
	r.ProfilePayload.apply(c)
	return c
}

func (p *ProfilePayload) apply(c *model.Candidate) {
	c.Location = p.Location
	c.ContractPreferences = append([]string{}, p.ContractPreferences...)
	for _, s := range p.Skills {
		c.Skills = append(c.Skills, model.CandidateSkill{Name: s.Name, Category: s.Category, Level: s.Level})
	}
	for _, e := range p.Experiences {
		c.Experiences = append(c.Experiences, model.CandidateExperience{
			Title:          e.Title,
			Company:        e.Company,
			DurationMonths: e.DurationMonths,
			Location:       e.Location,
		})
	}
	for _, e := range p.Educations {
		c.Educations = append(c.Educations, model.CandidateEducation{Level: e.Level, Field: e.Field, School: e.School})
	}
	for _, name := range p.Certifications {
		c.Certifications = append(c.Certifications, model.CandidateCertification{Name: name})
	}
	for _, name := range p.Badges {
		c.Badges = append(c.Badges, model.CandidateBadge{Name: name})
	}
	for _, t := range p.TestResults {
		c.TestResults = append(c.TestResults, model.CandidateTestResult{Dimension: t.Dimension, Score: t.Score})
	}
}

type CVResponse struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	Characters  int       `json:"characters"`
	Embedded    bool      `json:"embedded"`
}
