package model

import (
	"time"

	"github.com/fadilmartias/connect-matching/internal/matching"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Candidate struct {
	ID                  uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID              *uuid.UUID       `gorm:"type:uuid;index" json:"user_id,omitempty"`
	FullName            string           `gorm:"type:varchar(255)" json:"full_name"`
	Email               string           `gorm:"type:varchar(255);index" json:"email"`
	Location            string           `gorm:"type:varchar(255)" json:"location"`
	ContractPreferences []string         `gorm:"type:jsonb;serializer:json" json:"contract_preferences"`
	CVText              string           `gorm:"type:text" json:"-"`
	Embedding           *pgvector.Vector `gorm:"type:vector(3072)" json:"-"`

	Skills         []CandidateSkill         `gorm:"constraint:OnDelete:CASCADE" json:"skills"`
	Experiences    []CandidateExperience    `gorm:"constraint:OnDelete:CASCADE" json:"experiences"`
	Educations     []CandidateEducation     `gorm:"constraint:OnDelete:CASCADE" json:"educations"`
	Certifications []CandidateCertification `gorm:"constraint:OnDelete:CASCADE" json:"certifications"`
	Badges         []CandidateBadge         `gorm:"constraint:OnDelete:CASCADE" json:"badges"`
	TestResults    []CandidateTestResult    `gorm:"constraint:OnDelete:CASCADE" json:"test_results"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CandidateSkill struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	CandidateID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Name        string    `gorm:"type:varchar(120)" json:"name"`
	Category    string    `gorm:"type:varchar(120)" json:"category,omitempty"`
	Level       int       `json:"level"`
}

type CandidateExperience struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	CandidateID    uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Title          string    `gorm:"type:varchar(255)" json:"title"`
	Company        string    `gorm:"type:varchar(255)" json:"company,omitempty"`
	DurationMonths int       `json:"duration_months"`
	Location       string    `gorm:"type:varchar(255)" json:"location,omitempty"`
}

type CandidateEducation struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	CandidateID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Level       string    `gorm:"type:varchar(80)" json:"level"`
	Field       string    `gorm:"type:varchar(255)" json:"field,omitempty"`
	School      string    `gorm:"type:varchar(255)" json:"school,omitempty"`
}

type CandidateCertification struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	CandidateID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Name        string    `gorm:"type:varchar(255)" json:"name"`
	Issuer      string    `gorm:"type:varchar(255)" json:"issuer,omitempty"`
}

type CandidateBadge struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	CandidateID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Name        string    `gorm:"type:varchar(255)" json:"name"`
}

type CandidateTestResult struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	CandidateID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Dimension   string    `gorm:"type:varchar(120)" json:"dimension"`
	Score       float64   `gorm:"type:float" json:"score"`
}

func (c *Candidate) TableName() string {
	return "candidates"
}

// Version changes every time the row is saved.
func (c *Candidate) Version() int64 {
	return c.UpdatedAt.UnixNano()
}

// ToProfile copies the candidate into the scorer's input shape.
func (c *Candidate) ToProfile() *matching.CandidateProfile {
	p := &matching.CandidateProfile{
		ID:                  c.ID.String(),
		Location:            c.Location,
		ContractPreferences: append([]string(nil), c.ContractPreferences...),
		Skills:              make([]matching.Skill, 0, len(c.Skills)),
		Experiences:         make([]matching.Experience, 0, len(c.Experiences)),
		Education:           make([]matching.Education, 0, len(c.Educations)),
		Certifications:      make([]string, 0, len(c.Certifications)),
		Badges:              make([]string, 0, len(c.Badges)),
		TestResults:         make([]matching.TestResult, 0, len(c.TestResults)),
	}
	for _, s := range c.Skills {
		p.Skills = append(p.Skills, matching.Skill{Name: s.Name, Category: s.Category, Level: s.Level})
	}
	for _, e := range c.Experiences {
		p.Experiences = append(p.Experiences, matching.Experience{Title: e.Title, DurationMonths: e.DurationMonths, Location: e.Location})
	}
	for _, e := range c.Educations {
		p.Education = append(p.Education, matching.Education{Level: e.Level, Field: e.Field})
	}
	for _, cert := range c.Certifications {
		p.Certifications = append(p.Certifications, cert.Name)
	}
	for _, b := range c.Badges {
		p.Badges = append(p.Badges, b.Name)
	}
	for _, t := range c.TestResults {
		p.TestResults = append(p.TestResults, matching.TestResult{Dimension: t.Dimension, Score: t.Score})
	}
	return p
}
