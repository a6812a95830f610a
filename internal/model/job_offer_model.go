package model

import (
	"time"

	"github.com/fadilmartias/connect-matching/internal/matching"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

const (
	OfferStatusDraft     = "draft"
	OfferStatusPublished = "published"
	OfferStatusClosed    = "closed"
)

type JobOffer struct {
	ID                 uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganizationID     uuid.UUID        `gorm:"type:uuid;index" json:"organization_id"`
	Title              string           `gorm:"type:varchar(255)" json:"title"`
	Description        string           `gorm:"type:text" json:"description"`
	RequiredSkills     []string         `gorm:"type:jsonb;serializer:json" json:"required_skills"`
	RequiredExperience string           `gorm:"type:varchar(80)" json:"required_experience,omitempty"`
	RequiredEducation  string           `gorm:"type:varchar(80)" json:"required_education,omitempty"`
	ContractType       string           `gorm:"type:varchar(80)" json:"contract_type,omitempty"`
	Location           string           `gorm:"type:varchar(255)" json:"location,omitempty"`
	RemoteAllowed      bool             `json:"remote_allowed"`
	Status             string           `gorm:"type:varchar(20);index;default:draft" json:"status"` // draft, published, closed
	Embedding          *pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func (j *JobOffer) TableName() string {
	return "job_offers"
}

func (j *JobOffer) Version() int64 {
	return j.UpdatedAt.UnixNano()
}

// ToRequirement copies the offer's hiring criteria into the scorer's input shape.
func (j *JobOffer) ToRequirement() *matching.JobRequirement {
	return &matching.JobRequirement{
		ID:                 j.ID.String(),
		RequiredSkills:     append([]string(nil), j.RequiredSkills...),
		RequiredExperience: j.RequiredExperience,
		RequiredEducation:  j.RequiredEducation,
		ContractType:       j.ContractType,
		Location:           j.Location,
		RemoteAllowed:      j.RemoteAllowed,
	}
}

// EmbeddingText is the text embedded for semantic offer search.
func (j *JobOffer) EmbeddingText() string {
	text := j.Title + "\n" + j.Description
	for _, s := range j.RequiredSkills {
		text += "\n" + s
	}
	return text
}
