package dto

import (
	"github.com/fadilmartias/connect-matching/internal/model"
	"github.com/google/uuid"
)

// RequirementPayload is everything the scorer reads about a job offer.
type RequirementPayload struct {
	RequiredSkills     []string `json:"required_skills" validate:"dive,max=120"`
	RequiredExperience string   `json:"required_experience" validate:"max=80"`
	RequiredEducation  string   `json:"required_education" validate:"max=80"`
	ContractType       string   `json:"contract_type" validate:"max=80"`
	Location           string   `json:"location" validate:"max=255"`
	RemoteAllowed      bool     `json:"remote_allowed"`
}

type OfferRequest struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	Title          string    `json:"title" validate:"required,max=255"`
	Description    string    `json:"description"`
	Status         string    `json:"status" validate:"omitempty,oneof=draft published closed"`
	RequirementPayload
}

func (r *OfferRequest) Validate() error {
	return validate.Struct(r)
}

func (r *OfferRequest) ToModel() *model.JobOffer {
	return &model.JobOffer{
		OrganizationID:     r.OrganizationID,
		Title:              r.Title,
		Description:        r.Description,
		Status:             r.Status,
		RequiredSkills:     append([]string{}, r.RequiredSkills...),
		RequiredExperience: r.RequiredExperience,
		RequiredEducation:  r.RequiredEducation,
		ContractType:       r.ContractType,
		Location:           r.Location,
		RemoteAllowed:      r.RemoteAllowed,
	}
}

type RankCandidatesRequest struct {
	CandidateIDs []string `json:"candidate_ids" validate:"required,min=1,max=500,dive,uuid"`
	MinScore     int      `json:"min_score" validate:"gte=0,lte=100"`
	Limit        int      `json:"limit" validate:"gte=0,lte=100"`
}

func (r *RankCandidatesRequest) Validate() error {
	return validate.Struct(r)
}
