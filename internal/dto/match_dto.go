package dto

import (
	"github.com/fadilmartias/connect-matching/internal/matching"
	"github.com/fadilmartias/connect-matching/internal/model"
	"github.com/google/uuid"
)

// InlineMatchRequest scores a profile against a requirement without storing either.
type InlineMatchRequest struct {
	Candidate   ProfilePayload     `json:"candidate"`
	Requirement RequirementPayload `json:"requirement"`
}

func (r *InlineMatchRequest) Validate() error {
	return validate.Struct(r)
}

func (r *InlineMatchRequest) Profile() *matching.CandidateProfile {
	c := &model.Candidate{}
	r.Candidate.apply(c)
	return c.ToProfile()
}

func (r *InlineMatchRequest) JobRequirement() *matching.JobRequirement {
	o := (&OfferRequest{RequirementPayload: r.Requirement}).ToModel()
	return o.ToRequirement()
}

type OfferSummary struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Location      string    `json:"location,omitempty"`
	ContractType  string    `json:"contract_type,omitempty"`
	RemoteAllowed bool      `json:"remote_allowed"`
}

type CandidateSummary struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Location string    `json:"location,omitempty"`
}

type MatchResponse struct {
	Candidate CandidateSummary      `json:"candidate"`
	Offer     OfferSummary          `json:"offer"`
	Cached    bool                  `json:"cached"`
	Result    *matching.MatchResult `json:"result"`
}

type OfferMatchResponse struct {
	Offer  OfferSummary          `json:"offer"`
	Result *matching.MatchResult `json:"result"`
}

type CandidateMatchResponse struct {
	Candidate CandidateSummary      `json:"candidate"`
	Result    *matching.MatchResult `json:"result"`
}

type ExplanationResponse struct {
	MatchResponse
	Summary   string   `json:"summary"`
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
	Provider  string   `json:"provider"`
}

func NewOfferSummary(o *model.JobOffer) OfferSummary {
	return OfferSummary{
		ID:            o.ID,
		Title:         o.Title,
		Location:      o.Location,
		ContractType:  o.ContractType,
		RemoteAllowed: o.RemoteAllowed,
	}
}

func NewCandidateSummary(c *model.Candidate) CandidateSummary {
	return CandidateSummary{ID: c.ID, FullName: c.FullName, Location: c.Location}
}
