package handler

import (
	"context"
	"errors"

	"github.com/fadilmartias/connect-matching/internal/dto"
	"github.com/fadilmartias/connect-matching/internal/matching"
	"github.com/fadilmartias/connect-matching/internal/model"
	"github.com/fadilmartias/connect-matching/internal/service"
	"github.com/fadilmartias/connect-matching/internal/usecase"
	"github.com/fadilmartias/connect-matching/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MatchingUsecase is what the HTTP layer needs from the matching use case.
type MatchingUsecase interface {
	CreateCandidate(ctx context.Context, c *model.Candidate) error
	UpdateCandidate(ctx context.Context, c *model.Candidate) error
	GetCandidate(ctx context.Context, id string) (*model.Candidate, error)
	AttachCV(ctx context.Context, candidateID, text string) (bool, error)

	CreateOffer(ctx context.Context, offer *model.JobOffer) error
	UpdateOffer(ctx context.Context, offer *model.JobOffer) error
	GetOffer(ctx context.Context, id string) (*model.JobOffer, error)
	ListOffers(ctx context.Context, page, pageSize int) ([]model.JobOffer, int64, error)
	IndexOffer(ctx context.Context, offerID string) error

	ScoreInline(c *matching.CandidateProfile, r *matching.JobRequirement) (*matching.MatchResult, error)
	GetMatch(ctx context.Context, candidateID, offerID string) (*usecase.PairMatch, error)
	RecommendOffers(ctx context.Context, candidateID string, opts usecase.MatchOptions) ([]usecase.RankedOffer, error)
	RankCandidates(ctx context.Context, offerID string, candidateIDs []string, opts usecase.MatchOptions) ([]usecase.RankedCandidate, error)
	ExplainMatch(ctx context.Context, candidateID, offerID string) (*usecase.PairMatch, *service.Explanation, error)
}

// failure maps use case errors onto HTTP status codes.
func failure(c *fiber.Ctx, message string, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, matching.ErrInvalidInput):
		code = fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrExplainerDisabled), errors.Is(err, usecase.ErrEmbedderDisabled):
		code = fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		code = fiber.StatusGatewayTimeout
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
}

type validatable interface {
	Validate() error
}

// bind parses the JSON body into req and validates it. When ok is false the 400 response has
// already been written and err is what the handler should return.
func bind(c *fiber.Ctx, req validatable) (ok bool, err error) {
	if err := c.BodyParser(req); err != nil {
		return false, util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if err := req.Validate(); err != nil {
		formErr := util.NewFormError("validation failed", dto.FieldErrors(err))
		return false, util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: formErr.Message,
			Details: formErr.Errors,
		})
	}
	return true, nil
}

func validUUID(c *fiber.Ctx, params ...string) (bool, error) {
	for _, p := range params {
		if _, err := uuid.Parse(c.Params(p)); err != nil {
			return false, util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: p + " must be a UUID",
			})
		}
	}
	return true, nil
}
