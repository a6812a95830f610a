package handler

import (
	"time"

	"github.com/fadilmartias/connect-matching/internal/dto"
	"github.com/fadilmartias/connect-matching/internal/matching"
	"github.com/fadilmartias/connect-matching/internal/middleware"
	"github.com/fadilmartias/connect-matching/internal/usecase"
	"github.com/fadilmartias/connect-matching/internal/util"
	"github.com/gofiber/fiber/v2"
)

type MatchHandler struct {
	uc              MatchingUsecase
	defaultMinScore int
}

// NewMatchHandler builds the matching endpoints. defaultMinScore applies to recommendation
// listings that do not send min_score.
func NewMatchHandler(uc MatchingUsecase, defaultMinScore int) *MatchHandler {
	return &MatchHandler{uc: uc, defaultMinScore: defaultMinScore}
}

func (h *MatchHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/candidates/:id/matches", h.Recommend)
	router.Get("/candidates/:id/matches/:offerId", h.Get)
	router.Get("/candidates/:id/matches/:offerId/explanation", middleware.RateLimiter(5, time.Minute), h.Explain)
	router.Post("/offers/:id/candidates", h.RankCandidates)
	router.Post("/match", h.ScoreInline)
}

func (h *MatchHandler) Get(c *fiber.Ctx) error {
	if ok, err := validUUID(c, "id", "offerId"); !ok {
		return err
	}

	m, err := h.uc.GetMatch(c.UserContext(), c.Params("id"), c.Params("offerId"))
	if err != nil {
		return failure(c, "failed to score match", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get match",
		Data:    matchResponse(m),
	})
}

func (h *MatchHandler) Recommend(c *fiber.Ctx) error {
	if ok, err := validUUID(c, "id"); !ok {
		return err
	}

	opts := usecase.MatchOptions{
		MinScore: clampScore(c.QueryInt("min_score", h.defaultMinScore)),
		Limit:    c.QueryInt("limit", usecase.DefaultLimit),
		Semantic: c.QueryBool("semantic", false),
	}
	ranked, err := h.uc.RecommendOffers(c.UserContext(), c.Params("id"), opts)
	if err != nil {
		return failure(c, "failed to recommend offers", err)
	}

	data := make([]dto.OfferMatchResponse, 0, len(ranked))
	for i := range ranked {
		data = append(data, dto.OfferMatchResponse{
			Offer:  dto.NewOfferSummary(&ranked[i].Offer),
			Result: ranked[i].Result,
		})
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success recommend offers",
		Data:    data,
		Meta:    fiber.Map{"min_score": opts.MinScore, "semantic": opts.Semantic, "count": len(data)},
	})
}

func (h *MatchHandler) RankCandidates(c *fiber.Ctx) error {
	if ok, err := validUUID(c, "id"); !ok {
		return err
	}
	var req dto.RankCandidatesRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	opts := usecase.MatchOptions{MinScore: req.MinScore, Limit: req.Limit}
	ranked, err := h.uc.RankCandidates(c.UserContext(), c.Params("id"), req.CandidateIDs, opts)
	if err != nil {
		return failure(c, "failed to rank candidates", err)
	}

	data := make([]dto.CandidateMatchResponse, 0, len(ranked))
	for i := range ranked {
		data = append(data, dto.CandidateMatchResponse{
			Candidate: dto.NewCandidateSummary(&ranked[i].Candidate),
			Result:    ranked[i].Result,
		})
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success rank candidates",
		Data:    data,
		Meta:    fiber.Map{"requested": len(req.CandidateIDs), "count": len(data)},
	})
}

func (h *MatchHandler) Explain(c *fiber.Ctx) error {
	if ok, err := validUUID(c, "id", "offerId"); !ok {
		return err
	}

	m, exp, err := h.uc.ExplainMatch(c.UserContext(), c.Params("id"), c.Params("offerId"))
	if err != nil {
		return failure(c, "failed to explain match", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success explain match",
		Data: dto.ExplanationResponse{
			MatchResponse: matchResponse(m),
			Summary:       exp.Summary,
			Strengths:     exp.Strengths,
			Gaps:          exp.Gaps,
			Provider:      exp.Provider,
		},
	})
}

// ScoreInline scores a candidate profile against a requirement sent in the request body.
func (h *MatchHandler) ScoreInline(c *fiber.Ctx) error {
	var req dto.InlineMatchRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	res, err := h.uc.ScoreInline(req.Profile(), req.JobRequirement())
	if err != nil {
		return failure(c, "failed to score match", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success score match",
		Data:    res,
	})
}

func matchResponse(m *usecase.PairMatch) dto.MatchResponse {
	return dto.MatchResponse{
		Candidate: dto.NewCandidateSummary(m.Candidate),
		Offer:     dto.NewOfferSummary(m.Offer),
		Cached:    m.Cached,
		Result:    m.Result,
	}
}

func clampScore(s int) int {
	return max(0, min(s, matching.MaxScore))
}
