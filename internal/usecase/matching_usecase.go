package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/fadilmartias/connect-matching/internal/cache"
	"github.com/fadilmartias/connect-matching/internal/matching"
	"github.com/fadilmartias/connect-matching/internal/model"
	"github.com/fadilmartias/connect-matching/internal/service"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrExplainerDisabled = errors.New("match explanations are disabled")
	ErrEmbedderDisabled  = errors.New("embeddings are disabled")
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	listPageSize = 200
)

type CandidateStore interface {
	CreateCandidate(ctx context.Context, c *model.Candidate) error
	UpdateCandidate(ctx context.Context, c *model.Candidate) error
	FindCandidateByID(ctx context.Context, id string) (*model.Candidate, error)
	FindCandidatesByIDs(ctx context.Context, ids []string) ([]model.Candidate, error)
	UpdateCV(ctx context.Context, id string, text string, embedding *pgvector.Vector) error
}

type OfferStore interface {
	CreateOffer(ctx context.Context, offer *model.JobOffer) error
	UpdateOffer(ctx context.Context, offer *model.JobOffer) error
	FindOfferByID(ctx context.Context, id string) (*model.JobOffer, error)
	ListPublishedOffers(ctx context.Context, page, pageSize int) ([]model.JobOffer, int64, error)
	SearchPublishedOffers(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.JobOffer, error)
	UpdateOfferEmbedding(ctx context.Context, id string, embedding pgvector.Vector) error
}

type ResultCache interface {
	Get(ctx context.Context, key string) (*matching.MatchResult, bool, error)
	Set(ctx context.Context, key string, res *matching.MatchResult) error
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// MatchOptions filters batch results. Zero values mean "no threshold", DefaultLimit and a full scan.
type MatchOptions struct {
	MinScore int
	Limit    int
	Semantic bool
}

func (o MatchOptions) limit() int {
	switch {
	case o.Limit <= 0:
		return DefaultLimit
	case o.Limit > MaxLimit:
		return MaxLimit
	}
	return o.Limit
}

type PairMatch struct {
	Candidate *model.Candidate
	Offer     *model.JobOffer
	Result    *matching.MatchResult
	Cached    bool
}

type RankedOffer struct {
	Offer  model.JobOffer
	Result *matching.MatchResult
}

type RankedCandidate struct {
	Candidate model.Candidate
	Result    *matching.MatchResult
}

type MatchingUsecase struct {
	candidates   CandidateStore
	offers       OfferStore
	cache        ResultCache
	explainer    service.Explainer
	embedder     Embedder
	workers      int
	semanticTopK int
	logger       *zap.Logger
}

type Option func(*MatchingUsecase)

// WithCache enables result caching. A nil cache leaves caching off.
func WithCache(c ResultCache) Option {
	return func(uc *MatchingUsecase) { uc.cache = c }
}

func WithExplainer(e service.Explainer) Option {
	return func(uc *MatchingUsecase) { uc.explainer = e }
}

func WithEmbedder(e Embedder) Option {
	return func(uc *MatchingUsecase) { uc.embedder = e }
}

func WithWorkers(n int) Option {
	return func(uc *MatchingUsecase) { uc.workers = n }
}

func WithSemanticTopK(k int) Option {
	return func(uc *MatchingUsecase) { uc.semanticTopK = k }
}

func NewMatchingUsecase(candidates CandidateStore, offers OfferStore, logger *zap.Logger, opts ...Option) *MatchingUsecase {
	uc := &MatchingUsecase{
		candidates:   candidates,
		offers:       offers,
		semanticTopK: 50,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *MatchingUsecase) CreateCandidate(ctx context.Context, c *model.Candidate) error {
	if err := uc.candidates.CreateCandidate(ctx, c); err != nil {
		return fmt.Errorf("create candidate: %w", err)
	}
	return nil
}

// UpdateCandidate replaces the profile of an existing candidate. The stored CV and its embedding
// are kept.
func (uc *MatchingUsecase) UpdateCandidate(ctx context.Context, c *model.Candidate) error {
	if _, err := uc.GetCandidate(ctx, c.ID.String()); err != nil {
		return err
	}
	if err := uc.candidates.UpdateCandidate(ctx, c); err != nil {
		return fmt.Errorf("update candidate %s: %w", c.ID, err)
	}
	return nil
}

func (uc *MatchingUsecase) GetCandidate(ctx context.Context, id string) (*model.Candidate, error) {
	c, err := uc.candidates.FindCandidateByID(ctx, id)
	if err != nil {
		return nil, translate(err, "candidate", id)
	}
	return c, nil
}

func (uc *MatchingUsecase) CreateOffer(ctx context.Context, offer *model.JobOffer) error {
	if offer.Status == "" {
		offer.Status = model.OfferStatusDraft
	}
	if err := uc.offers.CreateOffer(ctx, offer); err != nil {
		return fmt.Errorf("create offer: %w", err)
	}
	return nil
}

// UpdateOffer replaces an offer. The stored embedding survives only while the embedded text
// (title, description, skills) is unchanged; otherwise it is dropped and, with an embedder
// configured, recomputed. A failed recompute leaves the offer unindexed.
func (uc *MatchingUsecase) UpdateOffer(ctx context.Context, offer *model.JobOffer) error {
	existing, err := uc.GetOffer(ctx, offer.ID.String())
	if err != nil {
		return err
	}
	offer.CreatedAt = existing.CreatedAt
	if offer.Status == "" {
		offer.Status = existing.Status
	}
	stale := existing.Embedding != nil && existing.EmbeddingText() != offer.EmbeddingText()
	if stale {
		offer.Embedding = nil
	} else {
		offer.Embedding = existing.Embedding
	}
	if err := uc.offers.UpdateOffer(ctx, offer); err != nil {
		return fmt.Errorf("update offer %s: %w", offer.ID, err)
	}

	if !stale {
		return nil
	}
	id := offer.ID.String()
	if uc.embedder == nil {
		uc.logger.Info("offer text changed, embedding cleared", zap.String("offer_id", id))
		return nil
	}
	if err := uc.IndexOffer(ctx, id); err != nil {
		uc.logger.Warn("re-indexing updated offer failed", zap.String("offer_id", id), zap.Error(err))
	}
	return nil
}

func (uc *MatchingUsecase) GetOffer(ctx context.Context, id string) (*model.JobOffer, error) {
	o, err := uc.offers.FindOfferByID(ctx, id)
	if err != nil {
		return nil, translate(err, "offer", id)
	}
	return o, nil
}

func (uc *MatchingUsecase) ListOffers(ctx context.Context, page, pageSize int) ([]model.JobOffer, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxLimit {
		pageSize = DefaultLimit
	}
	offers, total, err := uc.offers.ListPublishedOffers(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list offers: %w", err)
	}
	return offers, total, nil
}

// ScoreInline scores payloads that are not stored anywhere.
func (uc *MatchingUsecase) ScoreInline(c *matching.CandidateProfile, r *matching.JobRequirement) (*matching.MatchResult, error) {
	return matching.Score(c, r)
}

// GetMatch scores one stored pair, serving it from the cache when both rows are unchanged.
func (uc *MatchingUsecase) GetMatch(ctx context.Context, candidateID, offerID string) (*PairMatch, error) {
	c, err := uc.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	o, err := uc.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	key := cache.MatchKey(candidateID, c.Version(), offerID, o.Version())
	if res, ok := uc.cachedResult(ctx, key); ok {
		return &PairMatch{Candidate: c, Offer: o, Result: res, Cached: true}, nil
	}

	res, err := matching.Score(c.ToProfile(), o.ToRequirement())
	if err != nil {
		return nil, err
	}
	uc.storeResult(ctx, key, res)

	return &PairMatch{Candidate: c, Offer: o, Result: res}, nil
}

// RecommendOffers scores published offers for one candidate and returns the best ones. With
// opts.Semantic and a stored CV embedding only the nearest offers are scored.
func (uc *MatchingUsecase) RecommendOffers(ctx context.Context, candidateID string, opts MatchOptions) ([]RankedOffer, error) {
	c, err := uc.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	offers, err := uc.candidateOffers(ctx, c, opts.Semantic)
	if err != nil {
		return nil, err
	}

	profile := c.ToProfile()
	byID := make(map[string]model.JobOffer, len(offers))
	pairs := make([]matching.Pair, 0, len(offers))
	for _, o := range offers {
		byID[o.ID.String()] = o
		pairs = append(pairs, matching.Pair{Candidate: profile, Requirement: o.ToRequirement()})
	}

	outcomes := uc.scoreAll(ctx, pairs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ranked := matching.Matched(matching.Rank(outcomes), opts.MinScore)
	ranked = ranked[:min(len(ranked), opts.limit())]

	out := make([]RankedOffer, 0, len(ranked))
	for _, o := range ranked {
		out = append(out, RankedOffer{Offer: byID[o.OfferID], Result: o.Result})
	}
	return out, nil
}

// RankCandidates scores the given candidates against one offer. Unknown IDs are skipped.
func (uc *MatchingUsecase) RankCandidates(ctx context.Context, offerID string, candidateIDs []string, opts MatchOptions) ([]RankedCandidate, error) {
	o, err := uc.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.candidates.FindCandidatesByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	if missing := len(uniq(candidateIDs)) - len(candidates); missing > 0 {
		uc.logger.Warn("some candidates were not found", zap.String("offer_id", offerID), zap.Int("missing", missing))
	}

	req := o.ToRequirement()
	byID := make(map[string]model.Candidate, len(candidates))
	pairs := make([]matching.Pair, 0, len(candidates))
	for _, c := range candidates {
		byID[c.ID.String()] = c
		pairs = append(pairs, matching.Pair{Candidate: c.ToProfile(), Requirement: req})
	}

	outcomes := uc.scoreAll(ctx, pairs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ranked := matching.Matched(matching.Rank(outcomes), opts.MinScore)
	ranked = ranked[:min(len(ranked), opts.limit())]

	out := make([]RankedCandidate, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, RankedCandidate{Candidate: byID[r.CandidateID], Result: r.Result})
	}
	return out, nil
}

// ExplainMatch scores a stored pair and asks the configured LLM to explain the result.
func (uc *MatchingUsecase) ExplainMatch(ctx context.Context, candidateID, offerID string) (*PairMatch, *service.Explanation, error) {
	if uc.explainer == nil {
		return nil, nil, ErrExplainerDisabled
	}

	m, err := uc.GetMatch(ctx, candidateID, offerID)
	if err != nil {
		return nil, nil, err
	}

	exp, err := uc.explainer.Explain(ctx, service.ExplainInput{
		CandidateName:    m.Candidate.FullName,
		OfferTitle:       m.Offer.Title,
		OfferDescription: m.Offer.Description,
		Result:           m.Result,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("explain match: %w", err)
	}
	return m, exp, nil
}

// IndexOffer (re)computes the embedding used for semantic offer search.
func (uc *MatchingUsecase) IndexOffer(ctx context.Context, offerID string) error {
	if uc.embedder == nil {
		return ErrEmbedderDisabled
	}
	o, err := uc.GetOffer(ctx, offerID)
	if err != nil {
		return err
	}

	values, err := uc.embedder.GenerateEmbedding(ctx, o.EmbeddingText())
	if err != nil {
		return fmt.Errorf("embed offer %s: %w", offerID, err)
	}
	if err := uc.offers.UpdateOfferEmbedding(ctx, offerID, pgvector.NewVector(values)); err != nil {
		return translate(err, "offer", offerID)
	}

	uc.logger.Info("offer indexed", zap.String("offer_id", offerID), zap.Int("dimensions", len(values)))
	return nil
}

// AttachCV stores extracted CV text on a candidate and embeds it when an embedder is configured.
// Embedding failures are logged and the text is stored without a vector.
func (uc *MatchingUsecase) AttachCV(ctx context.Context, candidateID, text string) (embedded bool, err error) {
	if _, err := uc.GetCandidate(ctx, candidateID); err != nil {
		return false, err
	}

	var vec *pgvector.Vector
	if uc.embedder != nil {
		values, err := uc.embedder.GenerateEmbedding(ctx, text)
		if err != nil {
			uc.logger.Warn("cv embedding failed", zap.String("candidate_id", candidateID), zap.Error(err))
		} else {
			v := pgvector.NewVector(values)
			vec = &v
		}
	}

	if err := uc.candidates.UpdateCV(ctx, candidateID, text, vec); err != nil {
		return false, translate(err, "candidate", candidateID)
	}
	return vec != nil, nil
}

func (uc *MatchingUsecase) candidateOffers(ctx context.Context, c *model.Candidate, semantic bool) ([]model.JobOffer, error) {
	if semantic && c.Embedding != nil {
		offers, err := uc.offers.SearchPublishedOffers(ctx, *c.Embedding, uc.semanticTopK)
		if err != nil {
			return nil, fmt.Errorf("search offers: %w", err)
		}
		return offers, nil
	}
	if semantic {
		uc.logger.Debug("candidate has no cv embedding, scanning all offers", zap.String("candidate_id", c.ID.String()))
	}

	var all []model.JobOffer
	for page := 1; ; page++ {
		offers, total, err := uc.offers.ListPublishedOffers(ctx, page, listPageSize)
		if err != nil {
			return nil, fmt.Errorf("list offers: %w", err)
		}
		all = append(all, offers...)
		if len(offers) == 0 || int64(len(all)) >= total {
			return all, nil
		}
	}
}

func (uc *MatchingUsecase) scoreAll(ctx context.Context, pairs []matching.Pair) []matching.Outcome {
	outcomes := matching.ScoreAll(ctx, pairs, uc.workers)
	for _, o := range outcomes {
		if o.Err != nil && !errors.Is(o.Err, context.Canceled) && !errors.Is(o.Err, context.DeadlineExceeded) {
			uc.logger.Warn("pair skipped",
				zap.String("candidate_id", o.CandidateID),
				zap.String("offer_id", o.OfferID),
				zap.Error(o.Err),
			)
		}
	}
	return outcomes
}

func (uc *MatchingUsecase) cachedResult(ctx context.Context, key string) (*matching.MatchResult, bool) {
	if uc.cache == nil {
		return nil, false
	}
	res, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("match cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return res, ok
}

func (uc *MatchingUsecase) storeResult(ctx context.Context, key string, res *matching.MatchResult) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, key, res); err != nil {
		uc.logger.Warn("match cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func translate(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("load %s %s: %w", what, id, err)
}

func uniq(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
