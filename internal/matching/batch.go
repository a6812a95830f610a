package matching

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Pair is one (candidate, requirement) combination to score.
type Pair struct {
	Candidate   *CandidateProfile
	Requirement *JobRequirement
}

// Outcome is the scoring result of one pair. Err is set when the pair could not be scored, in
// which case Result is nil and the pair counts as a zero score.
type Outcome struct {
	CandidateID string       `json:"candidate_id"`
	OfferID     string       `json:"offer_id"`
	Result      *MatchResult `json:"result,omitempty"`
	Err         error        `json:"-"`
}

// Score is the match score of the outcome, 0 for failed pairs.
func (o Outcome) Score() int {
	if o.Err != nil || o.Result == nil {
		return 0
	}
	return o.Result.MatchScore
}

// ScoreAll scores every pair concurrently with at most workers goroutines (GOMAXPROCS when
// workers <= 0). Failures are isolated per pair: a nil input or a panic inside the scorer marks
// only that outcome as failed. Outcomes are returned in input order.
func ScoreAll(ctx context.Context, pairs []Pair, workers int) []Outcome {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]Outcome, len(pairs))
	var g errgroup.Group
	g.SetLimit(workers)

	for i, p := range pairs {
		outcomes[i] = Outcome{
			CandidateID: candidateID(p.Candidate),
			OfferID:     requirementID(p.Requirement),
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			outcomes[i].Result, outcomes[i].Err = safeScore(p)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func safeScore(p Pair) (res *MatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: scorer panic: %v", ErrInvalidInput, r)
		}
	}()
	return Score(p.Candidate, p.Requirement)
}

// Rank sorts outcomes by score, descending. Failed pairs sink to the end; ties are broken by
// offer then candidate ID so the order is deterministic. The input slice is not modified.
func Rank(outcomes []Outcome) []Outcome {
	ranked := slices.Clone(outcomes)
	slices.SortStableFunc(ranked, func(a, b Outcome) int {
		if af, bf := a.Err != nil, b.Err != nil; af != bf {
			if af {
				return 1
			}
			return -1
		}
		if c := cmp.Compare(b.Score(), a.Score()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.OfferID, b.OfferID); c != 0 {
			return c
		}
		return cmp.Compare(a.CandidateID, b.CandidateID)
	})
	return ranked
}

// Matched keeps the successful outcomes scoring at least minScore, preserving order.
func Matched(outcomes []Outcome, minScore int) []Outcome {
	kept := make([]Outcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err == nil && o.Result != nil && o.Score() >= minScore {
			kept = append(kept, o)
		}
	}
	return kept
}

func candidateID(c *CandidateProfile) string {
	if c == nil {
		return ""
	}
	return c.ID
}

func requirementID(r *JobRequirement) string {
	if r == nil {
		return ""
	}
	return r.ID
}
