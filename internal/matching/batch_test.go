package matching

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offersFor(skills ...[]string) []*JobRequirement {
	offers := make([]*JobRequirement, len(skills))
	for i, s := range skills {
		offers[i] = &JobRequirement{ID: fmt.Sprintf("offer_%d", i), RequiredSkills: s}
	}
	return offers
}

func TestScoreAll_IsolatesFailures(t *testing.T) {
	c := &CandidateProfile{ID: "cand", Skills: []Skill{{Name: "Go"}}}
	offers := offersFor([]string{"Go"}, []string{"Go", "Rust"})

	pairs := []Pair{
		{Candidate: c, Requirement: offers[0]},
		{Candidate: c, Requirement: nil},
		{Candidate: c, Requirement: offers[1]},
	}

	outcomes := ScoreAll(context.Background(), pairs, 2)
	require.Len(t, outcomes, 3)

	assert.NoError(t, outcomes[0].Err)
	assert.Equal(t, 100, outcomes[0].Score())

	assert.True(t, errors.Is(outcomes[1].Err, ErrInvalidInput))
	assert.Nil(t, outcomes[1].Result)
	assert.Equal(t, 0, outcomes[1].Score())
	assert.Equal(t, "cand", outcomes[1].CandidateID)

	assert.NoError(t, outcomes[2].Err)
	assert.Equal(t, 75, outcomes[2].Score())
	assert.Equal(t, "offer_1", outcomes[2].OfferID)
}

func TestScoreAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := ScoreAll(ctx, []Pair{{Candidate: &CandidateProfile{}, Requirement: &JobRequirement{}}}, 1)

	require.Len(t, outcomes, 1)
	assert.ErrorIs(t, outcomes[0].Err, context.Canceled)
}

func TestScoreAll_ManyPairsMatchSequential(t *testing.T) {
	c := &CandidateProfile{ID: "cand", Skills: []Skill{{Name: "Go"}, {Name: "SQL"}}}
	var pairs []Pair
	for i := 0; i < 200; i++ {
		skills := []string{"Go"}
		if i%2 == 0 {
			skills = append(skills, "Python")
		}
		if i%3 == 0 {
			skills = append(skills, "SQL")
		}
		pairs = append(pairs, Pair{Candidate: c, Requirement: &JobRequirement{ID: fmt.Sprint(i), RequiredSkills: skills}})
	}

	outcomes := ScoreAll(context.Background(), pairs, 0)
	for i, o := range outcomes {
		want, err := Score(pairs[i].Candidate, pairs[i].Requirement)
		require.NoError(t, err)
		assert.Equal(t, want, o.Result)
	}
}

func TestRank_SortsDescendingWithFailuresLast(t *testing.T) {
	outcomes := []Outcome{
		{OfferID: "b", Result: &MatchResult{MatchScore: 40}},
		{OfferID: "x", Err: ErrInvalidInput},
		{OfferID: "c", Result: &MatchResult{MatchScore: 90}},
		{OfferID: "a", Result: &MatchResult{MatchScore: 40}},
		{OfferID: "d", Result: &MatchResult{MatchScore: 0}},
	}

	ranked := Rank(outcomes)

	var ids []string
	for _, o := range ranked {
		ids = append(ids, o.OfferID)
	}
	assert.Equal(t, []string{"c", "a", "b", "d", "x"}, ids)
	assert.Equal(t, "b", outcomes[0].OfferID, "input must stay untouched")
}

func TestMatched_DropsFailuresAndLowScores(t *testing.T) {
	outcomes := []Outcome{
		{OfferID: "a", Result: &MatchResult{MatchScore: 80}},
		{OfferID: "b", Err: ErrInvalidInput},
		{OfferID: "c", Result: &MatchResult{MatchScore: 20}},
		{OfferID: "d", Result: &MatchResult{MatchScore: 50}},
	}

	kept := Matched(outcomes, 50)

	require.Len(t, kept, 2)
	assert.Equal(t, "a", kept[0].OfferID)
	assert.Equal(t, "d", kept[1].OfferID)
}
