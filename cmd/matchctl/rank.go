package main

import (
	"fmt"

	"github.com/fadilmartias/connect-matching/internal/matching"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank many offers for one candidate",
	Long:  "Scores every offer in the offers file against the candidate in parallel and prints the successful results sorted by score, best first.",
	RunE:  runRank,
}

var (
	rankCandidate string
	rankOffers    string
	rankMinScore  int
	rankWorkers   int
)

func init() {
	rankCmd.Flags().StringVarP(&rankCandidate, "candidate", "c", "", "Path to a CandidateProfile JSON file (required)")
	rankCmd.Flags().StringVar(&rankOffers, "offers", "", "Path to a JSON array of JobRequirement (required)")
	rankCmd.Flags().IntVar(&rankMinScore, "min-score", 0, "Drop offers scoring below this value")
	rankCmd.Flags().IntVar(&rankWorkers, "workers", 0, "Parallel scorers (0 uses GOMAXPROCS)")

	for _, name := range []string{"candidate", "offers"} {
		if err := rankCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	c, err := loadCandidate(rankCandidate)
	if err != nil {
		return err
	}
	offers, err := loadRequirements(rankOffers)
	if err != nil {
		return err
	}

	pairs := make([]matching.Pair, len(offers))
	for i, r := range offers {
		pairs[i] = matching.Pair{Candidate: c, Requirement: r}
	}

	outcomes := matching.ScoreAll(cmd.Context(), pairs, rankWorkers)
	for _, o := range outcomes {
		if o.Err != nil {
			zlog.Warn("offer skipped", zap.String("offer_id", o.OfferID), zap.Error(o.Err))
		}
	}

	ranked := matching.Matched(matching.Rank(outcomes), rankMinScore)
	zlog.Debug("ranking done", zap.Int("offers", len(offers)), zap.Int("kept", len(ranked)))
	return writeJSON(cmd.OutOrStdout(), ranked)
}
