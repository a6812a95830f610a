package main

import (
	"fmt"

	"github.com/fadilmartias/connect-matching/internal/matching"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one candidate against one offer",
	RunE:  runScore,
}

var (
	scoreCandidate string
	scoreOffer     string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreCandidate, "candidate", "c", "", "Path to a CandidateProfile JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreOffer, "offer", "o", "", "Path to a JobRequirement JSON file (required)")

	for _, name := range []string{"candidate", "offer"} {
		if err := scoreCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	c, err := loadCandidate(scoreCandidate)
	if err != nil {
		return err
	}
	r, err := loadRequirement(scoreOffer)
	if err != nil {
		return err
	}

	res, err := matching.Score(c, r)
	if err != nil {
		return fmt.Errorf("failed to score: %w", err)
	}
	return writeJSON(cmd.OutOrStdout(), res)
}
