// Command matchctl scores candidate profiles against job requirements from JSON files.
package main

import (
	"fmt"
	"os"

	"github.com/fadilmartias/connect-matching/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	zlog    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "matchctl",
	Short: "Score candidates against job offers",
	Long:  "matchctl runs the Connect matching scorer on profiles and requirements stored as JSON files and prints the results as JSON.",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		l, err := logger.NewCLI(verbose)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		zlog = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
