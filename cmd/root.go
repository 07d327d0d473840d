package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"nltools/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "nltools",
	Short: "nltools - natural language analysis for stored documents",
	Long: `nltools sends document text to a pluggable natural language provider
(default: Google Cloud Natural Language API) and returns the normalized
result: detected language, sentiment, entities, sentences and syntactic
tokens.

Providers are configured by name; documents ingested into the local store
are auto-analyzed by a listener gated by facet/type exclusion rules and a
content digest check.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("nltools executed")

		fmt.Println("Welcome to nltools!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
