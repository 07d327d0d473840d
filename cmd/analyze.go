package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"nltools/internal/docs"
	"nltools/internal/language"
	"nltools/internal/logger"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze text or a file with a natural language provider",
	Long: `Send text to a natural language provider and print the normalized
response as JSON.

Input is either inline text (--text) or a file argument; files are run
through text extraction first (plain text, PDF, DOCX, and images when
OCR credentials are available). Token byte offsets are only reliable for
inline text analyzed with an explicit --encoding.`,
	Example: `  # Sentiment of inline text with the default provider
  nltools analyze --text "What a wonderful day" --features SENTIMENT

  # Entities and syntax from a PDF, explicit provider
  nltools analyze report.pdf --features ENTITIES,SYNTAX --provider google

  # Syntax with reliable offsets
  nltools analyze --text "Hello world" --features SYNTAX --encoding utf-8`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("text", "", "Inline text to analyze (instead of a file)")
	analyzeCmd.Flags().StringP("provider", "p", "", "Provider name (default: the configured default provider)")
	analyzeCmd.Flags().StringSliceP("features", "f", []string{"SENTIMENT"}, "Features to request: SENTIMENT, ENTITIES, SYNTAX")
	analyzeCmd.Flags().StringP("encoding", "e", "", "Text encoding for token offsets: utf-8, utf-16 or utf-32")
	analyzeCmd.Flags().Int("timeout", 60, "Analysis timeout in seconds")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("analyze")

	text, _ := cmd.Flags().GetString("text")
	providerName, _ := cmd.Flags().GetString("provider")
	featureNames, _ := cmd.Flags().GetStringSlice("features")
	encodingName, _ := cmd.Flags().GetString("encoding")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	if text == "" && len(args) == 0 {
		return fmt.Errorf("either --text or a file argument is required")
	}

	features, err := language.ParseFeatures(featureNames)
	if err != nil {
		return err
	}
	encoding, err := language.ParseEncoding(encodingName)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeoutSecs)*time.Second)
	defer cancel()

	service, _, err := newAnalysisService(ctx, log)
	if err != nil {
		return err
	}

	var resp *language.AnalysisResponse
	if text != "" {
		resp, err = service.AnalyzeText(ctx, providerName, text, features, encoding)
	} else {
		filePath := args[0]
		data, readErr := os.ReadFile(filePath)
		if readErr != nil {
			return fmt.Errorf("read input file: %w", readErr)
		}
		mimeType := mime.TypeByExtension(filepath.Ext(filePath))
		if mimeType == "" {
			mimeType = "text/plain"
		}
		blob := docs.NewBlob(filepath.Base(filePath), mimeType, data)
		resp, err = service.AnalyzeBlob(ctx, providerName, blob, features)
	}
	if err != nil {
		log.Error().Err(err).Msg("Analysis failed")
		return err
	}

	output, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
