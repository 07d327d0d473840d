package cmd

import (
	"context"
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

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a file into the document store, triggering auto-analysis",
	Long: `Create a document in the local store with the file as its primary
content blob. When the listener is enabled (NL_LISTENER_ENABLED=true or
--listen), creation triggers the configured processing chain: the blob is
analyzed with the default provider and the result is stored as the
document's processing marker.

Documents whose type or facets match the configured exclusion lists are
skipped, as are documents whose content digest matches an existing marker.`,
	Example: `  # Ingest and auto-analyze a text file
  nltools ingest notes.txt --listen

  # Ingest with a document type and facets
  nltools ingest contract.pdf --type Contract --facet Legal --listen`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().String("type", "File", "Document type")
	ingestCmd.Flags().StringSlice("facet", nil, "Facet to set on the document (repeatable)")
	ingestCmd.Flags().Bool("listen", false, "Enable the listener regardless of NL_LISTENER_ENABLED")
	ingestCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
}

func runIngest(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("ingest")

	docType, _ := cmd.Flags().GetString("type")
	facets, _ := cmd.Flags().GetStringSlice("facet")
	forceListen, _ := cmd.Flags().GetBool("listen")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	filePath := args[0]
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(filePath))
	if mimeType == "" {
		mimeType = "text/plain"
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeoutSecs)*time.Second)
	defer cancel()

	service, cfg, err := newAnalysisService(ctx, log)
	if err != nil {
		return err
	}

	bus := docs.NewBus()
	store, err := docs.Open(ctx, cfg.StorePath, bus)
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	defer store.Close()

	chains := language.NewChainRegistry()
	chains.Register(language.DefaultChainName, language.DefaultProcessingChain(service, store))

	listener := language.NewListener(eligibilityConfig(cfg), chains)
	listener.Attach(bus)
	if forceListen {
		listener.SetEnabled(true)
	}

	handled := false
	bus.Subscribe(docs.EventDocumentHandled, func(ctx context.Context, ev docs.Event) {
		handled = true
	})

	doc := docs.NewDocument(docType, facets...)
	doc.AttachBlob(docs.PrimaryBlobField, docs.NewBlob(filepath.Base(filePath), mimeType, data))

	if err := store.Create(ctx, doc); err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	log.Info().
		Str("doc_id", doc.ID).
		Str("type", docType).
		Bool("analyzed", handled).
		Msg("Document ingested")

	fmt.Printf("Document %s created", doc.ID)
	if handled {
		fmt.Printf(" and analyzed:\n%s\n", doc.Marker().ResultJSON)
	} else {
		fmt.Println(" (not analyzed)")
	}
	return nil
}
