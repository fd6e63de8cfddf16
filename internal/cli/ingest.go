package cli

import (
	"fmt"
	"log"

	"github.com/VanderY/proctoring-bot/internal/config"
	"github.com/VanderY/proctoring-bot/internal/ingest"
	"github.com/spf13/cobra"
)

// NewIngestCmd loads a quiz spreadsheet by link and caches its question set.
func NewIngestCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <sheet-url>",
		Short: "Ingest a quiz spreadsheet into the question store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Sheets.CredentialsFile == "" {
				return fmt.Errorf("sheets credentials not configured")
			}

			opener, err := buildOpener(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			saver, err := buildTestStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			ingestor := ingest.New(opener, saver, cfg.Sheets.QuizSheet, cfg.Sheets.ScanLimit)
			test, err := ingestor.IngestByLink(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			log.Printf("ingested test %q with %d questions", test.Name, len(test.Questions))
			return nil
		},
	}
}
