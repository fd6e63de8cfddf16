package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/VanderY/proctoring-bot/internal/domain"
	"github.com/VanderY/proctoring-bot/internal/sheets"
)

// DefaultQuizSheet is the sheet title questions are authored on.
const DefaultQuizSheet = "Тест"

// Saver persists a normalized question set under its test name.
type Saver interface {
	Save(ctx context.Context, test domain.TestDefinition) error
}

// Ingestor reads quiz spreadsheets, normalizes them and stores the
// result through the question store.
type Ingestor struct {
	opener    sheets.Opener
	saver     Saver
	quizSheet string
	scanLimit int
}

func New(opener sheets.Opener, saver Saver, quizSheet string, scanLimit int) *Ingestor {
	if quizSheet == "" {
		quizSheet = DefaultQuizSheet
	}
	if scanLimit <= 0 {
		scanLimit = sheets.DefaultScanLimit
	}
	return &Ingestor{opener: opener, saver: saver, quizSheet: quizSheet, scanLimit: scanLimit}
}

// IngestByLink extracts the spreadsheet ID from a sheet URL and ingests it.
func (ing *Ingestor) IngestByLink(ctx context.Context, link string) (domain.TestDefinition, error) {
	id, err := SpreadsheetIDFromLink(link)
	if err != nil {
		return domain.TestDefinition{}, fmt.Errorf("%w: %v", domain.ErrIngestionFailed, err)
	}
	return ing.Ingest(ctx, id)
}

// Ingest reads the quiz sheet of a spreadsheet, normalizes it and saves
// the test under the spreadsheet's title.
func (ing *Ingestor) Ingest(ctx context.Context, spreadsheetID string) (domain.TestDefinition, error) {
	client := ing.opener.Open(spreadsheetID)

	title, err := client.Title(ctx)
	if err != nil {
		return domain.TestDefinition{}, fmt.Errorf("%w: read title: %v", domain.ErrIngestionFailed, err)
	}

	grid, err := client.ReadRange(ctx, fmt.Sprintf("%s!A1:Z%d", ing.quizSheet, ing.scanLimit))
	if err != nil {
		return domain.TestDefinition{}, fmt.Errorf("%w: read grid: %v", domain.ErrIngestionFailed, err)
	}

	test, err := Normalize(title, grid)
	if err != nil {
		return domain.TestDefinition{}, err
	}
	if err := ing.saver.Save(ctx, test); err != nil {
		return domain.TestDefinition{}, fmt.Errorf("save test: %w", err)
	}
	return test, nil
}

// SpreadsheetIDFromLink pulls the document ID out of a Google Sheets
// URL: the path segment following "d".
func SpreadsheetIDFromLink(link string) (string, error) {
	parts := strings.Split(link, "/")
	for i, part := range parts {
		if part == "d" && i+1 < len(parts) && parts[i+1] != "" {
			return parts[i+1], nil
		}
	}
	return "", errors.New("no spreadsheet id in link")
}
