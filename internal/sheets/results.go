package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/VanderY/proctoring-bot/internal/domain"
)

// ResultsSuffix names the per-test results sheet: "<testName>_results".
const ResultsSuffix = "_results"

// Verdict labels written into result rows.
const (
	VerdictCorrect   = "correct"
	VerdictIncorrect = "incorrect"
)

// Recorder synchronizes finished session transcripts into a results
// sheet: a header row once per test, then one appended row per attempt.
type Recorder struct {
	table *Table
	now   func() time.Time
}

func NewRecorder(table *Table) *Recorder {
	return NewRecorderWithClock(table, time.Now)
}

// NewRecorderWithClock allows deterministic timestamps in tests.
func NewRecorderWithClock(table *Table, now func() time.Time) *Recorder {
	return &Recorder{table: table, now: now}
}

// Record appends one result row for a finished attempt, creating the
// results sheet and its header first if the test has none yet.
func (r *Recorder) Record(ctx context.Context, testName, student string, transcript []domain.AnswerRecord) error {
	sheetTitle := testName + ResultsSuffix

	titles, err := r.table.SheetTitles(ctx)
	if err != nil {
		return err
	}
	if !contains(titles, sheetTitle) {
		header := make([]string, 0, len(transcript)+3)
		header = append(header, "Student", "Time")
		for _, record := range transcript {
			header = append(header, record.Prompt)
		}
		header = append(header, "Score")
		if err := r.table.CreateSheet(ctx, Sheet{Title: sheetTitle, Columns: header}); err != nil {
			return err
		}
	}

	correct := 0
	row := make([]string, 0, len(transcript)+3)
	row = append(row, student, r.now().Format(time.RFC3339))
	for _, record := range transcript {
		if record.Correct {
			correct++
			row = append(row, VerdictCorrect)
		} else {
			row = append(row, VerdictIncorrect)
		}
	}
	row = append(row, fmt.Sprintf("%d/%d", correct, len(transcript)))

	return r.table.AppendRow(ctx, sheetTitle, row)
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
