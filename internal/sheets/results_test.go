package sheets

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/VanderY/proctoring-bot/internal/domain"
)

func TestRecorderCreatesSheetOnce(t *testing.T) {
	fake := NewFake("Результаты")
	fake.SetSheet("занято", nil)
	table := NewTable(fake, nil, 0)
	when := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	recorder := NewRecorderWithClock(table, func() time.Time { return when })

	transcript := []domain.AnswerRecord{
		{Prompt: "2+2?", Correct: false},
		{Prompt: "3+3?", Correct: true},
	}
	if err := recorder.Record(context.Background(), "Математика", "Alice", transcript); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := recorder.Record(context.Background(), "Математика", "Bob", transcript); err != nil {
		t.Fatalf("record again: %v", err)
	}

	titles, err := fake.SheetTitles(context.Background())
	if err != nil {
		t.Fatalf("sheet titles: %v", err)
	}
	created := 0
	for _, title := range titles {
		if title == "Математика"+ResultsSuffix {
			created++
		}
	}
	if created != 1 {
		t.Fatalf("expected one results sheet, titles %v", titles)
	}

	rows := fake.Rows("Математика" + ResultsSuffix)
	if len(rows) != 3 {
		t.Fatalf("expected header plus two attempts, got %d rows", len(rows))
	}
	wantHeader := []string{"Student", "Time", "2+2?", "3+3?", "Score"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Fatalf("header: expected %v, got %v", wantHeader, rows[0])
	}
	wantRow := []string{"Alice", "2026-08-23T12:00:00Z", VerdictIncorrect, VerdictCorrect, "1/2"}
	if !reflect.DeepEqual(rows[1], wantRow) {
		t.Fatalf("attempt row: expected %v, got %v", wantRow, rows[1])
	}
	if rows[2][0] != "Bob" {
		t.Fatalf("expected second attempt for Bob, got %v", rows[2])
	}
}

func TestRecorderSurfacesTransportErrors(t *testing.T) {
	fake := NewFake("Результаты")
	fake.Err = errors.New("quota exceeded")
	recorder := NewRecorder(NewTable(fake, nil, 0))

	err := recorder.Record(context.Background(), "Математика", "Alice", []domain.AnswerRecord{{Prompt: "2+2?", Correct: true}})
	if !errors.Is(err, domain.ErrBackingStoreUnavailable) {
		t.Fatalf("expected ErrBackingStoreUnavailable, got %v", err)
	}
}
