package ingest

import (
	"errors"
	"testing"

	"github.com/VanderY/proctoring-bot/internal/domain"
)

func TestNormalizeDropsBlankRows(t *testing.T) {
	grid := [][]string{
		{"Вопрос", "правильный"},
		{"2+2?", "4"},
		{"", ""},
		{"3+3?", "6"},
	}

	test, err := Normalize("Математика", grid)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if test.Name != "Математика" {
		t.Fatalf("expected title as name, got %q", test.Name)
	}
	if len(test.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(test.Questions))
	}
	if test.Questions[0].Index != 1 || test.Questions[1].Index != 2 {
		t.Fatalf("expected indices 1 and 2, got %d and %d", test.Questions[0].Index, test.Questions[1].Index)
	}
	if test.Questions[0].Prompt() != "2+2?" || test.Questions[1].Prompt() != "3+3?" {
		t.Fatalf("unexpected prompts: %q, %q", test.Questions[0].Prompt(), test.Questions[1].Prompt())
	}
	if test.Questions[1].CorrectAnswer() != "6" {
		t.Fatalf("expected correct answer 6, got %q", test.Questions[1].CorrectAnswer())
	}
}

func TestNormalizeZipsHeaderPositionally(t *testing.T) {
	grid := [][]string{
		{"Вопрос", "1", "2", "правильный"},
		{"2+2?", "3", "4", "4"},
		{"столица?", "Москва", "", "Москва"},
	}

	test, err := Normalize("Тест", grid)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(test.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(test.Questions))
	}

	first := test.Questions[0].Fields
	if first["1"] != "3" || first["2"] != "4" {
		t.Fatalf("unexpected fields: %v", first)
	}
	// the empty cell contributes no field
	second := test.Questions[1].Fields
	if _, ok := second["2"]; ok {
		t.Fatalf("expected empty cell dropped, got %v", second)
	}
}

func TestNormalizeIgnoresCellsBeyondHeader(t *testing.T) {
	grid := [][]string{
		{"Вопрос", "правильный"},
		{"2+2?", "4", "мусор"},
	}

	test, err := Normalize("Тест", grid)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(test.Questions[0].Fields) != 2 {
		t.Fatalf("expected 2 fields, got %v", test.Questions[0].Fields)
	}
}

func TestNormalizeFailsWithoutTitle(t *testing.T) {
	_, err := Normalize("", [][]string{{"Вопрос"}, {"2+2?"}})
	if !errors.Is(err, domain.ErrIngestionFailed) {
		t.Fatalf("expected ingestion failure, got %v", err)
	}
}

func TestNormalizeFailsOnEmptyGrid(t *testing.T) {
	_, err := Normalize("Тест", nil)
	if !errors.Is(err, domain.ErrIngestionFailed) {
		t.Fatalf("expected ingestion failure, got %v", err)
	}
}

func TestNormalizeHeaderOnlyGridHasNoQuestions(t *testing.T) {
	test, err := Normalize("Тест", [][]string{{"Вопрос", "правильный"}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(test.Questions) != 0 {
		t.Fatalf("expected no questions, got %d", len(test.Questions))
	}
}
