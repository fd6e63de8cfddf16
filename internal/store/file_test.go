package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/VanderY/proctoring-bot/internal/domain"
)

func TestFileStoreRoundTrip(t *testing.T) {
	fileStore := NewFileStore(t.TempDir())
	test := sampleTest("Математика")

	if err := fileStore.Save(context.Background(), test); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := fileStore.Load(context.Background(), "Математика")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(test, loaded) {
		t.Fatalf("round trip mismatch:\nsaved  %+v\nloaded %+v", test, loaded)
	}
}

func TestFileStoreOverwrites(t *testing.T) {
	fileStore := NewFileStore(t.TempDir())

	if err := fileStore.Save(context.Background(), sampleTest("Тест")); err != nil {
		t.Fatalf("save: %v", err)
	}
	replacement := domain.TestDefinition{
		Name: "Тест",
		Questions: []domain.Question{
			{Index: 1, Fields: map[string]string{domain.PromptField: "новый?", domain.AnswerField: "да"}},
		},
	}
	if err := fileStore.Save(context.Background(), replacement); err != nil {
		t.Fatalf("save replacement: %v", err)
	}

	loaded, err := fileStore.Load(context.Background(), "Тест")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Questions) != 1 || loaded.Questions[0].Prompt() != "новый?" {
		t.Fatalf("expected replacement stored, got %+v", loaded)
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	fileStore := NewFileStore(t.TempDir())
	_, err := fileStore.Load(context.Background(), "нет такого")
	if !errors.Is(err, domain.ErrTestNotFound) {
		t.Fatalf("expected ErrTestNotFound, got %v", err)
	}
}

func TestFileStoreRejectsEmptyName(t *testing.T) {
	fileStore := NewFileStore(t.TempDir())
	if err := fileStore.Save(context.Background(), domain.TestDefinition{}); err == nil {
		t.Fatalf("expected error for empty test name")
	}
}

func sampleTest(name string) domain.TestDefinition {
	return domain.TestDefinition{
		Name: name,
		Questions: []domain.Question{
			{Index: 1, Fields: map[string]string{
				domain.PromptField: "2+2?",
				"1":                "3",
				"2":                "4",
				domain.AnswerField: "4",
			}},
			{Index: 2, Fields: map[string]string{
				domain.PromptField: "3+3?",
				"1":                "6",
				"2":                "7",
				domain.AnswerField: "6",
			}},
		},
	}
}
