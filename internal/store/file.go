package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/VanderY/proctoring-bot/internal/domain"
)

// FileStore keeps one UTF-8 JSON artifact per test under dir: an array
// of objects mapping field name to string value.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Save(_ context.Context, test domain.TestDefinition) error {
	if test.Name == "" {
		return fmt.Errorf("save test: empty name")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create surveys dir: %w", err)
	}

	records := make([]map[string]string, 0, len(test.Questions))
	for _, question := range test.Questions {
		records = append(records, question.Fields)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal test %q: %w", test.Name, err)
	}
	if err := os.WriteFile(s.path(test.Name), data, 0o644); err != nil {
		return fmt.Errorf("write test %q: %w", test.Name, err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context, name string) (domain.TestDefinition, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return domain.TestDefinition{}, fmt.Errorf("%q: %w", name, domain.ErrTestNotFound)
	}
	if err != nil {
		return domain.TestDefinition{}, fmt.Errorf("read test %q: %w", name, err)
	}

	var records []map[string]string
	if err := json.Unmarshal(data, &records); err != nil {
		return domain.TestDefinition{}, fmt.Errorf("unmarshal test %q: %w", name, err)
	}

	test := domain.TestDefinition{Name: name, Questions: make([]domain.Question, 0, len(records))}
	for i, fields := range records {
		test.Questions = append(test.Questions, domain.Question{Index: i + 1, Fields: fields})
	}
	return test, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}
