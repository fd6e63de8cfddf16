package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/VanderY/proctoring-bot/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// TestStore persists question sets as JSONB rows, as an alternative to
// the file-backed store for deployments with a database at hand.
type TestStore struct {
	pool *pgxpool.Pool
}

func NewTestStore(pool *pgxpool.Pool) *TestStore {
	return &TestStore{pool: pool}
}

func (s *TestStore) Save(ctx context.Context, test domain.TestDefinition) error {
	if test.Name == "" {
		return fmt.Errorf("save test: empty name")
	}

	records := make([]map[string]string, 0, len(test.Questions))
	for _, question := range test.Questions {
		records = append(records, question.Fields)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal test %q: %w", test.Name, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO tests (name, data) VALUES ($1, $2::jsonb)
		 ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data`,
		test.Name, string(data))
	if err != nil {
		return fmt.Errorf("save test %q: %w", test.Name, err)
	}
	return nil
}

func (s *TestStore) Load(ctx context.Context, name string) (domain.TestDefinition, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM tests WHERE name = $1`, name).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.TestDefinition{}, fmt.Errorf("%q: %w", name, domain.ErrTestNotFound)
	}
	if err != nil {
		return domain.TestDefinition{}, fmt.Errorf("load test %q: %w", name, err)
	}

	var records []map[string]string
	if err := json.Unmarshal(raw, &records); err != nil {
		return domain.TestDefinition{}, fmt.Errorf("unmarshal test %q: %w", name, err)
	}

	test := domain.TestDefinition{Name: name, Questions: make([]domain.Question, 0, len(records))}
	for i, fields := range records {
		test.Questions = append(test.Questions, domain.Question{Index: i + 1, Fields: fields})
	}
	return test, nil
}
