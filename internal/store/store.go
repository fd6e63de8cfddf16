package store

import (
	"context"

	"github.com/VanderY/proctoring-bot/internal/domain"
)

// Store persists normalized question sets by test name. It is a cache
// in front of ingestion and never talks to the spreadsheet backend.
type Store interface {
	// Save overwrites any prior artifact with the same name.
	Save(ctx context.Context, test domain.TestDefinition) error
	// Load returns domain.ErrTestNotFound when no artifact exists.
	Load(ctx context.Context, name string) (domain.TestDefinition, error)
}
