package sheets

import (
	"context"
	"testing"

	"github.com/VanderY/proctoring-bot/internal/domain"
)

func TestDirectoryRole(t *testing.T) {
	directory := NewDirectory(NewTable(registryFake(), UsersSchema, 0))

	role, err := directory.Role(context.Background(), "100")
	if err != nil {
		t.Fatalf("role: %v", err)
	}
	if role != domain.RoleStudent {
		t.Fatalf("expected student, got %q", role)
	}

	role, err = directory.Role(context.Background(), "999")
	if err != nil {
		t.Fatalf("role: %v", err)
	}
	if role != "" {
		t.Fatalf("expected no role, got %q", role)
	}
}

func TestDirectoryRegistrationLifecycle(t *testing.T) {
	ctx := context.Background()
	directory := NewDirectory(NewTable(registryFake(), UsersSchema, 0))

	if err := directory.RegisterTeacher(ctx, "500", "Доцент"); err != nil {
		t.Fatalf("register teacher: %v", err)
	}
	role, err := directory.Role(ctx, "500")
	if err != nil {
		t.Fatalf("role: %v", err)
	}
	if role != domain.RoleTeacher {
		t.Fatalf("expected teacher, got %q", role)
	}

	removed, err := directory.Unregister(ctx, TeachersSheet, "500")
	if err != nil || !removed {
		t.Fatalf("unregister: %v (removed=%v)", err, removed)
	}
	role, err = directory.Role(ctx, "500")
	if err != nil {
		t.Fatalf("role after unregister: %v", err)
	}
	if role != "" {
		t.Fatalf("expected role cleared, got %q", role)
	}
}
