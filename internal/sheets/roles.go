package sheets

import (
	"context"

	"github.com/VanderY/proctoring-bot/internal/domain"
)

// Sheet titles of the bot's own user registry spreadsheet.
const (
	StudentsSheet = "students"
	TeachersSheet = "teachers"
)

// UsersSchema declares the registry layout: registered students and
// teachers as row-keyed tables keyed by chat user ID.
var UsersSchema = Schema{
	{Title: StudentsSheet, Columns: []string{"ID", "Name", "Group"}},
	{Title: TeachersSheet, Columns: []string{"ID", "Name"}},
}

// Directory resolves user roles from the registry spreadsheet.
type Directory struct {
	table *Table
}

func NewDirectory(table *Table) *Directory {
	return &Directory{table: table}
}

// Role returns domain.RoleStudent or domain.RoleTeacher for registered
// users, and "" for unknown ones.
func (d *Directory) Role(ctx context.Context, userID string) (string, error) {
	row, err := d.table.GetRow(ctx, StudentsSheet, userID)
	if err != nil {
		return "", err
	}
	if len(row) > 0 {
		return domain.RoleStudent, nil
	}

	row, err = d.table.GetRow(ctx, TeachersSheet, userID)
	if err != nil {
		return "", err
	}
	if len(row) > 0 {
		return domain.RoleTeacher, nil
	}
	return "", nil
}

// RegisterStudent upserts a student row into the registry.
func (d *Directory) RegisterStudent(ctx context.Context, userID, name, group string) error {
	return d.table.UpsertRow(ctx, StudentsSheet, []string{userID, name, group})
}

// RegisterTeacher upserts a teacher row into the registry.
func (d *Directory) RegisterTeacher(ctx context.Context, userID, name string) error {
	return d.table.UpsertRow(ctx, TeachersSheet, []string{userID, name})
}

// Unregister blanks a user's row in the given registry sheet. It
// reports false when the user was not registered there.
func (d *Directory) Unregister(ctx context.Context, sheetTitle, userID string) (bool, error) {
	return d.table.RemoveRow(ctx, sheetTitle, userID)
}
