package sheets

import (
	"context"
	"fmt"

	"github.com/VanderY/proctoring-bot/internal/domain"
)

// DefaultScanLimit bounds how many rows of a sheet the accessor reads.
const DefaultScanLimit = 1000

// Table provides row-keyed access to the sheets of one spreadsheet: the
// first column of each sheet is treated as the row's unique key. It
// never retries; every transport error wraps ErrBackingStoreUnavailable.
//
// There is no cross-process locking: concurrent UpsertRow/RemoveRow
// calls against the same sheet are read-modify-write races.
type Table struct {
	client    Client
	schema    Schema
	scanLimit int
}

// NewTable builds an accessor over client. scanLimit <= 0 falls back to
// DefaultScanLimit.
func NewTable(client Client, schema Schema, scanLimit int) *Table {
	if scanLimit <= 0 {
		scanLimit = DefaultScanLimit
	}
	return &Table{client: client, schema: schema, scanLimit: scanLimit}
}

// UpsertRow writes row into sheetTitle. An existing row sharing the same
// first cell is overwritten in place; otherwise the first blank row is
// filled; otherwise the row lands after the last occupied one.
func (t *Table) UpsertRow(ctx context.Context, sheetTitle string, row []string) error {
	if len(row) == 0 {
		return fmt.Errorf("upsert row: empty row")
	}

	values, err := t.client.ReadRange(ctx, fmt.Sprintf("%s!A1:A%d", sheetTitle, t.scanLimit))
	if err != nil {
		return unavailable("read first column", err)
	}

	rowNumber := len(values) + 1
	for i, existing := range values {
		if len(existing) == 0 || existing[0] == "" {
			rowNumber = i + 1
			break
		}
		if existing[0] == row[0] {
			rowNumber = i + 1
			break
		}
	}

	return t.updateRow(ctx, sheetTitle, rowNumber, row)
}

// RemoveRow blanks out the row whose first cell equals key, keeping the
// sheet's row positions intact. It reports false when no row matches.
func (t *Table) RemoveRow(ctx context.Context, sheetTitle, key string) (bool, error) {
	values, err := t.client.ReadRange(ctx, fmt.Sprintf("%s!A1:A%d", sheetTitle, t.scanLimit))
	if err != nil {
		return false, unavailable("read first column", err)
	}

	rowNumber := 0
	for i, existing := range values {
		if len(existing) > 0 && existing[0] == key {
			rowNumber = i + 1
			break
		}
	}
	if rowNumber == 0 {
		return false, nil
	}

	blanks := make([]string, len(t.schema.Columns(sheetTitle)))
	if err := t.updateRow(ctx, sheetTitle, rowNumber, blanks); err != nil {
		return false, err
	}
	return true, nil
}

// GetRow returns the field mapping of the row whose first cell equals
// key, or an empty map when no row matches.
func (t *Table) GetRow(ctx context.Context, sheetTitle, key string) (map[string]string, error) {
	columns := t.schema.Columns(sheetTitle)
	if len(columns) == 0 {
		return map[string]string{}, nil
	}

	rng := fmt.Sprintf("%s!A2:%s%d", sheetTitle, columnLetter(len(columns)), t.scanLimit)
	values, err := t.client.ReadRange(ctx, rng)
	if err != nil {
		return nil, unavailable("read rows", err)
	}

	row := map[string]string{}
	for _, cells := range values {
		if len(cells) == 0 || cells[0] != key {
			continue
		}
		for i, attribute := range columns {
			if i < len(cells) {
				row[attribute] = cells[i]
			}
		}
		break
	}
	return row, nil
}

// GetFirstColumn returns all non-blank key cells below the header row.
func (t *Table) GetFirstColumn(ctx context.Context, sheetTitle string) ([]string, error) {
	values, err := t.client.ReadRange(ctx, fmt.Sprintf("%s!A2:A%d", sheetTitle, t.scanLimit))
	if err != nil {
		return nil, unavailable("read first column", err)
	}

	column := make([]string, 0, len(values))
	for _, cells := range values {
		if len(cells) > 0 && cells[0] != "" {
			column = append(column, cells[0])
		}
	}
	return column, nil
}

// SheetTitles lists the sheets of the bound spreadsheet.
func (t *Table) SheetTitles(ctx context.Context) ([]string, error) {
	titles, err := t.client.SheetTitles(ctx)
	if err != nil {
		return nil, unavailable("list sheets", err)
	}
	return titles, nil
}

// AppendRow appends one row after the last occupied row of a sheet.
func (t *Table) AppendRow(ctx context.Context, sheetTitle string, row []string) error {
	if err := t.client.AppendRow(ctx, sheetTitle, row); err != nil {
		return unavailable("append row", err)
	}
	return nil
}

// CreateSheet adds a sheet and writes its header row from the declaration.
func (t *Table) CreateSheet(ctx context.Context, sheet Sheet) error {
	if err := t.client.AddSheet(ctx, sheet.Title, t.scanLimit, len(sheet.Columns)); err != nil {
		return unavailable("add sheet", err)
	}
	return t.writeHeader(ctx, sheet)
}

// CreateSpreadsheet provisions a new spreadsheet holding every sheet of
// the schema, in declaration order, each with its header row. The
// spreadsheet is made link-readable afterwards.
func (t *Table) CreateSpreadsheet(ctx context.Context, title string) (string, error) {
	if len(t.schema) == 0 {
		return "", fmt.Errorf("create spreadsheet: empty schema")
	}

	first := t.schema[0]
	id, err := t.client.Create(ctx, title, first.Title, t.scanLimit, len(first.Columns))
	if err != nil {
		return "", unavailable("create spreadsheet", err)
	}
	if err := t.writeHeader(ctx, first); err != nil {
		return "", err
	}

	for _, sheet := range t.schema[1:] {
		if err := t.CreateSheet(ctx, sheet); err != nil {
			return "", err
		}
	}

	if err := t.client.GrantReadAccess(ctx); err != nil {
		return "", unavailable("grant access", err)
	}
	return id, nil
}

func (t *Table) writeHeader(ctx context.Context, sheet Sheet) error {
	rng := fmt.Sprintf("%s!A1:%s1", sheet.Title, columnLetter(len(sheet.Columns)))
	if err := t.client.UpdateRange(ctx, rng, [][]string{sheet.Columns}); err != nil {
		return unavailable("write header", err)
	}
	return nil
}

func (t *Table) updateRow(ctx context.Context, sheetTitle string, rowNumber int, row []string) error {
	rng := fmt.Sprintf("%s!A%d:%s%d", sheetTitle, rowNumber, columnLetter(len(row)), rowNumber)
	if err := t.client.UpdateRange(ctx, rng, [][]string{row}); err != nil {
		return unavailable("update row", err)
	}
	return nil
}

// columnLetter converts a 1-based column number to its A1 letters
// (1→A, 26→Z, 27→AA). Results sheets grow one column per question, so
// wide tests push past Z.
func columnLetter(n int) string {
	if n < 1 {
		n = 1
	}
	var letters []byte
	for n > 0 {
		n--
		letters = append([]byte{byte('A' + n%26)}, letters...)
		n /= 26
	}
	return string(letters)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, domain.ErrBackingStoreUnavailable)
}
