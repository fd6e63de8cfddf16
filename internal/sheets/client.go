package sheets

import "context"

// Client is the wire-level spreadsheet surface the bot depends on. An
// implementation is bound to a single spreadsheet; every call is a
// synchronous RPC that may fail with a transport error.
type Client interface {
	// Title returns the spreadsheet's title metadata.
	Title(ctx context.Context) (string, error)
	// SheetTitles lists the titles of all sheets in the spreadsheet.
	SheetTitles(ctx context.Context) ([]string, error)
	// ReadRange returns formatted cell values for an A1 range like
	// "Тест!A1:Z1000". Trailing empty rows and cells are omitted.
	ReadRange(ctx context.Context, rng string) ([][]string, error)
	// UpdateRange overwrites the given A1 range with values.
	UpdateRange(ctx context.Context, rng string, values [][]string) error
	// AppendRow appends one row after the last occupied row of a sheet.
	AppendRow(ctx context.Context, sheet string, row []string) error
	// AddSheet creates a new sheet inside the bound spreadsheet.
	AddSheet(ctx context.Context, title string, rows, cols int) error
	// Create provisions a new spreadsheet with one initial sheet and
	// rebinds the client to it. Returns the new spreadsheet ID.
	Create(ctx context.Context, title, firstSheet string, rows, cols int) (string, error)
	// GrantReadAccess makes the bound spreadsheet link-readable.
	GrantReadAccess(ctx context.Context) error
}

// Opener hands out clients bound to a spreadsheet ID. Quiz spreadsheets
// arrive by link at ingestion time, so clients are opened per test.
type Opener interface {
	Open(spreadsheetID string) Client
}
