package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// GoogleOpener builds clients over the Google Sheets and Drive APIs
// using a service-account credentials file.
type GoogleOpener struct {
	sheets *sheetsapi.Service
	drive  *drive.Service
}

func NewGoogleOpener(ctx context.Context, credentialsFile string) (*GoogleOpener, error) {
	opts := []option.ClientOption{
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope, drive.DriveScope),
	}
	sheetsService, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return &GoogleOpener{sheets: sheetsService, drive: driveService}, nil
}

func (o *GoogleOpener) Open(spreadsheetID string) Client {
	return &googleClient{opener: o, spreadsheetID: spreadsheetID}
}

type googleClient struct {
	opener        *GoogleOpener
	spreadsheetID string
}

func (c *googleClient) Title(ctx context.Context) (string, error) {
	meta, err := c.opener.sheets.Spreadsheets.Get(c.spreadsheetID).
		Fields("properties.title").Context(ctx).Do()
	if err != nil {
		return "", err
	}
	if meta.Properties == nil {
		return "", nil
	}
	return meta.Properties.Title, nil
}

func (c *googleClient) SheetTitles(ctx context.Context) ([]string, error) {
	meta, err := c.opener.sheets.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(meta.Sheets))
	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil {
			titles = append(titles, sheet.Properties.Title)
		}
	}
	return titles, nil
}

func (c *googleClient) ReadRange(ctx context.Context, rng string) ([][]string, error) {
	resp, err := c.opener.sheets.Spreadsheets.Values.Get(c.spreadsheetID, rng).
		ValueRenderOption("FORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	values := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = fmt.Sprint(cell)
		}
		values[i] = cells
	}
	return values, nil
}

func (c *googleClient) UpdateRange(ctx context.Context, rng string, values [][]string) error {
	_, err := c.opener.sheets.Spreadsheets.Values.Update(c.spreadsheetID, rng, &sheetsapi.ValueRange{
		MajorDimension: "ROWS",
		Values:         toInterfaceRows(values),
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	return err
}

func (c *googleClient) AppendRow(ctx context.Context, sheet string, row []string) error {
	_, err := c.opener.sheets.Spreadsheets.Values.Append(c.spreadsheetID, sheet, &sheetsapi.ValueRange{
		Values: toInterfaceRows([][]string{row}),
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	return err
}

func (c *googleClient) AddSheet(ctx context.Context, title string, rows, cols int) error {
	_, err := c.opener.sheets.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{
					Title: title,
					GridProperties: &sheetsapi.GridProperties{
						RowCount:    int64(rows),
						ColumnCount: int64(cols),
					},
				},
			},
		}},
	}).Context(ctx).Do()
	return err
}

func (c *googleClient) Create(ctx context.Context, title, firstSheet string, rows, cols int) (string, error) {
	created, err := c.opener.sheets.Spreadsheets.Create(&sheetsapi.Spreadsheet{
		Properties: &sheetsapi.SpreadsheetProperties{Title: title, Locale: "ru_RU"},
		Sheets: []*sheetsapi.Sheet{{
			Properties: &sheetsapi.SheetProperties{
				SheetType: "GRID",
				Title:     firstSheet,
				GridProperties: &sheetsapi.GridProperties{
					RowCount:    int64(rows),
					ColumnCount: int64(cols),
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	c.spreadsheetID = created.SpreadsheetId
	return created.SpreadsheetId, nil
}

func (c *googleClient) GrantReadAccess(ctx context.Context) error {
	_, err := c.opener.drive.Permissions.Create(c.spreadsheetID, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Fields("id").Context(ctx).Do()
	return err
}

func toInterfaceRows(values [][]string) [][]interface{} {
	rows := make([][]interface{}, len(values))
	for i, row := range values {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		rows[i] = cells
	}
	return rows
}
