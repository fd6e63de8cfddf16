package sheets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Fake is an in-memory Client for tests and tokenless local runs. It
// mimics the value-trimming behavior of the real backend: range reads
// drop trailing empty cells and rows.
type Fake struct {
	mu     sync.Mutex
	title  string
	order  []string
	sheets map[string][][]string

	// Err, when set, makes every call fail with it.
	Err error
}

// NewFake builds an empty fake spreadsheet with the given title.
func NewFake(title string) *Fake {
	return &Fake{title: title, sheets: map[string][][]string{}}
}

// SetSheet replaces a sheet's grid, creating the sheet if needed.
func (f *Fake) SetSheet(title string, rows [][]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sheets[title]; !ok {
		f.order = append(f.order, title)
	}
	grid := make([][]string, len(rows))
	for i, row := range rows {
		grid[i] = append([]string(nil), row...)
	}
	f.sheets[title] = grid
}

// Rows returns a copy of a sheet's grid for assertions.
func (f *Fake) Rows(title string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	grid := f.sheets[title]
	out := make([][]string, len(grid))
	for i, row := range grid {
		out[i] = append([]string(nil), row...)
	}
	return out
}

func (f *Fake) Title(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	return f.title, nil
}

func (f *Fake) SheetTitles(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return append([]string(nil), f.order...), nil
}

func (f *Fake) ReadRange(_ context.Context, rng string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	sheet, from, to, err := parseRange(rng)
	if err != nil {
		return nil, err
	}
	grid, ok := f.sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}

	var values [][]string
	for r := from.row; r <= to.row && r-1 < len(grid); r++ {
		row := grid[r-1]
		var cells []string
		for c := from.col; c <= to.col; c++ {
			if c-1 < len(row) {
				cells = append(cells, row[c-1])
			} else {
				cells = append(cells, "")
			}
		}
		// trim trailing empty cells, as the real API does
		for len(cells) > 0 && cells[len(cells)-1] == "" {
			cells = cells[:len(cells)-1]
		}
		values = append(values, cells)
	}
	for len(values) > 0 && len(values[len(values)-1]) == 0 {
		values = values[:len(values)-1]
	}
	return values, nil
}

func (f *Fake) UpdateRange(_ context.Context, rng string, values [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}

	sheet, from, _, err := parseRange(rng)
	if err != nil {
		return err
	}
	grid, ok := f.sheets[sheet]
	if !ok {
		return fmt.Errorf("sheet %q not found", sheet)
	}

	for i, row := range values {
		r := from.row - 1 + i
		for len(grid) <= r {
			grid = append(grid, nil)
		}
		for j, cell := range row {
			c := from.col - 1 + j
			for len(grid[r]) <= c {
				grid[r] = append(grid[r], "")
			}
			grid[r][c] = cell
		}
	}
	f.sheets[sheet] = grid
	return nil
}

func (f *Fake) AppendRow(_ context.Context, sheet string, row []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}

	grid, ok := f.sheets[sheet]
	if !ok {
		return fmt.Errorf("sheet %q not found", sheet)
	}
	f.sheets[sheet] = append(grid, append([]string(nil), row...))
	return nil
}

func (f *Fake) AddSheet(_ context.Context, title string, _, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	if _, ok := f.sheets[title]; ok {
		return fmt.Errorf("sheet %q already exists", title)
	}
	f.order = append(f.order, title)
	f.sheets[title] = nil
	return nil
}

func (f *Fake) Create(_ context.Context, title, firstSheet string, _, _ int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	f.title = title
	f.order = []string{firstSheet}
	f.sheets = map[string][][]string{firstSheet: nil}
	return "fake-" + title, nil
}

func (f *Fake) GrantReadAccess(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Err
}

// FakeOpener returns the same fake for every spreadsheet ID.
type FakeOpener struct {
	Client *Fake
}

func (o *FakeOpener) Open(string) Client { return o.Client }

type cellRef struct {
	col int // 1-based
	row int // 1-based
}

// parseRange splits "Sheet!A2:C1000" into its sheet and corner refs.
func parseRange(rng string) (string, cellRef, cellRef, error) {
	sheet, cells, ok := strings.Cut(rng, "!")
	if !ok {
		return "", cellRef{}, cellRef{}, fmt.Errorf("range %q missing sheet", rng)
	}
	fromRaw, toRaw, ok := strings.Cut(cells, ":")
	if !ok {
		toRaw = fromRaw
	}
	from, err := parseCell(fromRaw)
	if err != nil {
		return "", cellRef{}, cellRef{}, err
	}
	to, err := parseCell(toRaw)
	if err != nil {
		return "", cellRef{}, cellRef{}, err
	}
	return sheet, from, to, nil
}

func parseCell(raw string) (cellRef, error) {
	i := 0
	col := 0
	for i < len(raw) && raw[i] >= 'A' && raw[i] <= 'Z' {
		col = col*26 + int(raw[i]-'A'+1)
		i++
	}
	if col == 0 || i == len(raw) {
		return cellRef{}, errors.New("bad cell ref: " + raw)
	}
	row, err := strconv.Atoi(raw[i:])
	if err != nil || row < 1 {
		return cellRef{}, errors.New("bad cell ref: " + raw)
	}
	return cellRef{col: col, row: row}, nil
}
