package ingest

import (
	"github.com/VanderY/proctoring-bot/internal/domain"
)

// Normalize converts a raw spreadsheet grid into an ordered question
// set. The first row is the header; each header cell names a field. A
// data row contributes a question built by zipping header keys to its
// populated (non-empty) cells; rows whose field mapping ends up empty
// are decorative and dropped. Surviving questions are numbered from 1
// in original relative order.
//
// An empty title or an empty grid means the read did not produce a
// usable test: callers get an empty TestDefinition and
// domain.ErrIngestionFailed, never a "zero questions" test.
func Normalize(title string, grid [][]string) (domain.TestDefinition, error) {
	if title == "" || len(grid) == 0 {
		return domain.TestDefinition{}, domain.ErrIngestionFailed
	}

	header := grid[0]
	var questions []domain.Question
	for _, row := range grid[1:] {
		fields := map[string]string{}
		for i, cell := range row {
			if i >= len(header) || header[i] == "" || cell == "" {
				continue
			}
			fields[header[i]] = cell
		}
		if len(fields) == 0 {
			continue
		}
		questions = append(questions, domain.Question{
			Index:  len(questions) + 1,
			Fields: fields,
		})
	}

	return domain.TestDefinition{Name: title, Questions: questions}, nil
}
