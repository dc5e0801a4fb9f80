package questionbank

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for bank files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported question bank format")

// LoadOptions controls how a bank file is read.
type LoadOptions struct {
	// Sheet selects the worksheet of an .xlsx bank. Empty means the first sheet.
	Sheet string

	// Strict fails the load when any row is rejected.
	Strict bool
}

// Load reads a question bank from path. The format is chosen by extension:
// .csv, .xlsx, .yaml/.yml or .json.
func Load(path string, opts LoadOptions) (*Bank, error) {
	rows, err := ReadRows(path, opts)
	if err != nil {
		return nil, err
	}

	bank, err := New(rows)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if opts.Strict {
		if rerr := bank.RejectedErr(); rerr != nil {
			return nil, fmt.Errorf("load %s: %w", path, rerr)
		}
	}
	return bank, nil
}

// ReadRows reads raw rows from a bank file without sanitizing them.
func ReadRows(path string, opts LoadOptions) ([]Row, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" {
		rows, err := ReadXLSXFile(path, opts.Sheet)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return rows, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	defer f.Close()

	var rows []Row
	switch ext {
	case ".csv":
		rows, err = ReadCSV(f)
	case ".yaml", ".yml":
		rows, err = ReadYAML(f)
	case ".json":
		rows, err = ReadJSON(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// Column names shared by the tabular formats.
const (
	colID          = "id"
	colConcept     = "concept"
	colDifficulty  = "difficulty"
	colQuestion    = "question"
	colOptionA     = "option_a"
	colOptionB     = "option_b"
	colOptionC     = "option_c"
	colOptionD     = "option_d"
	colCorrect     = "correct"
	colExplanation = "explanation"
	colResourceURL = "resource_url"
)

var requiredColumns = []string{colID, colQuestion, colOptionA, colOptionB, colOptionC, colOptionD, colCorrect}

// MissingColumnError reports a tabular bank whose header lacks a required column.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("header is missing required column %q", e.Column)
}

// rowsFromTable maps header-addressed records onto Rows. Column matching is
// case-insensitive and ignores surrounding whitespace. firstLine is the
// 1-based source line of records[0].
func rowsFromTable(header []string, records [][]string, firstLine int) ([]Row, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &MissingColumnError{Column: col}
		}
	}

	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		if isBlank(rec) {
			continue
		}
		cell := func(col string) string {
			idx, ok := index[col]
			if !ok || idx >= len(rec) {
				return ""
			}
			return rec[idx]
		}
		rows = append(rows, Row{
			Line:        firstLine + i,
			ID:          cell(colID),
			Concept:     cell(colConcept),
			Difficulty:  cell(colDifficulty),
			Question:    cell(colQuestion),
			OptionA:     cell(colOptionA),
			OptionB:     cell(colOptionB),
			OptionC:     cell(colOptionC),
			OptionD:     cell(colOptionD),
			Correct:     cell(colCorrect),
			Explanation: cell(colExplanation),
			ResourceURL: cell(colResourceURL),
		})
	}
	return rows, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
