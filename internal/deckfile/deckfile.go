// Package deckfile imports and exports term groups as spreadsheet
// files, for moving decks in and out of the application.
package deckfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/helix-study/backend/internal/domain/term"
	"github.com/helix-study/backend/internal/store"
)

// Format names a supported deck file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat maps a user-supplied format name (or file extension) to a
// Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "xlsx":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported deck file format %q", s)
	}
}

// ImportConfig defines where terms live inside an imported sheet.
type ImportConfig struct {
	SheetName        string // sheet to read, xlsx only
	TermColumn       int    // 0-based column with the term
	DefinitionColumn int    // 0-based column with the definition
	SkipHeader       bool
}

func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SheetName:        "Sheet1",
		TermColumn:       0,
		DefinitionColumn: 1,
		SkipHeader:       true,
	}
}

// ImportResult summarizes one import run.
type ImportResult struct {
	TotalProcessed int      `json:"total_processed"`
	Created        int      `json:"created"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors,omitempty"`
}

// Import reads rows from r and creates one term per row in the given
// group. Rows missing a term or definition are counted as skipped, not
// fatal.
func Import(ctx context.Context, st store.Store, groupID string, format Format, r io.Reader, cfg ImportConfig) (*ImportResult, error) {
	// The group must exist before anything is inserted into it.
	if _, err := st.GetGroup(ctx, groupID); err != nil {
		return nil, fmt.Errorf("look up group %q: %w", groupID, err)
	}

	var rows [][]string
	var err error
	switch format {
	case FormatCSV:
		rows, err = readCSVRows(r)
	case FormatXLSX:
		rows, err = readXLSXRows(r, cfg.SheetName)
	default:
		return nil, fmt.Errorf("unsupported deck file format %q", format)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i == 0 && cfg.SkipHeader {
			continue
		}
		result.TotalProcessed++

		word := cell(row, cfg.TermColumn)
		definition := cell(row, cfg.DefinitionColumn)
		if word == "" || definition == "" {
			result.Skipped++
			continue
		}

		tm, err := term.NewTerm(groupID, word, definition)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if err := st.CreateTerm(ctx, tm); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Created++
	}

	return result, nil
}

// Export writes every term of the group to w as a two-column sheet with
// a header row, in the chosen format.
func Export(ctx context.Context, st store.Store, groupID string, format Format, w io.Writer) error {
	terms, err := st.ListTermsByGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("load terms for group %q: %w", groupID, err)
	}

	switch format {
	case FormatCSV:
		return writeCSV(w, terms)
	case FormatXLSX:
		return writeXLSX(w, terms)
	default:
		return fmt.Errorf("unsupported deck file format %q", format)
	}
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func readXLSXRows(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func writeCSV(w io.Writer, terms []term.Term) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"term", "definition"}); err != nil {
		return err
	}
	for _, t := range terms {
		if err := writer.Write([]string{t.Term, t.Definition}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeXLSX(w io.Writer, terms []term.Term) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", "term"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B1", "definition"); err != nil {
		return err
	}
	for i, t := range terms {
		row := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), t.Term); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), t.Definition); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
