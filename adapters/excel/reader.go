// Package excel reads raw observations from spreadsheet and CSV files.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ObservationReader handles reading (group, score) observations from Excel
// and CSV files. The first row is treated as a header; the first column
// holds the group label and the second the score.
type ObservationReader struct {
	sheet string
}

// NewObservationReader creates a reader that pulls Excel data from Sheet1.
func NewObservationReader() *ObservationReader {
	return &ObservationReader{sheet: "Sheet1"}
}

// Read loads observations from the file at path, dispatching on extension.
func (r *ObservationReader) Read(path string) ([]float64, []string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("data file not found: %s", path)
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = r.readCSVRows(path)
	case ".xlsx":
		rows, err = r.readExcelRows(path)
	default:
		return nil, nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, nil, err
	}

	return r.parseRows(rows)
}

func (r *ObservationReader) readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.sheet, err)
	}
	return rows, nil
}

func (r *ObservationReader) readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

func (r *ObservationReader) parseRows(rows [][]string) ([]float64, []string, error) {
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("data file must have a header row and at least one data row")
	}

	scores := make([]float64, 0, len(rows)-1)
	groups := make([]string, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue // blank row
		}
		if len(row) < 2 {
			return nil, nil, fmt.Errorf("row %d: need a group and a score column", i+2)
		}

		group := strings.TrimSpace(row[0])
		if group == "" {
			return nil, nil, fmt.Errorf("row %d: empty group label", i+2)
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: score %q is not numeric", i+2, row[1])
		}

		groups = append(groups, group)
		scores = append(scores, score)
	}

	if len(scores) == 0 {
		return nil, nil, fmt.Errorf("data file contains no observations")
	}
	return scores, groups, nil
}
