// Package addrsource extracts staker addresses from uploaded address
// files. The first column of every row after the header is read; invalid
// entries are dropped and duplicates removed, keeping first-seen order.
package addrsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/stakescan/stake-scanner/pkg"
)

// IsValidAddress reports whether s is a 0x-prefixed 20-byte hex address
func IsValidAddress(s string) bool {
	return pkg.ValidateEVMAddress(s) == nil
}

// FromFile picks the parser by file extension: .csv and .txt are read as
// comma separated text, anything else as a spreadsheet.
func FromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FromCSV(f)
	default:
		return FromXLSX(f)
	}
}

func FromCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var column []string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		column = append(column, firstCell(row))
	}

	return collect(column), nil
}

func FromXLSX(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	column := make([]string, 0, len(rows))
	for _, row := range rows {
		column = append(column, firstCell(row))
	}

	return collect(column), nil
}

func firstCell(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return strings.Trim(strings.TrimSpace(row[0]), `"'`)
}

// collect skips the header row, then keeps valid addresses once each.
// Addresses differing only in letter case are duplicates.
func collect(column []string) []string {
	addresses := make([]string, 0, len(column))
	if len(column) == 0 {
		return addresses
	}

	seen := make(map[string]struct{}, len(column))
	for _, cell := range column[1:] {
		if !IsValidAddress(cell) {
			continue
		}
		key := strings.ToLower(cell)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		addresses = append(addresses, cell)
	}

	return addresses
}
