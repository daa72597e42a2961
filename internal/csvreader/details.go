// =============================================================================
// CAPPS Converter - Serials Reader
// =============================================================================
//
// Reads the serials export that the purchases file joins against. Unlike the
// purchases export this file carries a header row; the serial number,
// description and subcategory columns are located by name (with the aliases
// different AIMsi report versions use), not by fixed position. A missing
// required column is a fatal input error - the join cannot work without it.
//
// Both CSV and XLSX exports are accepted; see details_xlsx.go for the
// spreadsheet variant.
//
// =============================================================================

package csvreader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/storeops/capps-converter/internal/types"
)

// Column aliases, normalized form (lowercase, separators stripped).
var (
	serialAliases      = []string{"serialnumber", "serial", "serialno", "serial#"}
	descriptionAliases = []string{"description", "itemdescription", "desc"}
	subcategoryAliases = []string{"subcategory", "subcategoryid", "subcat", "subcategorycode"}
)

// ReadDetails parses the serials export at path, dispatching on the file
// extension (.xlsx uses the spreadsheet reader, everything else is CSV).
func ReadDetails(path string) ([]types.DetailRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readDetailsXLSX(path)
	}
	return readDetailsCSV(path)
}

func readDetailsCSV(path string) ([]types.DetailRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open serials file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read serials CSV: %w", err)
	}

	return detailsFromRows(rows)
}

// detailsFromRows converts header-plus-data rows into detail records. Shared
// by the CSV and XLSX readers.
func detailsFromRows(rows [][]string) ([]types.DetailRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("serials file is empty")
	}

	cols, err := locateColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var details []types.DetailRecord
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		serial := cellAt(row, cols.serial)
		if serial == "" {
			continue
		}

		details = append(details, types.DetailRecord{
			SerialNumber:  serial,
			Description:   cellAt(row, cols.description),
			SubcategoryID: cellAt(row, cols.subcategory),
		})
	}

	return details, nil
}

// columnIndexes holds the located positions of the required columns.
type columnIndexes struct {
	serial      int
	description int
	subcategory int
}

// locateColumns resolves the required columns from the header row. The error
// message names the missing column and echoes the headers found, so the
// operator can fix the export rather than guess.
func locateColumns(header []string) (columnIndexes, error) {
	find := func(aliases []string) int {
		for i, h := range header {
			normalized := normalizeHeader(h)
			for _, alias := range aliases {
				if normalized == alias {
					return i
				}
			}
		}
		return -1
	}

	cols := columnIndexes{
		serial:      find(serialAliases),
		description: find(descriptionAliases),
		subcategory: find(subcategoryAliases),
	}

	missing := ""
	switch {
	case cols.serial < 0:
		missing = "serial number"
	case cols.description < 0:
		missing = "description"
	case cols.subcategory < 0:
		missing = "subcategory"
	}
	if missing != "" {
		return cols, fmt.Errorf("serials file is missing a %s column (found headers: %s)",
			missing, strings.Join(header, ", "))
	}

	return cols, nil
}

// normalizeHeader lowercases a header and strips the separators AIMsi
// sprinkles between words ("Serial Number", "serial_number", "Serial-No").
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	for _, sep := range []string{" ", "_", "-", "."} {
		h = strings.ReplaceAll(h, sep, "")
	}
	return h
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
