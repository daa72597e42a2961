// =============================================================================
// CAPPS Converter - Purchases Reader
// =============================================================================
//
// Reads the AIMsi purchases export. The file has no header row; fields are
// positional:
//
//   0: Date+Time ("11/10/2025 11:50:05 AM")
//   1: Transaction number
//   2: Amount (may carry "$", thousands separators and quoting)
//   3: Category ID
//   4: Serial number
//
// An unreadable file is a fatal input error. Individual rows that cannot be
// parsed (short rows, bad dates, bad amounts) are skipped and reported as
// RowErrors so the run summary can account for them - a single bad export
// line must not abort the batch.
//
// =============================================================================

package csvreader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/storeops/capps-converter/internal/types"
)

// aimsiTimeLayout matches the POS export format, with or without zero
// padding ("1/2/2025 9:05:00 AM" and "11/10/2025 11:50:05 AM" both parse).
const aimsiTimeLayout = "1/2/2006 3:04:05 PM"

// primaryFieldCount is the minimum number of columns a purchase row needs.
const primaryFieldCount = 5

// RowError records one skipped input row for diagnostics.
type RowError struct {
	Row     int
	Message string
}

func (e RowError) String() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ReadPurchases parses the purchases export at path. It returns the parsed
// records, the rows it had to skip, and a fatal error only when the file
// itself cannot be read.
func ReadPurchases(path string) ([]types.PrimaryRecord, []RowError, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open purchases file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read purchases CSV: %w", err)
	}

	var records []types.PrimaryRecord
	var rowErrs []RowError

	for i, row := range rows {
		rowNum := i + 1

		if isEmptyRow(row) {
			continue
		}
		if len(row) < primaryFieldCount {
			rowErrs = append(rowErrs, RowError{rowNum, fmt.Sprintf("expected %d columns, got %d", primaryFieldCount, len(row))})
			continue
		}

		rec, err := parsePrimaryRow(row, rowNum)
		if err != nil {
			rowErrs = append(rowErrs, RowError{rowNum, err.Error()})
			continue
		}
		records = append(records, rec)
	}

	return records, rowErrs, nil
}

func parsePrimaryRow(row []string, rowNum int) (types.PrimaryRecord, error) {
	rawTime := strings.TrimSpace(row[0])
	txNumber := strings.Trim(strings.TrimSpace(row[1]), `"`)
	rawAmount := strings.TrimSpace(row[2])
	category := strings.TrimSpace(row[3])
	serial := strings.Trim(strings.TrimSpace(row[4]), `"`)

	t, err := time.ParseInLocation(aimsiTimeLayout, rawTime, time.Local)
	if err != nil {
		return types.PrimaryRecord{}, fmt.Errorf("unparseable datetime %q", rawTime)
	}

	cleanAmount := cleanAmountString(rawAmount)
	amount, err := strconv.ParseFloat(cleanAmount, 64)
	if err != nil {
		return types.PrimaryRecord{}, fmt.Errorf("unparseable amount %q", rawAmount)
	}

	return types.PrimaryRecord{
		Time:              t,
		RawTime:           rawTime,
		TransactionNumber: txNumber,
		Amount:            amount,
		RawAmount:         cleanAmount,
		CategoryID:        category,
		SerialNumber:      serial,
		RowNumber:         rowNum,
	}, nil
}

// cleanAmountString strips currency formatting ("$1,250.00" -> "1250.00").
func cleanAmountString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
