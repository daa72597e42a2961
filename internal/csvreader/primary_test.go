package csvreader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadPurchases(t *testing.T) {
	csv := `11/10/2025 11:50:05 AM,100234,"$1,250.00",3,SN4482
1/2/2025 9:05:00 AM,100235,85.50,5,SN9921
`
	path := writeTempFile(t, "purchases.csv", csv)

	records, rowErrs, err := ReadPurchases(path)
	if err != nil {
		t.Fatalf("ReadPurchases: %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("unexpected row errors: %v", rowErrs)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	wantTime := time.Date(2025, 11, 10, 11, 50, 5, 0, time.Local)
	if !first.Time.Equal(wantTime) {
		t.Errorf("Time = %v, want %v", first.Time, wantTime)
	}
	if first.TransactionNumber != "100234" {
		t.Errorf("TransactionNumber = %q, want 100234", first.TransactionNumber)
	}
	if first.Amount != 1250.00 {
		t.Errorf("Amount = %v, want 1250.00", first.Amount)
	}
	if first.RawAmount != "1250.00" {
		t.Errorf("RawAmount = %q, want cleaned 1250.00", first.RawAmount)
	}
	if first.CategoryID != "3" || first.SerialNumber != "SN4482" {
		t.Errorf("category/serial = %q/%q, want 3/SN4482", first.CategoryID, first.SerialNumber)
	}
	if first.RowNumber != 1 {
		t.Errorf("RowNumber = %d, want 1", first.RowNumber)
	}

	// Unpadded date and plain amount on the second row.
	second := records[1]
	if second.Time.Hour() != 9 || second.Amount != 85.50 {
		t.Errorf("second row parsed wrong: %+v", second)
	}
}

func TestReadPurchasesSkipsMalformedRows(t *testing.T) {
	csv := `11/10/2025 11:50:05 AM,100234,200.00,3,SN1
not-a-date,100235,100.00,3,SN2
11/10/2025 11:55:00 AM,100236,not-money,3,SN3
short,row
11/10/2025 11:59:00 AM,100237,300.00,3,SN4

`
	path := writeTempFile(t, "purchases.csv", csv)

	records, rowErrs, err := ReadPurchases(path)
	if err != nil {
		t.Fatalf("ReadPurchases: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2 (good rows only)", len(records))
	}
	if len(rowErrs) != 3 {
		t.Fatalf("got %d row errors, want 3: %v", len(rowErrs), rowErrs)
	}
	// Row numbers must point at the offending source lines.
	if rowErrs[0].Row != 2 || rowErrs[1].Row != 3 || rowErrs[2].Row != 4 {
		t.Errorf("row numbers = %d,%d,%d, want 2,3,4", rowErrs[0].Row, rowErrs[1].Row, rowErrs[2].Row)
	}
}

func TestReadPurchasesMissingFile(t *testing.T) {
	_, _, err := ReadPurchases(filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Error("missing file must be a fatal error")
	}
}

func TestCleanAmountString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"$1,250.00", "1250.00"},
		{`"$2,000.50"`, "2000.50"},
		{"  85.50  ", "85.50"},
		{"100", "100"},
	}
	for _, tt := range tests {
		if got := cleanAmountString(tt.in); got != tt.want {
			t.Errorf("cleanAmountString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
