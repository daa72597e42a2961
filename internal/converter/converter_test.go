package converter

import (
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/storeops/capps-converter/internal/brand"
	"github.com/storeops/capps-converter/internal/config"
	"github.com/storeops/capps-converter/internal/types"
)

// Fixed run time so the recency window is stable.
var runTime = time.Date(2025, 11, 10, 12, 0, 0, 0, time.Local)

const purchasesCSV = `11/10/2025 11:50:05 AM,100234,"$1,250.00",3,SN4482
11/9/2025 3:12:00 PM,100235,450.00,5,SN9921
11/1/2025 10:00:00 AM,100236,900.00,3,SN0001
11/10/2025 9:00:00 AM,100237,45.00,3,SN0002
11/10/2025 9:30:00 AM,100238,300.00,3,ISI777
11/10/2025 9:45:00 AM,100239,600.00,3,NOMATCH
garbage row
`

const serialsCSV = `Serial Number,Description,Subcategory
SN4482,GIBSON LES PAUL STANDARD SUNBURST,1
SN9921,PEARL EXPORT 5PC KIT BLACK,1
SN0001,OLD ENOUGH TO FILTER,1
SN0002,CHEAP ITEM,1
ISI777,STORE SERIALIZED ITEM,1
`

// parsedUpload is the minimal document shape the tests inspect.
type parsedUpload struct {
	XMLName xml.Name `xml:"capssUpload"`
	Bulk    struct {
		License      string `xml:"licenseNumber,attr"`
		Transactions []struct {
			Time  string `xml:"transactionTime"`
			Items struct {
				Items []struct {
					LoanBuy string `xml:"loanBuyNumber"`
					Amount  string `xml:"amount"`
					Article string `xml:"article"`
					Brand   string `xml:"brand"`
					Color   string `xml:"color"`
				} `xml:"item"`
			} `xml:"items"`
		} `xml:"propertyTransaction"`
	} `xml:"bulkUploadData"`
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		LicenseNumber: "SHD-12345",
		EmployeeName:  "Pat Smith",
		Filters: config.FilterSettings{
			LookbackDays: 5,
			MinAmount:    100,
		},
	}
}

func testResolver(t *testing.T) *brand.Resolver {
	t.Helper()
	cache, err := brand.OpenCache(filepath.Join(t.TempDir(), "brands.json"))
	if err != nil {
		t.Fatal(err)
	}
	return brand.NewResolver(cache, zerolog.Nop(), brand.NewPatternMatcher().Strategy())
}

func writeInputs(t *testing.T, purchases, serials string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	pPath := filepath.Join(dir, "purchases.csv")
	sPath := filepath.Join(dir, "serials.csv")
	if err := os.WriteFile(pPath, []byte(purchases), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sPath, []byte(serials), 0644); err != nil {
		t.Fatal(err)
	}
	return pPath, sPath
}

func TestRunEndToEnd(t *testing.T) {
	pPath, sPath := writeInputs(t, purchasesCSV, serialsCSV)

	c := New(testConfig(t), testResolver(t), zerolog.Nop()).
		WithClock(func() time.Time { return runTime })

	result, err := c.Run(context.Background(), pPath, sPath)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	s := result.Summary
	if s.DetailRows != 5 {
		t.Errorf("DetailRows = %d, want 5", s.DetailRows)
	}
	if s.PrimaryRows != 7 {
		t.Errorf("PrimaryRows = %d, want 7 (6 parsed + 1 malformed)", s.PrimaryRows)
	}
	if s.MalformedRows != 1 {
		t.Errorf("MalformedRows = %d, want 1", s.MalformedRows)
	}
	if s.Included != 2 {
		t.Errorf("Included = %d, want 2", s.Included)
	}

	wantFiltered := map[types.Reason]int{
		types.ReasonTooOld:            1,
		types.ReasonBelowMinimum:      1,
		types.ReasonInternalInventory: 1,
		types.ReasonNoDetailMatch:     1,
	}
	for reason, want := range wantFiltered {
		if got := s.Filtered[reason]; got != want {
			t.Errorf("Filtered[%s] = %d, want %d", reason, got, want)
		}
	}
	if s.TotalFiltered() != 4 {
		t.Errorf("TotalFiltered = %d, want 4", s.TotalFiltered())
	}

	var doc parsedUpload
	if err := xml.Unmarshal(result.Document, &doc); err != nil {
		t.Fatalf("generated document does not parse: %v", err)
	}
	if doc.Bulk.License != "SHD-12345" {
		t.Errorf("licenseNumber = %q", doc.Bulk.License)
	}
	if len(doc.Bulk.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(doc.Bulk.Transactions))
	}

	first := doc.Bulk.Transactions[0].Items.Items[0]
	if first.LoanBuy != "100234" {
		t.Errorf("loanBuyNumber = %q, want 100234", first.LoanBuy)
	}
	if first.Amount != "1250.00" {
		t.Errorf("amount = %q, want cleaned 1250.00", first.Amount)
	}
	if first.Article != "GUITAR" {
		t.Errorf("article = %q, want GUITAR", first.Article)
	}
	if first.Brand != "GIBSON" {
		t.Errorf("brand = %q, want GIBSON", first.Brand)
	}
	if first.Color != "BROWN" {
		t.Errorf("color = %q, want BROWN (sunburst finish)", first.Color)
	}
	if doc.Bulk.Transactions[0].Time != "2025-11-10T11:50:05" {
		t.Errorf("transactionTime = %q", doc.Bulk.Transactions[0].Time)
	}
}

func TestRunMissingSerialsFileIsFatal(t *testing.T) {
	pPath, _ := writeInputs(t, purchasesCSV, serialsCSV)

	c := New(testConfig(t), testResolver(t), zerolog.Nop())
	if _, err := c.Run(context.Background(), pPath, filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("missing serials file must abort the run")
	}
}

func TestRunMissingPurchasesFileIsFatal(t *testing.T) {
	_, sPath := writeInputs(t, purchasesCSV, serialsCSV)

	c := New(testConfig(t), testResolver(t), zerolog.Nop())
	if _, err := c.Run(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), sPath); err == nil {
		t.Error("missing purchases file must abort the run")
	}
}

func TestRunEmptyBatchStillProducesDocument(t *testing.T) {
	// All rows outside the lookback window.
	pPath, sPath := writeInputs(t,
		"1/1/2020 10:00:00 AM,1,500.00,3,SN4482\n",
		serialsCSV)

	c := New(testConfig(t), testResolver(t), zerolog.Nop()).
		WithClock(func() time.Time { return runTime })

	result, err := c.Run(context.Background(), pPath, sPath)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Summary.Included != 0 {
		t.Errorf("Included = %d, want 0", result.Summary.Included)
	}

	var doc parsedUpload
	if err := xml.Unmarshal(result.Document, &doc); err != nil {
		t.Fatalf("empty-batch document does not parse: %v", err)
	}
	if len(doc.Bulk.Transactions) != 0 {
		t.Errorf("empty batch carries %d transactions", len(doc.Bulk.Transactions))
	}
}

func TestRunUnknownBrandFallsBackToSentinel(t *testing.T) {
	pPath, sPath := writeInputs(t,
		"11/10/2025 10:00:00 AM,42,500.00,3,SNX\n",
		"Serial Number,Description,Subcategory\nSNX,HANDMADE CIGAR BOX 3 STRING,1\n")

	c := New(testConfig(t), testResolver(t), zerolog.Nop()).
		WithClock(func() time.Time { return runTime })

	result, err := c.Run(context.Background(), pPath, sPath)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var doc parsedUpload
	if err := xml.Unmarshal(result.Document, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Bulk.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(doc.Bulk.Transactions))
	}
	if got := doc.Bulk.Transactions[0].Items.Items[0].Brand; got != brand.Unknown {
		t.Errorf("brand = %q, want %q", got, brand.Unknown)
	}
	if result.ResolverStats.Unresolved != 1 {
		t.Errorf("Unresolved = %d, want 1", result.ResolverStats.Unresolved)
	}
}
