package csvreader

import (
	"strings"
	"testing"
)

func TestReadDetailsCSV(t *testing.T) {
	csv := `Serial Number,Description,Subcategory
SN4482,GIBSON LES PAUL STANDARD,1
SN9921,PEARL EXPORT 5PC KIT,2
,ROW WITHOUT SERIAL,3
`
	path := writeTempFile(t, "serials.csv", csv)

	details, err := ReadDetails(path)
	if err != nil {
		t.Fatalf("ReadDetails: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("got %d details, want 2 (empty serial dropped)", len(details))
	}
	if details[0].SerialNumber != "SN4482" || details[0].Description != "GIBSON LES PAUL STANDARD" || details[0].SubcategoryID != "1" {
		t.Errorf("first detail = %+v", details[0])
	}
}

func TestReadDetailsHeaderAliases(t *testing.T) {
	headers := []string{
		"Serial Number,Description,Subcategory",
		"serial,item description,sub-category",
		"SERIAL_NO,Desc,SubCategoryID",
		"Serial#,DESCRIPTION,subcat",
	}

	for _, header := range headers {
		t.Run(header, func(t *testing.T) {
			path := writeTempFile(t, "serials.csv", header+"\nSN1,SOMETHING,4\n")
			details, err := ReadDetails(path)
			if err != nil {
				t.Fatalf("ReadDetails: %v", err)
			}
			if len(details) != 1 || details[0].SubcategoryID != "4" {
				t.Errorf("details = %+v, want one record with subcategory 4", details)
			}
		})
	}
}

func TestReadDetailsMissingColumnIsFatal(t *testing.T) {
	path := writeTempFile(t, "serials.csv", "Serial Number,Subcategory\nSN1,4\n")

	_, err := ReadDetails(path)
	if err == nil {
		t.Fatal("missing description column must be fatal")
	}
	if !strings.Contains(err.Error(), "description") {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestReadDetailsEmptyFile(t *testing.T) {
	path := writeTempFile(t, "serials.csv", "")
	if _, err := ReadDetails(path); err == nil {
		t.Error("empty serials file must be fatal")
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Serial Number", "serialnumber"},
		{"serial_number", "serialnumber"},
		{"Serial-No", "serialno"},
		{"  DESCRIPTION  ", "description"},
	}
	for _, tt := range tests {
		if got := normalizeHeader(tt.in); got != tt.want {
			t.Errorf("normalizeHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
