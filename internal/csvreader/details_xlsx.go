package csvreader

import (
	"fmt"

	"github.com/storeops/capps-converter/internal/types"
	"github.com/xuri/excelize/v2"
)

// readDetailsXLSX reads a serials export saved as a spreadsheet. Some AIMsi
// installs export reports through Excel; the first sheet carries the same
// header-plus-rows layout as the CSV export.
func readDetailsXLSX(path string) ([]types.DetailRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open serials spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("serials spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read serials sheet %q: %w", sheets[0], err)
	}

	return detailsFromRows(rows)
}
