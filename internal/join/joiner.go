// =============================================================================
// CAPPS Converter - Record Joiner
// =============================================================================
//
// Joins purchase rows against the serials export. The detail table is built
// eagerly, once, before any primary row is processed; joins are O(1) map
// lookups afterwards. A primary row whose serial is absent from the table
// yields an EnrichedRecord flagged unmatched rather than an error - the
// filter drops unmatched records with a reason code downstream.
//
// =============================================================================

package join

import (
	"github.com/storeops/capps-converter/internal/types"
)

// Table is the serial number -> detail record lookup.
type Table struct {
	details map[string]types.DetailRecord
}

// NewTable builds the lookup from the loaded detail rows. Duplicate serials
// follow last-write-wins in input order; rows with an empty serial are
// dropped (they can never join).
func NewTable(details []types.DetailRecord) *Table {
	t := &Table{details: make(map[string]types.DetailRecord, len(details))}
	for _, d := range details {
		if d.SerialNumber == "" {
			continue
		}
		t.details[d.SerialNumber] = d
	}
	return t
}

// Len returns the number of distinct serials in the table.
func (t *Table) Len() int {
	return len(t.details)
}

// Join enriches a primary row with its matching detail record. Pure
// per-row transformation; no side effects.
func (t *Table) Join(primary types.PrimaryRecord) types.EnrichedRecord {
	detail, ok := t.details[primary.SerialNumber]
	if !ok {
		return types.EnrichedRecord{Primary: primary}
	}
	return types.EnrichedRecord{Primary: primary, Detail: detail, Matched: true}
}
