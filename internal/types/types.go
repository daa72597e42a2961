// =============================================================================
// CAPPS Converter - Shared Types
// =============================================================================
//
// This package contains the record types that flow through the conversion
// pipeline. They are shared by:
//   - csvreader (produces PrimaryRecord / DetailRecord)
//   - join      (produces EnrichedRecord)
//   - filter    (consumes EnrichedRecord, produces Reason)
//   - converter (produces OutputItem and the run Summary)
//
// =============================================================================

package types

import "time"

// =============================================================================
// INPUT RECORDS
// =============================================================================

// PrimaryRecord is one row of the AIMsi purchases export. The export has no
// header row; fields are positional. Records are immutable once parsed.
type PrimaryRecord struct {
	// Time is the parsed transaction timestamp.
	Time time.Time

	// RawTime is the original datetime string ("11/10/2025 11:50:05 AM"),
	// kept for diagnostics.
	RawTime string

	// TransactionNumber is the AIMsi transaction identifier.
	TransactionNumber string

	// Amount is the parsed monetary amount.
	Amount float64

	// RawAmount is the amount exactly as exported (may carry "$" and commas).
	// The upload document carries the cleaned form of this string.
	RawAmount string

	// CategoryID is the AIMsi category code.
	CategoryID string

	// SerialNumber references the serials export.
	SerialNumber string

	// RowNumber is the 1-based row in the source file, for diagnostics.
	RowNumber int
}

// DetailRecord is one row of the serials export, keyed by serial number.
type DetailRecord struct {
	SerialNumber  string
	Description   string
	SubcategoryID string
}

// EnrichedRecord is a PrimaryRecord joined with its matching DetailRecord.
// Created fresh per primary row; Brand and Article are attached after
// filtering, immediately before serialization.
type EnrichedRecord struct {
	Primary PrimaryRecord
	Detail  DetailRecord

	// Matched reports whether the serial number was found in the detail
	// table. Unmatched records carry an empty Detail and are filtered out
	// downstream rather than rejected at join time.
	Matched bool
}

// =============================================================================
// OUTPUT RECORDS
// =============================================================================

// OutputItem is the final per-record structure destined for the CAPPS
// document. Built once per surviving EnrichedRecord; never mutated after
// construction.
type OutputItem struct {
	// TransactionTime is the normalized timestamp (YYYY-MM-DDTHH:MM:SS).
	TransactionTime string

	// TransactionType is the fixed CAPPS transaction type ("BUY").
	TransactionType string

	LoanBuyNumber string
	Amount        string
	Article       string
	Brand         string
	Model         string
	SerialNumber  string
	Description   string
	Color         string
}

// =============================================================================
// FILTER REASONS
// =============================================================================

// Reason identifies the single failing predicate that excluded a record.
type Reason string

const (
	// ReasonNone marks an accepted record.
	ReasonNone Reason = ""

	// ReasonTooOld marks a transaction older than the lookback window.
	ReasonTooOld Reason = "outside_lookback_window"

	// ReasonFutureDated marks a transaction dated after "now".
	ReasonFutureDated Reason = "future_dated"

	// ReasonBelowMinimum marks an amount under the reporting threshold.
	ReasonBelowMinimum Reason = "below_minimum_amount"

	// ReasonInternalInventory marks store-serialized (ISI) inventory.
	ReasonInternalInventory Reason = "internal_inventory"

	// ReasonNoDetailMatch marks a serial absent from the serials export.
	ReasonNoDetailMatch Reason = "no_detail_match"

	// ReasonEmptyDescription marks a matched serial with no description.
	ReasonEmptyDescription Reason = "empty_description"
)

// =============================================================================
// RUN SUMMARY
// =============================================================================

// Summary is the diagnostic record of one conversion run. It is the only
// observability surface of a batch run besides the log.
type Summary struct {
	// DetailRows is the number of serial rows loaded into the lookup table.
	DetailRows int

	// PrimaryRows is the number of purchase rows read.
	PrimaryRows int

	// MalformedRows counts rows skipped because they could not be parsed
	// (short rows, bad dates, bad amounts). These are not filter rejections.
	MalformedRows int

	// Included is the number of records written to the document.
	Included int

	// Filtered counts rejections per failing predicate.
	Filtered map[Reason]int
}

// NewSummary returns a Summary ready for counting.
func NewSummary() *Summary {
	return &Summary{Filtered: make(map[Reason]int)}
}

// Reject records one filtered-out record.
func (s *Summary) Reject(reason Reason) {
	s.Filtered[reason]++
}

// TotalFiltered returns the number of records rejected by any predicate.
func (s *Summary) TotalFiltered() int {
	total := 0
	for _, n := range s.Filtered {
		total += n
	}
	return total
}
