// =============================================================================
// CAPPS Converter - Transaction Filter
// =============================================================================
//
// Business-rule predicates deciding which joined records are reported. Each
// record is evaluated independently (no cross-record state) and every
// rejection is attributable to exactly one failing predicate for diagnostic
// logging. Cheap checks (date, amount, serial prefix) run before the
// join-dependent check.
//
// Predicates, all of which must pass:
//   1. Recency  - within the configured lookback window; the boundary day is
//                 included, future-dated transactions are always rejected
//   2. Minimum  - amount at or above the reporting threshold
//   3. Internal - store-serialized (ISI) inventory excluded unless configured
//   4. Match    - detail join succeeded and the description is non-empty
//
// =============================================================================

package filter

import (
	"strings"
	"time"

	"github.com/storeops/capps-converter/internal/config"
	"github.com/storeops/capps-converter/internal/types"
)

// internalSerialPrefix marks inventory the store serialized itself rather
// than items taken in from customers.
const internalSerialPrefix = "ISI"

// Accept evaluates all predicates against one enriched record. "now" is
// passed explicitly so the recency window is testable. Returns true and
// ReasonNone on acceptance, or false and the single failing reason.
func Accept(rec types.EnrichedRecord, cfg config.FilterSettings, now time.Time) (bool, types.Reason) {
	// Recency window. Age is measured in whole days, matching how the
	// lookback is communicated to operators ("last N days").
	if rec.Primary.Time.After(now) {
		return false, types.ReasonFutureDated
	}
	ageDays := int(now.Sub(rec.Primary.Time).Hours() / 24)
	if ageDays > cfg.LookbackDays {
		return false, types.ReasonTooOld
	}

	if rec.Primary.Amount < cfg.MinAmount {
		return false, types.ReasonBelowMinimum
	}

	if !cfg.IncludeInternalSerials && isInternalSerial(rec.Primary.SerialNumber) {
		return false, types.ReasonInternalInventory
	}

	if !rec.Matched {
		return false, types.ReasonNoDetailMatch
	}
	if strings.TrimSpace(rec.Detail.Description) == "" {
		return false, types.ReasonEmptyDescription
	}

	return true, types.ReasonNone
}

func isInternalSerial(serial string) bool {
	return strings.HasPrefix(strings.ToUpper(serial), internalSerialPrefix)
}
