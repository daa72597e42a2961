// =============================================================================
// CAPPS Converter - Main Entry Point
// =============================================================================
//
// Command-line tool that converts AIMsi point-of-sale CSV exports into the
// CAPPS secondhand-dealer bulk-upload XML format.
//
// USAGE:
//   capps convert <purchases.csv> <serials.csv>  - Run the conversion pipeline
//   capps cache list                             - Inspect the brand cache
//   capps upload <file.xml>                      - Upload a finished document
//   capps version                                - Display the version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core pipeline (readers, join, filter, brand, mapping, capps)
//   - pkg/       : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/storeops/capps-converter/cmd"
)

func main() {
	cmd.Execute()
}
