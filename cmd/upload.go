// =============================================================================
// CAPPS Converter - Upload Command
// =============================================================================
//
// Uploads a previously generated document to the CAPPS bulk-upload API.
// Kept separate from convert so operators can review the XML before it
// leaves the store, and retry failed uploads without re-running the
// conversion.
//
// COMMAND USAGE:
//   capps upload <file.xml>
//
// =============================================================================

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/storeops/capps-converter/internal/uploader"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file.xml>",
	Short: "Upload a generated document to CAPPS",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		receipt, err := uploader.New(cfg.Upload, log).Upload(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		printReceipt(receipt)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
