// =============================================================================
// CAPPS Converter - Convert Command
// =============================================================================
//
// The main command: runs the conversion pipeline over one purchases/serials
// export pair and writes the CAPPS upload document.
//
// COMMAND USAGE:
//   capps convert <purchases.csv> <serials.csv|.xlsx> [flags]
//
// FLAGS:
//   --output    : Explicit output file path (default: per config naming)
//   --license   : Secondhand-dealer license number (overrides config)
//   --employee  : Employee name for the store block (overrides config)
//   --dry-run   : Run the pipeline and report, but write nothing
//   --upload    : Upload the document to CAPPS after writing it
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/storeops/capps-converter/internal/brand"
	"github.com/storeops/capps-converter/internal/converter"
	"github.com/storeops/capps-converter/internal/uploader"
	"github.com/storeops/capps-converter/pkg/utils"
)

var (
	outputPath   string
	licenseFlag  string
	employeeFlag string
	dryRun       bool
	uploadAfter  bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <purchases.csv> <serials.csv>",
	Short: "Convert a purchases/serials export pair to CAPPS XML",
	Long: `The convert command joins the purchases export against the serials export,
applies the reporting filters (lookback window, minimum amount, internal
inventory, detail match), resolves each item's brand through the cache /
classifier / pattern chain, and writes a schema-exact CAPPS bulk-upload
document.

Fatal input problems (missing files, missing serials columns) abort before
any output is written. Everything else degrades gracefully and shows up in
the run summary.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output XML file path")
	convertCmd.Flags().StringVarP(&licenseFlag, "license", "l", "", "Secondhand-dealer license number")
	convertCmd.Flags().StringVarP(&employeeFlag, "employee", "e", "", "Employee name for transactions")
	convertCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the pipeline without writing output")
	convertCmd.Flags().BoolVar(&uploadAfter, "upload", false, "Upload the document to CAPPS after writing")
}

func runConvert(cmd *cobra.Command, purchasesPath, serialsPath string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	// Flag overrides.
	if licenseFlag != "" {
		cfg.LicenseNumber = licenseFlag
	}
	if employeeFlag != "" {
		cfg.EmployeeName = employeeFlag
	}
	if cfg.LicenseNumber == "" {
		return fmt.Errorf("a license number is required (--license or license_number in %s)", cfgFile)
	}

	ctx := cmd.Context()

	// Brand cache degradations are logged, never fatal.
	cache, err := brand.OpenCache(cfg.CacheFile)
	if err != nil {
		log.Warn().Err(err).Msg("brand cache degraded")
	}

	resolver, err := brand.BuildResolver(ctx, cache, cfg.Classifier, log)
	if err != nil {
		return fmt.Errorf("configuring brand resolver: %w", err)
	}

	result, err := converter.New(cfg, resolver, log).Run(ctx, purchasesPath, serialsPath)
	if err != nil {
		return err
	}

	fmt.Printf("=== Conversion Complete ===\n")
	fmt.Printf("Serials loaded:  %d\n", result.Summary.DetailRows)
	fmt.Printf("Purchase rows:   %d\n", result.Summary.PrimaryRows)
	fmt.Printf("Included:        %d\n", result.Summary.Included)
	fmt.Printf("Filtered:        %d\n", result.Summary.TotalFiltered())
	fmt.Printf("Malformed rows:  %d\n", result.Summary.MalformedRows)

	if dryRun {
		fmt.Println("\nDry run: no output written.")
		return nil
	}

	now := time.Now()
	fm := utils.NewFileManager(cfg.Output.Dir, cfg.Output.ArchiveDir)

	target := outputPath
	if target == "" {
		if err := fm.EnsureDirectories(); err != nil {
			return err
		}
		target = fm.OutputPath(cfg.Output.FilenameFormat, now)
	}

	if err := fm.WriteOutput(target, result.Document); err != nil {
		return err
	}
	fmt.Printf("\nXML saved: %s\n", target)

	if cfg.Output.ArchiveInputs {
		for _, input := range []string{purchasesPath, serialsPath} {
			archived, err := fm.ArchiveInput(input, now)
			if err != nil {
				log.Warn().Err(err).Msg("input not archived")
				continue
			}
			log.Info().Str("file", archived).Msg("input archived")
		}
	}

	if uploadAfter {
		receipt, err := uploader.New(cfg.Upload, log).Upload(ctx, target)
		if err != nil {
			return fmt.Errorf("upload failed (document kept at %s): %w", target, err)
		}
		printReceipt(receipt)
	}

	return nil
}

func printReceipt(receipt *uploader.Receipt) {
	fmt.Printf("Upload accepted. Submission ID: %s\n", receipt.SubmissionID)
	if receipt.Processed {
		fmt.Println("Processing complete.")
	} else {
		fmt.Println("Processing still pending; check the CAPPS portal for final status.")
	}
}
