// =============================================================================
// CAPPS Converter - File Manager Utility
// =============================================================================
//
// File handling around the pipeline: output directory management, output
// file naming and post-run archival of the source exports. Input files are
// archived only after a fully successful run; failed runs leave everything
// where the operator put it.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileManager handles output and archival paths for a run.
type FileManager struct {
	// OutputDir is where generated XML documents are written.
	OutputDir string

	// ArchiveDir is where processed input files are moved.
	ArchiveDir string
}

// NewFileManager creates a file manager for the given directories.
func NewFileManager(outputDir, archiveDir string) *FileManager {
	return &FileManager{OutputDir: outputDir, ArchiveDir: archiveDir}
}

// EnsureDirectories creates the managed directories if needed.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.OutputDir, fm.ArchiveDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// OutputPath expands the filename format into a concrete output path.
// Supported placeholders:
//
//	{uuid}      - a random UUID
//	{timestamp} - run timestamp, YYYYMMDD_HHMMSS
func (fm *FileManager) OutputPath(format string, now time.Time) string {
	name := format
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	name = strings.ReplaceAll(name, "{timestamp}", now.Format("20060102_150405"))
	return filepath.Join(fm.OutputDir, name)
}

// WriteOutput writes the document bytes to path.
func (fm *FileManager) WriteOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// ArchiveInput moves a processed input file into the archive directory. A
// timestamp suffix avoids clobbering a prior run's file of the same name.
func (fm *FileManager) ArchiveInput(path string, now time.Time) (string, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	target := filepath.Join(fm.ArchiveDir, fmt.Sprintf("%s_%s%s", stem, now.Format("20060102_150405"), ext))

	if err := moveFile(path, target); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", base, err)
	}
	return target, nil
}

// moveFile renames, falling back to copy+remove for cross-device moves
// (input exports often live on removable media).
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}
