package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vadondaniel/image-to-webp-optimizer/internal/scan"
)

// ReplaceInPlace deletes the folder's convertible originals and moves every
// produced output from the temporary directory into the source folder.
type ReplaceInPlace struct{}

// Name identifies the strategy in status output.
func (s *ReplaceInPlace) Name() string { return "replace originals" }

// Finalize deletes each convertible original (already missing is not an
// error), then moves all produced outputs into the source folder. Per-file
// errors are collected without aborting remaining files. The temporary
// directory is removed regardless of partial failure.
func (s *ReplaceInPlace) Finalize(batch *scan.FolderBatch, tempDir string) (Result, []string) {
	defer func() { _ = os.RemoveAll(tempDir) }()

	var errs []string

	// Originals go first so a source .webp re-encode can land on its own path.
	for _, src := range batch.Convertible {
		if err := os.Remove(src); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("delete %s: %v", filepath.Base(src), err))
		}
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		errs = append(errs, fmt.Sprintf("read output directory: %v", err))
		return Result{}, errs
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		from := filepath.Join(tempDir, entry.Name())
		to := filepath.Join(batch.Folder, entry.Name())
		if err := os.Rename(from, to); err != nil {
			errs = append(errs, fmt.Sprintf("move %s: %v", entry.Name(), err))
		}
	}

	return Result{}, errs
}
