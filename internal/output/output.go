// Package output provides the two mutually exclusive output strategies for
// a conversion run: replacing originals in place, or repacking a folder's
// converted images into an archive.
package output

import (
	"github.com/vadondaniel/image-to-webp-optimizer/internal/config"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/scan"
)

// Result carries archive metadata produced by a strategy. Zero for the
// replace strategy.
type Result struct {
	ArchivePath string
	ArchiveSize int64
}

// Strategy finalizes one folder's conversion outputs. Implementations must
// remove the temporary output directory before returning, success or
// failure, and collect per-file errors instead of aborting.
type Strategy interface {
	// Name identifies the strategy in status output.
	Name() string

	// Finalize consumes the produced outputs in tempDir for the given
	// folder batch. Returned error strings are folder-scoped and ordered.
	Finalize(batch *scan.FolderBatch, tempDir string) (Result, []string)
}

// ForConfig selects the single strategy for a run. Replace mode takes
// precedence over archive creation when both are requested.
func ForConfig(cfg *config.Config) Strategy {
	if cfg.ReplaceOriginals {
		return &ReplaceInPlace{}
	}
	return &ArchiveBuilder{Format: cfg.ArchiveFormat}
}
