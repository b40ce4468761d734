// Package optimizer provides a Go library for batch image-to-WebP
// conversion with cwebp.
//
// Given a set of folders, it converts every eligible image through the
// external cwebp encoder, aggregates per-folder and per-run statistics,
// and applies one of two output strategies: replacing the originals in
// place, or repacking the converted images into a zip/cbz archive.
//
// Basic usage:
//
//	conv, err := optimizer.New(
//	    []string{"/photos/batch1"},
//	    optimizer.WithQuality(80),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Run(ctx, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Converted %d images, saved %d bytes\n",
//	    result.Totals.Converted, result.Totals.BytesSaved)
package optimizer

import (
	"context"

	"github.com/vadondaniel/image-to-webp-optimizer/internal/config"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/encoder"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/reporter"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/run"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/scan"
)

// ArchiveFormat selects the archive container used in archive mode.
type ArchiveFormat = config.ArchiveFormat

// Supported archive formats. Both produce identical zip bytes; CBZ
// carries the comic-reader extension.
const (
	ArchiveZip = config.ArchiveZip
	ArchiveCBZ = config.ArchiveCBZ
)

// ErrEncoderNotFound is returned by Run and RunWithReporter when the cwebp
// binary cannot be resolved. The returned summary is still valid.
var ErrEncoderNotFound = run.ErrEncoderNotFound

// Converter is the main entry point for conversion runs.
type Converter struct {
	config *config.Config
}

// Option configures the converter.
type Option func(*config.Config)

// New creates a new Converter for the given folders.
func New(folders []string, opts ...Option) (*Converter, error) {
	cfg := config.NewConfig(folders...)

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Converter{config: cfg}, nil
}

// WithQuality sets the cwebp quality factor (10-100). A PNG source at
// quality 100 is encoded losslessly.
func WithQuality(quality int) Option {
	return func(c *config.Config) {
		c.Quality = quality
	}
}

// WithArchiveFormat selects the archive container for archive mode.
func WithArchiveFormat(format ArchiveFormat) Option {
	return func(c *config.Config) {
		c.ArchiveFormat = format
	}
}

// WithReplaceOriginals replaces source images in place instead of building
// archives. Takes precedence over any archive format.
func WithReplaceOriginals() Option {
	return func(c *config.Config) {
		c.ReplaceOriginals = true
	}
}

// WithSkipExistingWebP controls whether images already in WebP format are
// excluded from conversion. Enabled by default.
func WithSkipExistingWebP(skip bool) Option {
	return func(c *config.Config) {
		c.SkipExistingWebP = skip
	}
}

// WithEncoderPath overrides the cwebp binary looked up on PATH.
func WithEncoderPath(path string) Option {
	return func(c *config.Config) {
		c.EncoderPath = path
	}
}

// Run executes one conversion run on the calling goroutine. Events are
// delivered to the handler as they occur; a nil handler discards them.
// Cancel the context to stop the run at the next checkpoint; the returned
// summary then has Cancelled set. A summary is always returned, alongside
// ErrEncoderNotFound when the encoder cannot be resolved.
func (c *Converter) Run(ctx context.Context, handler EventHandler) (*RunSummary, error) {
	var rep reporter.Reporter = reporter.NullReporter{}
	if handler != nil {
		rep = newEventReporter(handler)
	}
	return run.Process(ctx, c.config, rep)
}

// RunWithReporter executes one conversion run using a custom Reporter.
// This provides direct access to all run events, unlike Run which uses
// the EventHandler abstraction.
func (c *Converter) RunWithReporter(ctx context.Context, rep Reporter) (*RunSummary, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	return run.Process(ctx, c.config, rep)
}

// ScanFolder enumerates one folder's eligible images, partitioned by the
// skip flag, without converting anything.
func ScanFolder(folder string, skipExistingWebP bool) (*FolderBatch, error) {
	return scan.ScanFolder(folder, skipExistingWebP)
}

// FolderBatch holds one folder's eligible images, partitioned at scan time.
type FolderBatch = scan.FolderBatch

// EncoderAvailable reports whether the cwebp binary can be found. An empty
// path checks for cwebp on PATH.
func EncoderAvailable(path string) bool {
	return encoder.New(path).Available()
}
