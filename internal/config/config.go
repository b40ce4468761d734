// Package config provides configuration types and defaults for webpopt.
package config

import "fmt"

// ArchiveFormat selects the container extension for archive mode.
// Both formats share the same deflate-compressed zip layout; CBZ exists
// so comic readers pick the file up directly.
type ArchiveFormat string

const (
	// ArchiveZip produces a plain .zip archive.
	ArchiveZip ArchiveFormat = "zip"

	// ArchiveCBZ produces a .cbz archive (zip bytes, comic-reader extension).
	ArchiveCBZ ArchiveFormat = "cbz"
)

// Extension returns the file extension for the archive format, without dot.
func (f ArchiveFormat) Extension() string {
	return string(f)
}

// Default constants
const (
	// MinQuality is the lowest accepted cwebp quality factor.
	MinQuality = 10

	// MaxQuality is the highest accepted cwebp quality factor.
	MaxQuality = 100

	// DefaultQuality is the default cwebp quality factor.
	DefaultQuality = 75

	// DefaultArchiveFormat is the archive container used when none is selected.
	DefaultArchiveFormat = ArchiveZip
)

// Config holds all configuration for one conversion run.
type Config struct {
	// Folders to process, in the order given.
	Folders []string

	// Quality is the cwebp quality factor (10-100). A PNG source at
	// quality 100 requests lossless encoding instead.
	Quality int

	// ArchiveFormat selects the archive container in archive mode.
	ArchiveFormat ArchiveFormat

	// ReplaceOriginals replaces source images in place instead of
	// archiving. Takes precedence over archive mode when both are set.
	ReplaceOriginals bool

	// SkipExistingWebP excludes images already in WebP format from
	// conversion. They still count toward run progress.
	SkipExistingWebP bool

	// EncoderPath overrides the cwebp binary looked up on PATH.
	EncoderPath string

	// Verbose enables verbose reporter output.
	Verbose bool
}

// NewConfig creates a new Config with default values for the given folders.
func NewConfig(folders ...string) *Config {
	return &Config{
		Folders:          folders,
		Quality:          DefaultQuality,
		ArchiveFormat:    DefaultArchiveFormat,
		SkipExistingWebP: true,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if len(c.Folders) == 0 {
		return fmt.Errorf("at least one folder is required")
	}

	if c.Quality < MinQuality || c.Quality > MaxQuality {
		return fmt.Errorf("quality must be %d-%d, got %d", MinQuality, MaxQuality, c.Quality)
	}

	switch c.ArchiveFormat {
	case ArchiveZip, ArchiveCBZ:
	default:
		return fmt.Errorf("archive format must be %q or %q, got %q", ArchiveZip, ArchiveCBZ, c.ArchiveFormat)
	}

	return nil
}
