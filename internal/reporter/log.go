package reporter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vadondaniel/image-to-webp-optimizer/internal/summary"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/util"
)

// LogReporter writes run events to a log file.
type LogReporter struct {
	w              io.Writer
	mu             sync.Mutex
	progressBucket int // Track progress in 10% buckets
}

// NewLogReporter creates a new log reporter that writes to the given writer.
func NewLogReporter(w io.Writer) *LogReporter {
	return &LogReporter{
		w:              w,
		progressBucket: -1,
	}
}

func (r *LogReporter) log(level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(r.w, "%s [%s] %s\n", timestamp, level, msg)
}

func (r *LogReporter) RunStarted(info RunStartInfo) {
	r.log("INFO", "=== RUN STARTED ===")
	r.log("INFO", "Quality: %d, strategy: %s", info.Quality, info.Strategy)
	r.log("INFO", "Folders (%d):", len(info.Folders))
	for i, folder := range info.Folders {
		r.log("INFO", "  %d. %s", i+1, folder)
	}
	r.log("INFO", "Images: %d total, %d to convert", info.TotalImages, info.ExpectedConversions)
}

func (r *LogReporter) FolderStarted(info FolderStartInfo) {
	r.log("INFO", "--- Folder %d of %d: %s ---", info.Index, info.TotalFolders, info.Folder)
	r.log("INFO", "Convertible: %d, already WebP: %d", info.Convertible, info.SkippedExisting)
}

func (r *LogReporter) Progress(percent int) {
	// Log progress at 10% intervals
	bucket := percent / 10
	r.mu.Lock()
	if bucket > r.progressBucket && bucket <= 10 {
		r.progressBucket = bucket
		r.mu.Unlock()
		r.log("INFO", "Progress: %d%%", percent)
	} else {
		r.mu.Unlock()
	}
}

func (r *LogReporter) Status(message string) {
	r.log("INFO", "%s", message)
}

func (r *LogReporter) FolderComplete(folder summary.FolderSummary) {
	r.log("INFO", "Folder done: %s", filepath.Base(folder.Folder))
	r.log("INFO", "  Converted: %d, skipped: %d, errors: %d",
		folder.Converted, folder.SkippedExisting, len(folder.Errors))
	r.log("INFO", "  Size: %s -> %s (saved %s, %.1f%% reduction)",
		util.FormatBytesReadable(folder.BytesOriginal),
		util.FormatBytesReadable(folder.BytesConverted),
		util.FormatBytesReadable(folder.BytesSaved()),
		util.CalculateSizeReduction(folder.BytesOriginal, folder.BytesConverted))
	if folder.ArchivePath != "" {
		r.log("INFO", "  Archive: %s (%s)",
			folder.ArchivePath, util.FormatBytesReadable(folder.ArchiveSize))
	}
	for _, msg := range folder.Errors {
		r.log("WARN", "  - %s", msg)
	}
}

func (r *LogReporter) RunComplete(run summary.RunSummary) {
	r.log("INFO", "=== RUN COMPLETE ===")
	if run.Cancelled {
		r.log("WARN", "Run was cancelled")
	}
	r.log("INFO", "%d of %d expected conversions done across %d folders",
		run.Totals.Converted, run.ExpectedConversions, len(run.Folders))
	r.log("INFO", "Skipped: %d, errors: %d, archives: %d",
		run.Totals.SkippedExisting, run.Totals.Errors, run.Totals.Archives)
	r.log("INFO", "Size: %s -> %s (saved %s, %.1f%% reduction)",
		util.FormatBytesReadable(run.Totals.BytesOriginal),
		util.FormatBytesReadable(run.Totals.BytesConverted),
		util.FormatBytesReadable(run.Totals.BytesSaved),
		util.CalculateSizeReduction(run.Totals.BytesOriginal, run.Totals.BytesConverted))
	r.log("INFO", "Time: %s", util.FormatDurationFromSecs(int64(run.DurationSeconds)))
}

func (r *LogReporter) Warning(message string) {
	r.log("WARN", "%s", message)
}

func (r *LogReporter) Error(err ReporterError) {
	r.log("ERROR", "%s: %s", err.Title, err.Message)
	if err.Context != "" {
		r.log("ERROR", "  Context: %s", err.Context)
	}
	if err.Suggestion != "" {
		r.log("ERROR", "  Suggestion: %s", err.Suggestion)
	}
}

func (r *LogReporter) Verbose(message string) {
	r.log("DEBUG", "%s", strings.TrimRight(message, "\n"))
}
