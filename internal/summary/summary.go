// Package summary provides the structured per-folder and per-run statistics
// emitted by a conversion run.
package summary

import "time"

// FolderSummary contains the final statistics for one processed folder.
// It is sealed exactly once, at the end of that folder's processing.
type FolderSummary struct {
	Folder          string   `json:"folder"`
	Converted       int      `json:"converted"`
	SkippedExisting int      `json:"skipped_existing"`
	Errors          []string `json:"errors"`
	BytesOriginal   int64    `json:"bytes_original"`
	BytesConverted  int64    `json:"bytes_converted"`
	ArchiveSize     int64    `json:"archive_size,omitempty"`
	ArchivePath     string   `json:"archive_path,omitempty"`
	DurationSeconds float64  `json:"duration_seconds"`
}

// BytesSaved returns the folder's byte savings, clamped at zero.
func (f *FolderSummary) BytesSaved() int64 {
	return clampSaved(f.BytesOriginal, f.BytesConverted)
}

// Totals aggregates counters across all folders of a run.
type Totals struct {
	Converted       int   `json:"converted"`
	SkippedExisting int   `json:"skipped_existing"`
	Errors          int   `json:"errors"`
	BytesOriginal   int64 `json:"bytes_original"`
	BytesConverted  int64 `json:"bytes_converted"`
	BytesSaved      int64 `json:"bytes_saved"`
	Archives        int   `json:"archives"`
}

// RunSummary contains the final statistics for one conversion run.
// A run always produces exactly one RunSummary, whether it completed
// normally, was cancelled, or exited early because the encoder is missing.
type RunSummary struct {
	Cancelled           bool            `json:"cancelled"`
	DurationSeconds     float64         `json:"duration_seconds"`
	TotalImages         int             `json:"total_images"`
	ProcessedImages     int             `json:"processed_images"`
	ExpectedConversions int             `json:"expected_conversions"`
	Totals              Totals          `json:"totals"`
	Folders             []FolderSummary `json:"folders"`
}

// NewRunSummary builds a RunSummary from sealed folder summaries,
// aggregating the per-folder counters and clamping byte savings. A nil
// folder slice becomes an empty one so the JSON form is always a list.
func NewRunSummary(cancelled bool, elapsed time.Duration, totalImages, processed, expected int, folders []FolderSummary) *RunSummary {
	if folders == nil {
		folders = []FolderSummary{}
	}
	run := &RunSummary{
		Cancelled:           cancelled,
		DurationSeconds:     elapsed.Seconds(),
		TotalImages:         totalImages,
		ProcessedImages:     processed,
		ExpectedConversions: expected,
		Folders:             folders,
	}

	for _, f := range folders {
		run.Totals.Converted += f.Converted
		run.Totals.SkippedExisting += f.SkippedExisting
		run.Totals.Errors += len(f.Errors)
		run.Totals.BytesOriginal += f.BytesOriginal
		run.Totals.BytesConverted += f.BytesConverted
		if f.ArchivePath != "" {
			run.Totals.Archives++
		}
	}
	run.Totals.BytesSaved = clampSaved(run.Totals.BytesOriginal, run.Totals.BytesConverted)

	return run
}

func clampSaved(original, converted int64) int64 {
	if saved := original - converted; saved > 0 {
		return saved
	}
	return 0
}
