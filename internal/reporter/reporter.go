// Package reporter defines the outbound notification surface of a
// conversion run and ships the built-in reporter implementations.
package reporter

import "github.com/vadondaniel/image-to-webp-optimizer/internal/summary"

// RunStartInfo describes the run before the first folder is processed.
type RunStartInfo struct {
	Folders             []string
	TotalImages         int
	ExpectedConversions int
	Quality             int
	Strategy            string
}

// FolderStartInfo describes the folder about to be processed.
type FolderStartInfo struct {
	Folder          string
	Index           int
	TotalFolders    int
	Convertible     int
	SkippedExisting int
}

// ReporterError contains error information with optional context.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// Reporter receives the outbound notifications of a run: progress,
// status text, and the terminal summary. Implementations must tolerate
// calls from the run's background worker goroutine.
type Reporter interface {
	// RunStarted is emitted once, after scanning and before folder work.
	RunStarted(info RunStartInfo)

	// FolderStarted is emitted before each folder's conversions.
	FolderStarted(info FolderStartInfo)

	// Progress reports overall run progress. Values are monotonic
	// non-decreasing within a run and never exceed 100.
	Progress(percent int)

	// Status reports a free-form status line.
	Status(message string)

	// FolderComplete is emitted with each sealed folder summary.
	FolderComplete(folder summary.FolderSummary)

	// RunComplete is emitted exactly once with the terminal run summary.
	RunComplete(run summary.RunSummary)

	// Warning reports a non-fatal condition.
	Warning(message string)

	// Error reports a recorded error.
	Error(err ReporterError)

	// Verbose reports diagnostic detail.
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) RunStarted(RunStartInfo)               {}
func (NullReporter) FolderStarted(FolderStartInfo)         {}
func (NullReporter) Progress(int)                          {}
func (NullReporter) Status(string)                         {}
func (NullReporter) FolderComplete(summary.FolderSummary)  {}
func (NullReporter) RunComplete(summary.RunSummary)        {}
func (NullReporter) Warning(string)                        {}
func (NullReporter) Error(ReporterError)                   {}
func (NullReporter) Verbose(string)                        {}
