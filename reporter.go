// Package optimizer provides a Go library for batch image-to-WebP
// conversion with cwebp.
//
// This file re-exports the internal Reporter interface and associated types
// to allow callers to receive all run events directly.

package optimizer

import (
	"github.com/vadondaniel/image-to-webp-optimizer/internal/reporter"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/summary"
)

// Reporter defines the interface for progress reporting during a run.
// Implement this interface to receive detailed events about run progress.
type Reporter = reporter.Reporter

// NullReporter is a no-op reporter that discards all updates.
type NullReporter = reporter.NullReporter

// RunStartInfo describes the run before the first folder is processed.
type RunStartInfo = reporter.RunStartInfo

// FolderStartInfo describes the folder about to be processed.
type FolderStartInfo = reporter.FolderStartInfo

// ReporterError contains error information.
type ReporterError = reporter.ReporterError

// RunSummary contains the final statistics for one conversion run.
type RunSummary = summary.RunSummary

// FolderSummary contains the final statistics for one processed folder.
type FolderSummary = summary.FolderSummary

// Totals aggregates counters across all folders of a run.
type Totals = summary.Totals
