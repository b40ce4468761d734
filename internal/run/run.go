// Package run drives a conversion run: folders sequentially, one image at
// a time, with cooperative cancellation and aggregate statistics.
package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vadondaniel/image-to-webp-optimizer/internal/config"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/encoder"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/output"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/progress"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/reporter"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/scan"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/summary"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/util"
)

// TempDirName is the per-folder temporary output subdirectory. It is
// created fresh for each folder and never trusted across runs.
const TempDirName = ".webpopt_tmp"

// ErrEncoderNotFound is returned by Process when the encoder binary cannot
// be resolved. The run's summary is still produced.
var ErrEncoderNotFound = errors.New("cwebp encoder not found")

type runner struct {
	cfg      *config.Config
	rep      reporter.Reporter
	inv      *encoder.Invoker
	strategy output.Strategy

	start       time.Time
	totalUnits  int
	expected    int
	processed   int
	lastPercent int
}

// Process executes one conversion run over the configured folders and
// always returns a RunSummary, whether the run completed, was cancelled,
// or exited early. The error is non-nil only when the encoder binary
// cannot be resolved, in which case it is ErrEncoderNotFound; cancellation
// is not an error. Cancellation is observed via ctx at enumerated
// checkpoints only; an in-flight encoder invocation or archive write is
// never interrupted.
func Process(ctx context.Context, cfg *config.Config, rep reporter.Reporter) (*summary.RunSummary, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	start := time.Now()
	inv := encoder.New(cfg.EncoderPath)

	path, err := inv.Path()
	if err != nil {
		rep.Error(reporter.ReporterError{
			Title:      "Encoder Not Found",
			Message:    fmt.Sprintf("%s was not found on PATH", inv.Binary),
			Suggestion: "Install the WebP tools (libwebp) so cwebp is available",
		})
		run := summary.NewRunSummary(false, time.Since(start), 0, 0, 0, nil)
		rep.RunComplete(*run)
		return run, ErrEncoderNotFound
	}
	rep.Verbose(fmt.Sprintf("Using encoder %s", path))

	var batches []*scan.FolderBatch
	totalFiles, totalConvertible := 0, 0
	for _, folder := range cfg.Folders {
		batch, err := scan.ScanFolder(folder, cfg.SkipExistingWebP)
		if err != nil {
			rep.Warning(fmt.Sprintf("Skipping folder: %v", err))
			continue
		}
		batches = append(batches, batch)
		totalFiles += len(batch.AllImages)
		totalConvertible += len(batch.Convertible)
	}

	// The progress denominator is the total file count; it falls back to
	// the convertible count only when the file count is exactly zero.
	totalUnits := totalFiles
	if totalUnits == 0 {
		totalUnits = totalConvertible
	}

	if totalConvertible == 0 {
		rep.Status("Nothing to convert")
		run := summary.NewRunSummary(false, time.Since(start), totalUnits, 0, 0, nil)
		rep.RunComplete(*run)
		return run, nil
	}

	r := &runner{
		cfg:         cfg,
		rep:         rep,
		inv:         inv,
		strategy:    output.ForConfig(cfg),
		start:       start,
		totalUnits:  totalUnits,
		expected:    totalConvertible,
		lastPercent: -1,
	}

	folderPaths := make([]string, len(batches))
	for i, batch := range batches {
		folderPaths[i] = batch.Folder
	}
	rep.RunStarted(reporter.RunStartInfo{
		Folders:             folderPaths,
		TotalImages:         totalUnits,
		ExpectedConversions: totalConvertible,
		Quality:             cfg.Quality,
		Strategy:            r.strategy.Name(),
	})

	return r.process(ctx, batches), nil
}

func (r *runner) process(ctx context.Context, batches []*scan.FolderBatch) *summary.RunSummary {
	var folders []summary.FolderSummary

	for i, batch := range batches {
		// Checkpoint: before preparing this folder's output. A folder
		// not yet started leaves no summary entry.
		if ctx.Err() != nil {
			return r.finishCancelled(folders)
		}

		r.rep.FolderStarted(reporter.FolderStartInfo{
			Folder:          batch.Folder,
			Index:           i + 1,
			TotalFolders:    len(batches),
			Convertible:     len(batch.Convertible),
			SkippedExisting: len(batch.SkippedWebP),
		})

		folderStart := time.Now()
		fs := summary.FolderSummary{
			Folder:          batch.Folder,
			SkippedExisting: len(batch.SkippedWebP),
			Errors:          []string{},
		}

		util.CheckDiskSpace(batch.Folder, func(format string, args ...any) {
			r.rep.Warning(fmt.Sprintf(format, args...))
		})

		tempDir := filepath.Join(batch.Folder, TempDirName)
		if err := prepareTempDir(batch.Folder, tempDir); err != nil {
			// Folder-scoped: one error recorded, loop continues.
			fs.Errors = append(fs.Errors, fmt.Sprintf("prepare output directory: %v", err))
			folders = r.sealFolder(folders, fs, folderStart)
			continue
		}

		if len(batch.Convertible) == 0 && !r.cfg.ReplaceOriginals {
			r.rep.Status(fmt.Sprintf("Nothing to convert in %s, skipping", batch.Folder))
			_ = os.RemoveAll(tempDir)
			folders = r.sealFolder(folders, fs, folderStart)
			continue
		}

		cancelled := false
		for _, src := range batch.Convertible {
			// Checkpoint: before each image's encode call.
			if ctx.Err() != nil {
				cancelled = true
				break
			}

			r.rep.Verbose(fmt.Sprintf("Converting %s", filepath.Base(src)))
			outcome := r.inv.Encode(src, filepath.Join(tempDir, webpName(src)), r.cfg.Quality)
			r.processed++
			r.emitProgress()

			if outcome.Success {
				fs.Converted++
				fs.BytesOriginal += outcome.OriginalSize
				fs.BytesConverted += outcome.ConvertedSize
			} else {
				fs.Errors = append(fs.Errors, outcome.Message)
			}
		}

		// Checkpoint: after the image loop, before the output strategy.
		if cancelled || ctx.Err() != nil {
			_ = os.RemoveAll(tempDir)
			folders = r.sealFolder(folders, fs, folderStart)
			return r.finishCancelled(folders)
		}

		result, errs := r.strategy.Finalize(batch, tempDir)
		fs.Errors = append(fs.Errors, errs...)
		fs.ArchivePath = result.ArchivePath
		fs.ArchiveSize = result.ArchiveSize

		// Skip-excluded files count toward work units though never encoded.
		r.processed += len(batch.SkippedWebP)
		r.emitProgress()

		folders = r.sealFolder(folders, fs, folderStart)
	}

	r.emitPercent(100)
	run := summary.NewRunSummary(false, time.Since(r.start), r.totalUnits, r.processed, r.expected, folders)
	r.rep.RunComplete(*run)
	return run
}

// sealFolder finalizes one folder's summary and hands it to the reporter.
func (r *runner) sealFolder(folders []summary.FolderSummary, fs summary.FolderSummary, started time.Time) []summary.FolderSummary {
	fs.DurationSeconds = time.Since(started).Seconds()
	r.rep.FolderComplete(fs)
	return append(folders, fs)
}

func (r *runner) finishCancelled(folders []summary.FolderSummary) *summary.RunSummary {
	r.rep.Warning("Conversion cancelled")
	run := summary.NewRunSummary(true, time.Since(r.start), r.totalUnits, r.processed, r.expected, folders)
	r.rep.RunComplete(*run)
	return run
}

func (r *runner) emitProgress() {
	r.emitPercent(progress.Percent(r.processed, r.totalUnits))
}

// emitPercent reports progress, keeping emitted values non-decreasing.
func (r *runner) emitPercent(percent int) {
	if r.totalUnits <= 0 || percent < r.lastPercent {
		return
	}
	r.lastPercent = percent
	r.rep.Progress(percent)
}

// webpName maps a source image name to its converted output name.
func webpName(src string) string {
	base := filepath.Base(src)
	return strings.TrimSuffix(base, filepath.Ext(base)) + scan.WebPExt
}

// prepareTempDir creates a fresh temporary output directory, removing any
// stale leftovers from a previous run first. The folder itself is probed
// for writability up front so the failure names the real problem.
func prepareTempDir(folder, tempDir string) error {
	if err := util.EnsureDirectoryWritable(folder); err != nil {
		return err
	}
	if err := os.RemoveAll(tempDir); err != nil {
		return err
	}
	return os.MkdirAll(tempDir, 0755)
}
