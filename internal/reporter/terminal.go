package reporter

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/vadondaniel/image-to-webp-optimizer/internal/summary"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/util"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu         sync.Mutex
	progress   *progressbar.ProgressBar
	maxPercent int
	verbose    bool
	cyan       *color.Color
	green      *color.Color
	yellow     *color.Color
	red        *color.Color
	magenta    *color.Color
	bold       *color.Color
}

// NewTerminalReporterVerbose creates a new terminal reporter with configurable verbose mode.
func NewTerminalReporterVerbose(verbose bool) *TerminalReporter {
	return &TerminalReporter{
		verbose: verbose,
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
	}
}

// labelWidth is the global width for all labels to ensure consistent alignment.
const labelWidth = 12

// printLabel prints a bold label with fixed width padding followed by a value.
func (r *TerminalReporter) printLabel(label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", labelWidth, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) startProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.maxPercent = 0
	r.progress = progressbar.NewOptions64(
		100,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Converting [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
	r.maxPercent = 0
}

func (r *TerminalReporter) RunStarted(info RunStartInfo) {
	fmt.Println()
	_, _ = r.cyan.Println("CONVERSION")
	r.printLabel("Quality:", fmt.Sprintf("%d", info.Quality))
	r.printLabel("Output:", info.Strategy)
	r.printLabel("Folders:", fmt.Sprintf("%d", len(info.Folders)))
	r.printLabel("Images:", fmt.Sprintf("%d total, %d to convert", info.TotalImages, info.ExpectedConversions))

	r.startProgress()
}

func (r *TerminalReporter) FolderStarted(info FolderStartInfo) {
	r.mu.Lock()
	bar := r.progress
	r.mu.Unlock()

	desc := fmt.Sprintf("folder %d/%d %s", info.Index, info.TotalFolders, filepath.Base(info.Folder))
	if bar != nil {
		bar.Describe(desc)
		return
	}
	fmt.Printf("  %s %s\n", r.magenta.Sprint("›"), desc)
}

func (r *TerminalReporter) Progress(percent int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}

	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}

	if percent >= r.maxPercent {
		r.maxPercent = percent
		_ = r.progress.Set64(int64(percent))
	}
}

func (r *TerminalReporter) Status(message string) {
	r.mu.Lock()
	bar := r.progress
	r.mu.Unlock()

	if bar != nil {
		bar.Describe(message)
		return
	}
	fmt.Printf("  %s %s\n", r.magenta.Sprint("›"), message)
}

func (r *TerminalReporter) FolderComplete(folder summary.FolderSummary) {
	if !r.verbose && len(folder.Errors) == 0 {
		return
	}

	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println(filepath.Base(folder.Folder))
	r.printLabel("Converted:", fmt.Sprintf("%d (skipped %d)", folder.Converted, folder.SkippedExisting))
	r.printLabel("Size:", fmt.Sprintf("%s -> %s (saved %s, %.1f%% reduction)",
		util.FormatBytesReadable(folder.BytesOriginal),
		util.FormatBytesReadable(folder.BytesConverted),
		util.FormatBytesReadable(folder.BytesSaved()),
		util.CalculateSizeReduction(folder.BytesOriginal, folder.BytesConverted)))
	if folder.ArchivePath != "" {
		r.printLabel("Archive:", fmt.Sprintf("%s (%s)",
			folder.ArchivePath, util.FormatBytesReadable(folder.ArchiveSize)))
	}
	for _, msg := range folder.Errors {
		fmt.Printf("  %s %s\n", r.red.Sprint("✗"), msg)
	}

	r.startProgress()
}

func (r *TerminalReporter) RunComplete(run summary.RunSummary) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("RESULTS")

	if run.Cancelled {
		r.printLabel("Status:", r.yellow.Sprint("cancelled"))
	} else if run.Totals.Errors > 0 {
		r.printLabel("Status:", fmt.Sprintf("%s %d error(s)", r.red.Sprint("✗"), run.Totals.Errors))
	} else {
		r.printLabel("Status:", fmt.Sprintf("%s %s", r.green.Sprint("✓"), r.green.Sprint("complete")))
	}

	r.printLabel("Converted:", fmt.Sprintf("%d of %d expected (%d skipped)",
		run.Totals.Converted, run.ExpectedConversions, run.Totals.SkippedExisting))
	r.printLabel("Size:", fmt.Sprintf("%s -> %s (saved %s, %.1f%% reduction)",
		util.FormatBytesReadable(run.Totals.BytesOriginal),
		util.FormatBytesReadable(run.Totals.BytesConverted),
		util.FormatBytesReadable(run.Totals.BytesSaved),
		util.CalculateSizeReduction(run.Totals.BytesOriginal, run.Totals.BytesConverted)))
	if run.Totals.Archives > 0 {
		r.printLabel("Archives:", fmt.Sprintf("%d", run.Totals.Archives))
	}
	r.printLabel("Time:", util.FormatDurationFromSecs(int64(run.DurationSeconds)))
}

func (r *TerminalReporter) Warning(message string) {
	r.mu.Lock()
	bar := r.progress
	r.mu.Unlock()
	if bar != nil {
		_ = bar.Clear()
	}
	fmt.Printf("  %s %s\n", r.yellow.Sprint("!"), message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	r.mu.Lock()
	bar := r.progress
	r.mu.Unlock()
	if bar != nil {
		_ = bar.Clear()
	}
	fmt.Printf("  %s %s: %s\n", r.red.Sprint("✗"), r.red.Sprint(err.Title), err.Message)
	if err.Suggestion != "" {
		fmt.Printf("    %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) Verbose(message string) {
	if !r.verbose {
		return
	}
	fmt.Printf("  %s\n", color.New(color.Faint).Sprint(message))
}
