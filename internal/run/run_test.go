package run

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadondaniel/image-to-webp-optimizer/internal/config"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/reporter"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/summary"
)

// stubEncoderScript stands in for cwebp: it writes 8 bytes at the -o path
// and fails for any source whose name contains "bad".
const stubEncoderScript = `#!/bin/sh
prev=""
src=""
out=""
for a in "$@"; do
  if [ "$a" = "-o" ]; then src="$prev"; fi
  if [ "$prev" = "-o" ]; then out="$a"; fi
  prev="$a"
done
case "$src" in
  *bad*) echo "corrupt input" >&2; exit 1 ;;
esac
printf 'WEBPDATA' > "$out"
`

func stubEncoder(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cwebp-stub")
	require.NoError(t, os.WriteFile(path, []byte(stubEncoderScript), 0o755))
	return path
}

// recordingReporter captures every outbound notification of a run.
type recordingReporter struct {
	progress []int
	statuses []string
	warnings []string
	verboses []string
	errors   []reporter.ReporterError
	folders  []summary.FolderSummary
	runs     []summary.RunSummary
	onFolder func(summary.FolderSummary)
}

func (r *recordingReporter) RunStarted(reporter.RunStartInfo)       {}
func (r *recordingReporter) FolderStarted(reporter.FolderStartInfo) {}
func (r *recordingReporter) Progress(percent int)                   { r.progress = append(r.progress, percent) }
func (r *recordingReporter) Status(message string)                  { r.statuses = append(r.statuses, message) }
func (r *recordingReporter) Warning(message string)                 { r.warnings = append(r.warnings, message) }
func (r *recordingReporter) Error(err reporter.ReporterError)       { r.errors = append(r.errors, err) }
func (r *recordingReporter) Verbose(message string)                 { r.verboses = append(r.verboses, message) }

func (r *recordingReporter) FolderComplete(folder summary.FolderSummary) {
	r.folders = append(r.folders, folder)
	if r.onFolder != nil {
		r.onFolder(folder)
	}
}

func (r *recordingReporter) RunComplete(run summary.RunSummary) {
	r.runs = append(r.runs, run)
}

// makeFolder creates a folder holding files with the given names and sizes.
func makeFolder(t *testing.T, root, name string, files map[string]int) string {
	t.Helper()
	folder := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(folder, 0o755))
	for file, size := range files {
		require.NoError(t, os.WriteFile(filepath.Join(folder, file), make([]byte, size), 0o644))
	}
	return folder
}

func newTestConfig(t *testing.T, folders ...string) *config.Config {
	t.Helper()
	cfg := config.NewConfig(folders...)
	cfg.EncoderPath = stubEncoder(t)
	return cfg
}

func archiveEntryCount(t *testing.T, path string) int {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	return len(zr.File)
}

func TestProcessEncoderMissing(t *testing.T) {
	cfg := config.NewConfig(t.TempDir())
	cfg.EncoderPath = filepath.Join(t.TempDir(), "no-such-encoder")
	rep := &recordingReporter{}

	run, err := Process(context.Background(), cfg, rep)

	assert.ErrorIs(t, err, ErrEncoderNotFound)
	assert.False(t, run.Cancelled)
	assert.Equal(t, 0, run.Totals.Converted)
	assert.Equal(t, 0, run.ProcessedImages)
	require.NotNil(t, run.Folders)
	assert.Empty(t, run.Folders)
	require.Len(t, rep.errors, 1)
	assert.Equal(t, "Encoder Not Found", rep.errors[0].Title)
	require.Len(t, rep.runs, 1)
}

func TestProcessArchiveScenario(t *testing.T) {
	root := t.TempDir()
	folder := makeFolder(t, root, "album", map[string]int{
		"a.jpg": 100, "b.jpg": 200, "c.jpg": 300,
	})
	cfg := newTestConfig(t, folder)
	rep := &recordingReporter{}

	run, err := Process(context.Background(), cfg, rep)
	require.NoError(t, err)

	require.Len(t, run.Folders, 1)
	fs := run.Folders[0]
	assert.Equal(t, 3, fs.Converted)
	assert.Empty(t, fs.Errors)
	assert.Equal(t, int64(600), fs.BytesOriginal)
	assert.Equal(t, int64(24), fs.BytesConverted)
	assert.Equal(t, filepath.Join(root, "album.zip"), fs.ArchivePath)
	assert.Greater(t, fs.ArchiveSize, int64(0))
	assert.Equal(t, 3, archiveEntryCount(t, fs.ArchivePath))

	assert.False(t, run.Cancelled)
	assert.Equal(t, 3, run.TotalImages)
	assert.Equal(t, 3, run.ProcessedImages)
	assert.Equal(t, 3, run.ExpectedConversions)
	assert.Equal(t, int64(576), run.Totals.BytesSaved)

	// Temp dir is gone, sources untouched.
	assert.NoDirExists(t, filepath.Join(folder, TempDirName))
	assert.FileExists(t, filepath.Join(folder, "a.jpg"))

	require.NotEmpty(t, rep.verboses)
	assert.Contains(t, rep.verboses[0], "Using encoder")
}

func TestProcessReplaceMode(t *testing.T) {
	root := t.TempDir()
	folder := makeFolder(t, root, "album", map[string]int{"a.jpg": 100, "b.png": 200})
	cfg := newTestConfig(t, folder)
	cfg.ReplaceOriginals = true
	rep := &recordingReporter{}

	run, err := Process(context.Background(), cfg, rep)
	require.NoError(t, err)

	require.Len(t, run.Folders, 1)
	fs := run.Folders[0]
	assert.Equal(t, 2, fs.Converted)
	assert.Empty(t, fs.Errors)

	// Replace mode never produces an archive.
	assert.Empty(t, fs.ArchivePath)
	assert.Zero(t, fs.ArchiveSize)
	assert.Equal(t, 0, run.Totals.Archives)
	assert.NoFileExists(t, filepath.Join(root, "album.zip"))

	assert.NoFileExists(t, filepath.Join(folder, "a.jpg"))
	assert.NoFileExists(t, filepath.Join(folder, "b.png"))
	assert.FileExists(t, filepath.Join(folder, "a.webp"))
	assert.FileExists(t, filepath.Join(folder, "b.webp"))
	assert.NoDirExists(t, filepath.Join(folder, TempDirName))
}

func TestProcessPartialFailureDoesNotAbort(t *testing.T) {
	root := t.TempDir()
	folder := makeFolder(t, root, "album", map[string]int{
		"a.jpg": 100, "bad.jpg": 50, "c.jpg": 100,
	})
	cfg := newTestConfig(t, folder)
	rep := &recordingReporter{}

	run, err := Process(context.Background(), cfg, rep)
	require.NoError(t, err)

	require.Len(t, run.Folders, 1)
	fs := run.Folders[0]
	assert.Equal(t, 2, fs.Converted)
	require.Len(t, fs.Errors, 1)
	assert.Contains(t, fs.Errors[0], "bad.jpg")

	// Processed units advance for failures too.
	assert.Equal(t, 3, run.ProcessedImages)
	assert.False(t, run.Cancelled)
	assert.Equal(t, 1, run.Totals.Errors)
}

func TestProcessSkippedFilesCountTowardProgress(t *testing.T) {
	root := t.TempDir()
	folder := makeFolder(t, root, "album", map[string]int{
		"a.jpg": 100, "b.jpg": 100, "x.webp": 40, "y.webp": 40,
	})
	cfg := newTestConfig(t, folder)
	rep := &recordingReporter{}

	run, err := Process(context.Background(), cfg, rep)
	require.NoError(t, err)

	assert.Equal(t, 4, run.TotalImages)
	assert.Equal(t, 4, run.ProcessedImages)
	assert.Equal(t, 2, run.ExpectedConversions)
	assert.Equal(t, 2, run.Totals.SkippedExisting)

	// The archive is a complete set: outputs plus skip-excluded originals.
	require.Len(t, run.Folders, 1)
	assert.Equal(t, 4, archiveEntryCount(t, run.Folders[0].ArchivePath))
}

func TestProcessNothingToConvertGlobally(t *testing.T) {
	root := t.TempDir()
	folder := makeFolder(t, root, "album", map[string]int{"x.webp": 40, "y.webp": 40})
	cfg := newTestConfig(t, folder)
	rep := &recordingReporter{}

	run, err := Process(context.Background(), cfg, rep)
	require.NoError(t, err)

	assert.False(t, run.Cancelled)
	assert.Equal(t, 0, run.ExpectedConversions)
	assert.Equal(t, 0, run.ProcessedImages)
	require.NotNil(t, run.Folders)
	assert.Empty(t, run.Folders)
	assert.Contains(t, rep.statuses, "Nothing to convert")
	assert.NoFileExists(t, filepath.Join(root, "album.zip"))
}

func TestProcessWebPOnlyFolderSoftSkipped(t *testing.T) {
	root := t.TempDir()
	webpOnly := makeFolder(t, root, "done", map[string]int{"x.webp": 40})
	pending := makeFolder(t, root, "pending", map[string]int{"a.jpg": 100})
	cfg := newTestConfig(t, webpOnly, pending)
	rep := &recordingReporter{}

	run, err := Process(context.Background(), cfg, rep)
	require.NoError(t, err)

	require.Len(t, run.Folders, 2)

	soft := run.Folders[0]
	assert.Equal(t, webpOnly, soft.Folder)
	assert.Equal(t, 0, soft.Converted)
	assert.Equal(t, 1, soft.SkippedExisting)
	assert.Empty(t, soft.Errors)
	assert.Empty(t, soft.ArchivePath)
	assert.NoFileExists(t, filepath.Join(root, "done.zip"))

	assert.Equal(t, 1, run.Folders[1].Converted)
	assert.FileExists(t, filepath.Join(root, "pending.zip"))

	found := false
	for _, s := range rep.statuses {
		if s == "Nothing to convert in "+webpOnly+", skipping" {
			found = true
		}
	}
	assert.True(t, found, "expected a soft skip note, got %v", rep.statuses)
}

func TestProcessCancelledBeforeFirstFolder(t *testing.T) {
	root := t.TempDir()
	folder := makeFolder(t, root, "album", map[string]int{"a.jpg": 100})
	cfg := newTestConfig(t, folder)
	rep := &recordingReporter{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	run, err := Process(ctx, cfg, rep)

	// Cancellation is not an error.
	require.NoError(t, err)
	assert.True(t, run.Cancelled)
	assert.Empty(t, run.Folders)
	assert.Equal(t, 0, run.ProcessedImages)
	assert.NoFileExists(t, filepath.Join(root, "album.zip"))
}

func TestProcessCancelledBetweenFolders(t *testing.T) {
	root := t.TempDir()
	first := makeFolder(t, root, "first", map[string]int{"a.jpg": 100})
	second := makeFolder(t, root, "second", map[string]int{"b.jpg": 100})
	cfg := newTestConfig(t, first, second)

	ctx, cancel := context.WithCancel(context.Background())
	rep := &recordingReporter{onFolder: func(summary.FolderSummary) { cancel() }}

	run, err := Process(ctx, cfg, rep)

	require.NoError(t, err)
	assert.True(t, run.Cancelled)
	// Only the completed folder appears; no partial entry for the second.
	require.Len(t, run.Folders, 1)
	assert.Equal(t, first, run.Folders[0].Folder)
	assert.Equal(t, 1, run.Folders[0].Converted)
	assert.FileExists(t, filepath.Join(root, "first.zip"))
	assert.NoFileExists(t, filepath.Join(root, "second.zip"))
	assert.NoDirExists(t, filepath.Join(second, TempDirName))
}

func TestProcessTempDirFailureScopedToFolder(t *testing.T) {
	root := t.TempDir()
	broken := makeFolder(t, root, "broken", map[string]int{"a.jpg": 100})
	healthy := makeFolder(t, root, "healthy", map[string]int{"b.jpg": 100})
	cfg := newTestConfig(t, broken, healthy)
	rep := &recordingReporter{}

	require.NoError(t, os.Chmod(broken, 0o555))
	t.Cleanup(func() { _ = os.Chmod(broken, 0o755) })

	run, err := Process(context.Background(), cfg, rep)
	require.NoError(t, err)

	assert.False(t, run.Cancelled)
	require.Len(t, run.Folders, 2)
	assert.Equal(t, 0, run.Folders[0].Converted)
	require.Len(t, run.Folders[0].Errors, 1)
	assert.Contains(t, run.Folders[0].Errors[0], "prepare output directory")
	assert.Equal(t, 1, run.Folders[1].Converted)
}

func TestProcessMissingFolderExcludedWithWarning(t *testing.T) {
	root := t.TempDir()
	real := makeFolder(t, root, "real", map[string]int{"a.jpg": 100})
	cfg := newTestConfig(t, filepath.Join(root, "ghost"), real)
	rep := &recordingReporter{}

	run, err := Process(context.Background(), cfg, rep)
	require.NoError(t, err)

	require.Len(t, run.Folders, 1)
	assert.Equal(t, real, run.Folders[0].Folder)
	assert.NotEmpty(t, rep.warnings)
}

func TestProcessProgressMonotonicAndCapped(t *testing.T) {
	root := t.TempDir()
	a := makeFolder(t, root, "a", map[string]int{"1.jpg": 10, "2.jpg": 10, "s.webp": 5})
	b := makeFolder(t, root, "b", map[string]int{"3.jpg": 10, "bad.jpg": 10})
	cfg := newTestConfig(t, a, b)
	rep := &recordingReporter{}

	_, err := Process(context.Background(), cfg, rep)
	require.NoError(t, err)

	require.NotEmpty(t, rep.progress)
	last := -1
	for _, p := range rep.progress {
		assert.GreaterOrEqual(t, p, last)
		assert.LessOrEqual(t, p, 100)
		last = p
	}
	assert.Equal(t, 100, rep.progress[len(rep.progress)-1])
}
