package reporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadondaniel/image-to-webp-optimizer/internal/summary"
)

// sinkReporter records the notifications applied to it, in order.
type sinkReporter struct {
	calls    []string
	progress []int
	folders  []summary.FolderSummary
	runs     []summary.RunSummary
}

func (s *sinkReporter) RunStarted(RunStartInfo)       { s.calls = append(s.calls, "run_started") }
func (s *sinkReporter) FolderStarted(FolderStartInfo) { s.calls = append(s.calls, "folder_started") }
func (s *sinkReporter) Status(string)                 { s.calls = append(s.calls, "status") }
func (s *sinkReporter) Warning(string)                { s.calls = append(s.calls, "warning") }
func (s *sinkReporter) Error(ReporterError)           { s.calls = append(s.calls, "error") }
func (s *sinkReporter) Verbose(string)                { s.calls = append(s.calls, "verbose") }

func (s *sinkReporter) Progress(percent int) {
	s.calls = append(s.calls, "progress")
	s.progress = append(s.progress, percent)
}

func (s *sinkReporter) FolderComplete(folder summary.FolderSummary) {
	s.calls = append(s.calls, "folder_complete")
	s.folders = append(s.folders, folder)
}

func (s *sinkReporter) RunComplete(run summary.RunSummary) {
	s.calls = append(s.calls, "run_complete")
	s.runs = append(s.runs, run)
}

func TestChannelReporterPreservesOrderAndPayloads(t *testing.T) {
	pump := NewChannelReporter(16)

	pump.RunStarted(RunStartInfo{Quality: 80})
	pump.FolderStarted(FolderStartInfo{Folder: "/photos"})
	pump.Progress(50)
	pump.FolderComplete(summary.FolderSummary{Folder: "/photos", Converted: 2})
	pump.Progress(100)
	pump.RunComplete(summary.RunSummary{TotalImages: 2})
	pump.Close()

	sink := &sinkReporter{}
	for apply := range pump.Events() {
		apply(sink)
	}

	assert.Equal(t, []string{
		"run_started", "folder_started", "progress",
		"folder_complete", "progress", "run_complete",
	}, sink.calls)
	assert.Equal(t, []int{50, 100}, sink.progress)
	require.Len(t, sink.folders, 1)
	assert.Equal(t, 2, sink.folders[0].Converted)
	require.Len(t, sink.runs, 1)
	assert.Equal(t, 2, sink.runs[0].TotalImages)
}

func TestChannelReporterConcurrentProducer(t *testing.T) {
	pump := NewChannelReporter(4)

	done := make(chan struct{})
	sink := &sinkReporter{}
	go func() {
		defer close(done)
		for apply := range pump.Events() {
			apply(sink)
		}
	}()

	// More notifications than the buffer holds; the producer blocks until
	// the consumer drains.
	for i := 0; i <= 100; i += 10 {
		pump.Progress(i)
	}
	pump.RunComplete(summary.RunSummary{})
	pump.Close()
	<-done

	assert.Len(t, sink.progress, 11)
	assert.Equal(t, 100, sink.progress[10])
	assert.Len(t, sink.runs, 1)
}
