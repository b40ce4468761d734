package reporter

import "github.com/vadondaniel/image-to-webp-optimizer/internal/summary"

// Notification applies one captured reporter callback to a sink.
type Notification func(Reporter)

// ChannelReporter forwards every notification into a channel so a separate
// goroutine can apply them to the real reporters, keeping the run worker
// off display I/O. Close the reporter once the run returns; the channel is
// then drained and closed.
type ChannelReporter struct {
	ch chan Notification
}

// NewChannelReporter creates a channel reporter with the given buffer. A
// full buffer applies backpressure to the run worker.
func NewChannelReporter(buffer int) *ChannelReporter {
	return &ChannelReporter{ch: make(chan Notification, buffer)}
}

// Events returns the channel of pending notifications, in emission order.
func (r *ChannelReporter) Events() <-chan Notification {
	return r.ch
}

// Close signals that no further notifications follow.
func (r *ChannelReporter) Close() {
	close(r.ch)
}

func (r *ChannelReporter) RunStarted(info RunStartInfo) {
	r.ch <- func(rep Reporter) { rep.RunStarted(info) }
}

func (r *ChannelReporter) FolderStarted(info FolderStartInfo) {
	r.ch <- func(rep Reporter) { rep.FolderStarted(info) }
}

func (r *ChannelReporter) Progress(percent int) {
	r.ch <- func(rep Reporter) { rep.Progress(percent) }
}

func (r *ChannelReporter) Status(message string) {
	r.ch <- func(rep Reporter) { rep.Status(message) }
}

func (r *ChannelReporter) FolderComplete(folder summary.FolderSummary) {
	r.ch <- func(rep Reporter) { rep.FolderComplete(folder) }
}

func (r *ChannelReporter) RunComplete(run summary.RunSummary) {
	r.ch <- func(rep Reporter) { rep.RunComplete(run) }
}

func (r *ChannelReporter) Warning(message string) {
	r.ch <- func(rep Reporter) { rep.Warning(message) }
}

func (r *ChannelReporter) Error(err ReporterError) {
	r.ch <- func(rep Reporter) { rep.Error(err) }
}

func (r *ChannelReporter) Verbose(message string) {
	r.ch <- func(rep Reporter) { rep.Verbose(message) }
}
