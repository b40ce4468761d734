package reporter

import "github.com/vadondaniel/image-to-webp-optimizer/internal/summary"

// Multi fans every notification out to all given reporters, in order.
func Multi(reps ...Reporter) Reporter {
	return multiReporter(reps)
}

type multiReporter []Reporter

func (m multiReporter) RunStarted(info RunStartInfo) {
	for _, r := range m {
		r.RunStarted(info)
	}
}

func (m multiReporter) FolderStarted(info FolderStartInfo) {
	for _, r := range m {
		r.FolderStarted(info)
	}
}

func (m multiReporter) Progress(percent int) {
	for _, r := range m {
		r.Progress(percent)
	}
}

func (m multiReporter) Status(message string) {
	for _, r := range m {
		r.Status(message)
	}
}

func (m multiReporter) FolderComplete(folder summary.FolderSummary) {
	for _, r := range m {
		r.FolderComplete(folder)
	}
}

func (m multiReporter) RunComplete(run summary.RunSummary) {
	for _, r := range m {
		r.RunComplete(run)
	}
}

func (m multiReporter) Warning(message string) {
	for _, r := range m {
		r.Warning(message)
	}
}

func (m multiReporter) Error(err ReporterError) {
	for _, r := range m {
		r.Error(err)
	}
}

func (m multiReporter) Verbose(message string) {
	for _, r := range m {
		r.Verbose(message)
	}
}
