// Package optimizer provides a Go library for batch image-to-WebP
// conversion with cwebp.
package optimizer

import (
	"time"

	"github.com/vadondaniel/image-to-webp-optimizer/internal/reporter"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/summary"
)

// Event types for embedding integrations.
const (
	EventTypeRunStarted     = "run_started"
	EventTypeFolderStarted  = "folder_started"
	EventTypeProgress       = "progress"
	EventTypeStatus         = "status"
	EventTypeFolderComplete = "folder_complete"
	EventTypeRunComplete    = "run_complete"
	EventTypeRunFinished    = "run_finished"
	EventTypeWarning        = "warning"
	EventTypeError          = "error"
)

// Event is the interface for all run events.
type Event interface {
	Type() string
	Timestamp() int64
}

// BaseEvent contains common fields for all events.
type BaseEvent struct {
	EventType string `json:"type"`
	Time      int64  `json:"timestamp"`
}

func (e BaseEvent) Type() string     { return e.EventType }
func (e BaseEvent) Timestamp() int64 { return e.Time }

// RunStartedEvent is emitted once scanning is done and folder work begins.
type RunStartedEvent struct {
	BaseEvent
	Folders             []string `json:"folders"`
	TotalImages         int      `json:"total_images"`
	ExpectedConversions int      `json:"expected_conversions"`
	Quality             int      `json:"quality"`
	Strategy            string   `json:"strategy"`
}

// FolderStartedEvent is emitted before each folder's conversions.
type FolderStartedEvent struct {
	BaseEvent
	Folder          string `json:"folder"`
	Index           int    `json:"index"`
	TotalFolders    int    `json:"total_folders"`
	Convertible     int    `json:"convertible"`
	SkippedExisting int    `json:"skipped_existing"`
}

// ProgressEvent reports overall run progress. Percent values are
// monotonic non-decreasing within a run and never exceed 100.
type ProgressEvent struct {
	BaseEvent
	Percent int `json:"percent"`
}

// StatusEvent carries a free-form status line.
type StatusEvent struct {
	BaseEvent
	Message string `json:"message"`
}

// FolderCompleteEvent carries one sealed folder summary.
type FolderCompleteEvent struct {
	BaseEvent
	Folder summary.FolderSummary `json:"folder"`
}

// RunCompleteEvent carries the terminal run summary.
type RunCompleteEvent struct {
	BaseEvent
	Summary summary.RunSummary `json:"summary"`
}

// RunFinishedEvent signals that no further events follow for this run.
type RunFinishedEvent struct {
	BaseEvent
}

// WarningEvent represents a warning message.
type WarningEvent struct {
	BaseEvent
	Message string `json:"message"`
}

// ErrorEvent represents a recorded error.
type ErrorEvent struct {
	BaseEvent
	Title      string `json:"title"`
	Message    string `json:"message"`
	Context    string `json:"context"`
	Suggestion string `json:"suggestion"`
}

// EventHandler is called with events during a run.
type EventHandler func(Event) error

// NewTimestamp returns the current Unix timestamp.
func NewTimestamp() int64 {
	return time.Now().Unix()
}

// eventReporter adapts EventHandler to the Reporter interface.
type eventReporter struct {
	handler EventHandler
}

func newEventReporter(handler EventHandler) *eventReporter {
	return &eventReporter{handler: handler}
}

func (r *eventReporter) RunStarted(info reporter.RunStartInfo) {
	_ = r.handler(RunStartedEvent{
		BaseEvent:           BaseEvent{EventType: EventTypeRunStarted, Time: NewTimestamp()},
		Folders:             info.Folders,
		TotalImages:         info.TotalImages,
		ExpectedConversions: info.ExpectedConversions,
		Quality:             info.Quality,
		Strategy:            info.Strategy,
	})
}

func (r *eventReporter) FolderStarted(info reporter.FolderStartInfo) {
	_ = r.handler(FolderStartedEvent{
		BaseEvent:       BaseEvent{EventType: EventTypeFolderStarted, Time: NewTimestamp()},
		Folder:          info.Folder,
		Index:           info.Index,
		TotalFolders:    info.TotalFolders,
		Convertible:     info.Convertible,
		SkippedExisting: info.SkippedExisting,
	})
}

func (r *eventReporter) Progress(percent int) {
	_ = r.handler(ProgressEvent{
		BaseEvent: BaseEvent{EventType: EventTypeProgress, Time: NewTimestamp()},
		Percent:   percent,
	})
}

func (r *eventReporter) Status(message string) {
	_ = r.handler(StatusEvent{
		BaseEvent: BaseEvent{EventType: EventTypeStatus, Time: NewTimestamp()},
		Message:   message,
	})
}

func (r *eventReporter) FolderComplete(folder summary.FolderSummary) {
	_ = r.handler(FolderCompleteEvent{
		BaseEvent: BaseEvent{EventType: EventTypeFolderComplete, Time: NewTimestamp()},
		Folder:    folder,
	})
}

func (r *eventReporter) RunComplete(run summary.RunSummary) {
	_ = r.handler(RunCompleteEvent{
		BaseEvent: BaseEvent{EventType: EventTypeRunComplete, Time: NewTimestamp()},
		Summary:   run,
	})
	_ = r.handler(RunFinishedEvent{
		BaseEvent: BaseEvent{EventType: EventTypeRunFinished, Time: NewTimestamp()},
	})
}

func (r *eventReporter) Warning(message string) {
	_ = r.handler(WarningEvent{
		BaseEvent: BaseEvent{EventType: EventTypeWarning, Time: NewTimestamp()},
		Message:   message,
	})
}

func (r *eventReporter) Error(e reporter.ReporterError) {
	_ = r.handler(ErrorEvent{
		BaseEvent:  BaseEvent{EventType: EventTypeError, Time: NewTimestamp()},
		Title:      e.Title,
		Message:    e.Message,
		Context:    e.Context,
		Suggestion: e.Suggestion,
	})
}

func (r *eventReporter) Verbose(string) {}
