// Package pipeline describes scan progress for the CLI and for callers
// that want to observe a run.
package pipeline

import "time"

// Stage is a step of processing one fixture file.
type Stage string

const (
	StageLoad   Stage = "load"
	StageParse  Stage = "parse"
	StageMatch  Stage = "match"
	StageInvoke Stage = "invoke"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusCached  Status = "cached"
	StatusError   Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	// Sites is the number of invocation sites found so far in File.
	Sites int
}

// Finished reports whether the event ends work on its file.
func (e Event) Finished() bool {
	switch e.Status {
	case StatusCached, StatusError:
		return true
	case StatusDone:
		return e.Stage == StageMatch || e.Stage == StageInvoke
	default:
		return false
	}
}

// ProgressSink consumes progress events. Implementations called from
// parallel scans must be goroutine-safe.
type ProgressSink interface {
	OnEvent(Event)
}

// Emit forwards ev to sink when sink is set.
func Emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
