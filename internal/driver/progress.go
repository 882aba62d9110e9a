package driver

import "time"

// Stage describes a phase of the check pipeline.
type Stage string

const (
	// StageLoad is the source loading stage.
	StageLoad Stage = "load"
	// StageDecode is the syntax tree decoding stage.
	StageDecode Stage = "decode"
	// StageLint is the rule-running stage.
	StageLint Stage = "lint"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is currently being checked.
	StatusWorking Status = "working"
	// StatusDone indicates the file finished without errors.
	StatusDone Status = "done"
	// StatusError indicates the file produced error diagnostics.
	StatusError Status = "error"
	// StatusCached indicates the result was replayed from the disk cache.
	StatusCached Status = "cached"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. CheckDir emits from worker
// goroutines, поэтому реализация обязана выдерживать конкурентные вызовы.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageLoad, Status: StatusQueued})
	}
}
