package driver

// Stage describes a high-level analysis phase.
type Stage string

const (
	// StageLower is the manifest-to-descriptor lowering stage.
	StageLower Stage = "lower"
	// StageNormalize is the storage-type computation stage.
	StageNormalize Stage = "normalize"
	// StageRender is the report rendering stage.
	StageRender Stage = "render"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the call site is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the call site is being analyzed.
	StatusWorking Status = "working"
	// StatusDone indicates the call site is done.
	StatusDone Status = "done"
	// StatusError indicates the call site failed to analyze.
	StatusError Status = "error"
)

// Event reports progress for a call site (or for the overall run when
// Callsite is empty).
type Event struct {
	Callsite string
	Stage    Stage
	Status   Status
	Err      error
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent implements ProgressSink.
func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
