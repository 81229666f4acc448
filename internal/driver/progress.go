package driver

// Stage is the pipeline step a progress event refers to.
type Stage uint8

const (
	StageParse Stage = iota
	StageResolve
	StageLint
)

func (s Stage) String() string {
	switch s {
	case StageParse:
		return "parse"
	case StageResolve:
		return "resolve"
	case StageLint:
		return "lint"
	default:
		return "unknown"
	}
}

type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusCached
	StatusError
)

// Event reports the progress of one file.
type Event struct {
	File   string
	Stage  Stage
	Status Status
	// Diagnostics is set on StatusDone and StatusCached.
	Diagnostics int
}

// ProgressSink receives events from lint workers concurrently.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- ev
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
