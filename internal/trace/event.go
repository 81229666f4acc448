package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint // instant event
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of the event. Lower values are coarser.
type Scope uint8

const (
	ScopeRun      Scope = iota + 1 // one CLI invocation
	ScopeFile                      // one source file
	ScopePhase                     // parse, resolve, lint of one file
	ScopeRule                      // one rule within a file
	ScopeDispatch                  // dispatch counters
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopeFile:
		return "file"
	case ScopePhase:
		return "phase"
	case ScopeRule:
		return "rule"
	case ScopeDispatch:
		return "dispatch"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // global sequence number, assigned on emit
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans
	GID      uint64 // goroutine that emitted the event
	Name     string // "parse", "lint", a rule name
	File     string // source path, empty for run-level events
	Detail   string
	Failure  bool // emitted even at LevelError
	Extra    map[string]string
}

// Point emits an instant event if the tracer wants its scope.
func Point(t Tracer, scope Scope, name, file, detail string) {
	if t == nil || !t.Enabled() {
		return
	}
	t.Emit(&Event{
		Time:   time.Now(),
		Kind:   KindPoint,
		Scope:  scope,
		Name:   name,
		File:   file,
		Detail: detail,
		GID:    getGoroutineID(),
	})
}

// Failure emits an instant event that survives LevelError.
func Failure(t Tracer, scope Scope, name, file, detail string) {
	if t == nil || !t.Enabled() {
		return
	}
	t.Emit(&Event{
		Time:    time.Now(),
		Kind:    KindPoint,
		Scope:   scope,
		Name:    name,
		File:    file,
		Detail:  detail,
		Failure: true,
		GID:     getGoroutineID(),
	})
}
