package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the accumulated duration of one pipeline phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Count int
}

// Timer tracks phases of one goroutine's work. Timers of parallel workers
// are combined with Merge.
type Timer struct {
	phases []Phase
	byName map[string]int
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 4), byName: make(map[string]int, 4)}
}

func (t *Timer) index(name string) int {
	if i, ok := t.byName[name]; ok {
		return i
	}
	t.phases = append(t.phases, Phase{Name: name})
	t.byName[name] = len(t.phases) - 1
	return len(t.phases) - 1
}

// Begin starts timing name and returns a handle for End. Phases with the
// same name accumulate.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	idx := t.index(name)
	t.phases[idx].Start = time.Now()
	return idx
}

// End finishes a phase by its index.
func (t *Timer) End(idx int) {
	if t == nil || idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur += time.Since(p.Start)
	p.Count++
}

// Merge adds the phases of other, keeping first-seen order.
func (t *Timer) Merge(other *Timer) {
	if t == nil || other == nil {
		return
	}
	for _, p := range other.phases {
		idx := t.index(p.Name)
		t.phases[idx].Dur += p.Dur
		t.phases[idx].Count += p.Count
	}
}

// Summary returns a human-readable string summarizing all tracked phases.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-20s %9.2f ms  (%d)\n", p.Name, p.DurationMS, p.Count)
	}
	fmt.Fprintf(&sb, "  %-20s %9.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

// PhaseReport is the serialized form of one phase.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Count      int     `json:"count" msgpack:"count"`
}

// Report aggregates the phases of a timer. The total is CPU time summed
// over workers, not wall time.
type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Count:      phase.Count,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
