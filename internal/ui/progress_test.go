package ui

import (
	"strings"
	"testing"

	"jsvet/internal/driver"
)

func feed(m *progressModel, events ...driver.Event) {
	for _, ev := range events {
		m.Update(eventMsg(ev))
	}
}

func TestProgressTracksFileStages(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("jsvet check", []string{"a.js", "b.ts"}, events).(*progressModel)

	feed(m,
		driver.Event{File: "a.js", Stage: driver.StageParse, Status: driver.StatusQueued},
		driver.Event{File: "a.js", Stage: driver.StageParse, Status: driver.StatusWorking},
		driver.Event{File: "b.ts", Stage: driver.StageResolve, Status: driver.StatusWorking},
	)
	if m.items[0].status != "parsing" || m.items[1].status != "resolving" {
		t.Fatalf("expected parsing and resolving, got %q and %q", m.items[0].status, m.items[1].status)
	}
	view := m.View()
	if !strings.Contains(view, "a.js") || !strings.Contains(view, "(0/2 files)") {
		t.Fatalf("expected active files and counts in view, got:\n%s", view)
	}

	feed(m,
		driver.Event{File: "a.js", Stage: driver.StageLint, Status: driver.StatusDone, Diagnostics: 2},
		driver.Event{File: "b.ts", Stage: driver.StageLint, Status: driver.StatusCached},
		// late events for a finished file are ignored
		driver.Event{File: "a.js", Stage: driver.StageLint, Status: driver.StatusWorking},
	)
	if m.finished != 2 || m.findings != 1 || m.cached != 1 || m.errors != 0 {
		t.Fatalf("expected 2 finished, 1 with findings, 1 cached, got %d, %d, %d (errors %d)",
			m.finished, m.findings, m.cached, m.errors)
	}
	if m.items[0].status != "done" {
		t.Fatalf("expected a.js to stay done, got %q", m.items[0].status)
	}
	if view := m.View(); strings.Contains(view, "a.js") || !strings.Contains(view, "(2/2 files)") {
		t.Fatalf("expected finished files hidden and full count, got:\n%s", view)
	}
}

func TestProgressAddsUnknownFiles(t *testing.T) {
	m := NewProgressModel("check", nil, nil).(*progressModel)
	feed(m, driver.Event{File: "late.js", Stage: driver.StageParse, Status: driver.StatusError})
	if len(m.items) != 1 || m.errors != 1 || m.finished != 1 {
		t.Fatalf("expected one failed item, got %+v (errors %d)", m.items, m.errors)
	}
}

func TestProgressQuitsWhenEventsClose(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("check", []string{"a.js"}, events).(*progressModel)
	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("expected doneMsg on a closed channel, got %T", msg)
	}
	_, cmd := m.Update(msg)
	if !m.done || cmd == nil {
		t.Fatalf("expected the model to finish and quit")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("src/components/Button.tsx", 10); got != "src/com..." {
		t.Fatalf("expected src/com..., got %q", got)
	}
	if got := truncate("a.js", 10); got != "a.js" {
		t.Fatalf("expected a.js, got %q", got)
	}
}
