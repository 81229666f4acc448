package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"jsvet/internal/diag"
	"jsvet/internal/lint"
	"jsvet/internal/rules"
	"jsvet/internal/version"
)

func TestPlural(t *testing.T) {
	cases := []struct {
		n    int
		noun string
		want string
	}{
		{0, "error", "0 errors"},
		{1, "error", "1 error"},
		{2, "file", "2 files"},
		{3, "info", "3 info"},
	}
	for _, tc := range cases {
		if got := plural(tc.n, tc.noun); got != tc.want {
			t.Fatalf("plural(%d, %q) = %q, want %q", tc.n, tc.noun, got, tc.want)
		}
	}
}

func TestRenderRulesPlain(t *testing.T) {
	reg := rules.Default()
	if err := reg.Configure("no-var", lint.Setting{Severity: diag.SevError}); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if err := reg.Configure("no-with", lint.Setting{Off: true}); err != nil {
		t.Fatalf("configure: %v", err)
	}
	var buf bytes.Buffer
	if err := renderRules(&buf, reg, false); err != nil {
		t.Fatalf("renderRules: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no escape codes, got %q", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != len(reg.Rules())+1 {
		t.Fatalf("expected %d lines, got %d:\n%s", len(reg.Rules())+1, len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "RULE") {
		t.Fatalf("expected header first, got %q", lines[0])
	}
	found := map[string]string{}
	for _, l := range lines[1:] {
		fields := strings.Fields(l)
		found[fields[0]] = fields[1]
	}
	if found["no-var"] != "error" {
		t.Fatalf("expected no-var at error, got %q", found["no-var"])
	}
	if found["no-with"] != "off" {
		t.Fatalf("expected no-with off, got %q", found["no-with"])
	}
}

func TestRenderVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, true); err != nil {
		t.Fatalf("renderVersionJSON: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Tool != "jsvet" || payload.Version != version.Version {
		t.Fatalf("expected jsvet %s, got %+v", version.Version, payload)
	}
	if payload.GitCommit == "" || payload.BuildDate == "" {
		t.Fatalf("expected full metadata, got %+v", payload)
	}
}

func TestTargetsOrCwd(t *testing.T) {
	if got := targetsOrCwd(nil); len(got) != 1 || got[0] != "." {
		t.Fatalf("expected [.], got %v", got)
	}
	if got := targetsOrCwd([]string{"a", "b"}); len(got) != 2 {
		t.Fatalf("expected args back, got %v", got)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
	if !shouldUseTUI(uiModeOn, nil) || shouldUseTUI(uiModeOff, []string{t.TempDir()}) {
		t.Fatalf("expected explicit modes to win over detection")
	}
}
