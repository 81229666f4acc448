package version

import (
	"strings"
	"testing"
)

func TestColoredPlain(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3-rc.1"
	if got := Colored(false); got != "1.2.3-rc.1" {
		t.Fatalf("expected plain version, got %q", got)
	}
	Version = "nightly"
	if got := Colored(true); got != "nightly" {
		t.Fatalf("expected non-semver version unchanged, got %q", got)
	}
}

func TestColoredKeepsComponents(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "0.1.0-dev"
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-dev") {
		t.Fatalf("expected colored components and -dev suffix, got %q", got)
	}
}
