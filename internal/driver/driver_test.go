package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jsvet/internal/ast"
	"jsvet/internal/config"
	"jsvet/internal/diag"
	"jsvet/internal/lint"
	"jsvet/internal/rules"
	"jsvet/internal/source"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func sampleTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		"src/a.js":            "var x = 1;\nx = 2;\n",
		"src/b.ts":            "let y: number = 1;\nif (typeof y == 'number') {}\n",
		"src/types.d.ts":      "declare const z: number;\n",
		"node_modules/m/i.js": "debugger;\n",
		"README.md":           "# readme\n",
	})
}

func codesByFile(res *Result) map[string][]string {
	out := map[string][]string{}
	for _, d := range res.Bag.Items() {
		name := filepath.Base(res.FileSet.Get(d.Primary.File).Path)
		out[name] = append(out[name], string(d.Code))
	}
	return out
}

func TestCollectFiles(t *testing.T) {
	dir := sampleTree(t)
	files, err := CollectFiles([]string{dir, filepath.Join(dir, "src", "a.js")}, config.DefaultIgnore)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(dir, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	if diff := cmp.Diff([]string{"src/a.js", "src/b.ts"}, rel); diff != "" {
		t.Fatalf("unexpected files (-want +got):\n%s", diff)
	}
}

func TestLintPaths(t *testing.T) {
	dir := sampleTree(t)
	res, err := LintPaths(context.Background(), []string{dir}, Options{
		Registry: rules.Default(),
		Jobs:     2,
		Ignore:   config.DefaultIgnore,
		Timings:  true,
	})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(res.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(res.Files))
	}
	want := map[string][]string{
		"a.js": {"no-var"},
		"b.ts": {"eqeqeq"},
	}
	if diff := cmp.Diff(want, codesByFile(res)); diff != "" {
		t.Fatalf("unexpected diagnostics (-want +got):\n%s", diff)
	}
	var phases []string
	for _, p := range res.Timer.Report().Phases {
		phases = append(phases, p.Name)
	}
	if diff := cmp.Diff([]string{"parse", "resolve", "lint"}, phases); diff != "" {
		t.Fatalf("unexpected phases (-want +got):\n%s", diff)
	}
}

func TestLintPathsCapsDiagnostics(t *testing.T) {
	dir := sampleTree(t)
	res, err := LintPaths(context.Background(), []string{dir}, Options{
		Registry:       rules.Default(),
		Ignore:         config.DefaultIgnore,
		MaxDiagnostics: 1,
	})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if res.Bag.Len() != 1 || res.Dropped != 1 {
		t.Fatalf("expected 1 kept and 1 dropped, got %d and %d", res.Bag.Len(), res.Dropped)
	}
}

func TestLintPathsReportsSyntaxErrors(t *testing.T) {
	dir := writeTree(t, map[string]string{"bad.js": "let = ;\n"})
	res, err := LintPaths(context.Background(), []string{dir}, Options{Registry: rules.Default()})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if !res.Bag.HasErrors() || res.Bag.Items()[0].Code != diag.CodeSyntaxError {
		t.Fatalf("expected a syntax error first, got %v", res.Bag.Items())
	}
}

type exploding struct{}

func (exploding) Name() string      { return "explode" }
func (exploding) Kinds() []ast.Kind { return []ast.Kind{ast.KindDebuggerStatement} }
func (exploding) Run(*lint.Context, ast.NodeID) {
	panic(errors.New("boom"))
}

func TestRuleFailureBecomesDiagnostic(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.js": "debugger;\ndebugger;\n"})
	res, err := LintPaths(context.Background(), []string{dir}, Options{Registry: lint.MustRegistry(exploding{})})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if res.Failures() != 1 {
		t.Fatalf("expected the rule to fail once, got %d", res.Failures())
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.CodeRuleFailure || !strings.Contains(items[0].Message, "boom") {
		t.Fatalf("expected one rule failure diagnostic, got %v", items)
	}
	if got := res.FileSet.Text(items[0].Primary); got != "debugger;" {
		t.Fatalf("expected the failure at the first statement, got %q", got)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	dir := sampleTree(t)
	cache, err := OpenDiskCache(t.TempDir(), "jsvet")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	opts := Options{Registry: rules.Default(), Ignore: config.DefaultIgnore, Cache: cache}
	first, err := LintPaths(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	second, err := LintPaths(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	for _, f := range second.Files {
		if !f.Cached {
			t.Fatalf("expected %s to come from the cache", f.Path)
		}
	}
	if diff := cmp.Diff(first.Bag.Items(), second.Bag.Items()); diff != "" {
		t.Fatalf("cached diagnostics differ (-fresh +cached):\n%s", diff)
	}

	// other settings miss the cache
	reg := rules.Default()
	if err := reg.Configure("eqeqeq", lint.Setting{Severity: diag.SevError, Options: lint.Options{"mode": "smart"}}); err != nil {
		t.Fatalf("configure: %v", err)
	}
	opts.Registry = reg
	third, err := LintPaths(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if third.Files[0].Cached {
		t.Fatalf("expected a cache miss after changing settings")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	var payload DiskPayload
	key := combineDigest(Digest(first.FileSet.Get(first.Files[0].FileID).Hash), RegistryDigest(rules.Default()))
	if ok, err := cache.Get(key, &payload); ok || err != nil {
		t.Fatalf("expected a miss after DropAll, got ok=%v err=%v", ok, err)
	}
}

func TestFixPaths(t *testing.T) {
	dir := sampleTree(t)
	opts := Options{Registry: rules.Default(), Ignore: config.DefaultIgnore}

	results, err := FixPaths(context.Background(), []string{dir}, opts, FixOptions{})
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	read := func(name string) string {
		data, err := os.ReadFile(filepath.Join(dir, "src", name))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		return string(data)
	}
	if got := read("b.ts"); got != "let y: number = 1;\nif (typeof y === 'number') {}\n" {
		t.Fatalf("expected the safe eqeqeq fix, got %q", got)
	}
	if got := read("a.js"); got != "var x = 1;\nx = 2;\n" {
		t.Fatalf("expected var untouched without unsafe, got %q", got)
	}

	results, err = FixPaths(context.Background(), []string{dir}, opts, FixOptions{Unsafe: true})
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if results[0].Err != nil || !results[0].Changed || len(results[0].Applied) != 1 {
		t.Fatalf("expected one applied fix in a.js, got %+v", results[0])
	}
	if got := read("a.js"); got != "let x = 1;\nx = 2;\n" {
		t.Fatalf("expected let, got %q", got)
	}
}

func TestFixDryRunKeepsFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.js": "debugger;\nfoo();\n"})
	results, err := FixPaths(context.Background(), []string{dir}, Options{Registry: rules.Default()},
		FixOptions{Unsafe: true, DryRun: true})
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if !results[0].Changed || string(results[0].Output) != "\nfoo();\n" {
		t.Fatalf("expected the debugger statement removed in output, got %q", results[0].Output)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "a.js"))
	if string(data) != "debugger;\nfoo();\n" {
		t.Fatalf("expected dry run to leave the file alone, got %q", data)
	}
}

func TestRestoreEncoding(t *testing.T) {
	got := restoreEncoding([]byte("a\nb\n"), source.FileNormalizedCRLF|source.FileHadBOM)
	if string(got) != "\xef\xbb\xbfa\r\nb\r\n" {
		t.Fatalf("expected BOM and CRLF restored, got %q", got)
	}
}

func TestParse(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.js": "let a = 1;\nlet a = 2;\n"})
	res, err := Parse(context.Background(), filepath.Join(dir, "a.js"), 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Table.Symbols.Len() == 0 {
		t.Fatalf("expected symbols")
	}
	if res.Bag.Len() != 1 || res.Bag.Items()[0].Code != diag.CodeRedeclaration {
		t.Fatalf("expected one redeclaration, got %v", res.Bag.Items())
	}
}

// recordingSink collects events; workers call it concurrently.
type recordingSink struct {
	mu     sync.Mutex
	events map[string][]string
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name := filepath.Base(ev.File)
	label := ev.Stage.String()
	switch ev.Status {
	case StatusQueued:
		label = "queued"
	case StatusDone:
		label = "done"
	case StatusCached:
		label = "cached"
	case StatusError:
		label = "error"
	}
	s.events[name] = append(s.events[name], label)
}

func TestLintPathsReportsProgress(t *testing.T) {
	dir := sampleTree(t)
	cacheDir := t.TempDir()
	run := func() map[string][]string {
		cache, err := OpenDiskCache(cacheDir, "jsvet")
		if err != nil {
			t.Fatalf("open cache: %v", err)
		}
		sink := &recordingSink{events: map[string][]string{}}
		_, err = LintPaths(context.Background(), []string{dir}, Options{
			Registry: rules.Default(),
			Jobs:     2,
			Ignore:   config.DefaultIgnore,
			Cache:    cache,
			Progress: sink,
		})
		if err != nil {
			t.Fatalf("lint: %v", err)
		}
		return sink.events
	}

	want := map[string][]string{
		"a.js": {"queued", "parse", "resolve", "lint", "done"},
		"b.ts": {"queued", "parse", "resolve", "lint", "done"},
	}
	if diff := cmp.Diff(want, run()); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
	want = map[string][]string{
		"a.js": {"queued", "cached"},
		"b.ts": {"queued", "cached"},
	}
	if diff := cmp.Diff(want, run()); diff != "" {
		t.Fatalf("unexpected events on the cached run (-want +got):\n%s", diff)
	}
}

func TestChannelSinkForwards(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "a.js", Status: StatusDone})
	if ev := <-ch; ev.File != "a.js" || ev.Status != StatusDone {
		t.Fatalf("expected forwarded event, got %+v", ev)
	}
	// a nil channel drops events instead of blocking
	ChannelSink{}.OnEvent(Event{File: "b.js"})
}
