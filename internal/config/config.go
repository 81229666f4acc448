// Package config loads jsvet.toml.
//
//	[lint]
//	jobs = 4
//	max-diagnostics = 200
//	ignore = ["node_modules", "dist"]
//
//	[rules]
//	"no-var" = "off"
//	"react-hooks/exhaustive-deps" = { level = "error", options = { additionalHooks = "^useMyEffect$" } }
//
// A rule entry is a level string or a table with level and options.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"jsvet/internal/diag"
	"jsvet/internal/lint"
)

// FileName is the configuration file looked up from the lint target.
const FileName = "jsvet.toml"

// ErrNotFound is returned by Find when no jsvet.toml exists up to the root.
var ErrNotFound = errors.New("no " + FileName + " found")

// DefaultIgnore lists directory names skipped when linting a tree.
var DefaultIgnore = []string{"node_modules", ".git"}

type Config struct {
	// Path is the file the config was read from; empty for defaults.
	Path  string                `toml:"-"`
	Lint  LintConfig            `toml:"lint"`
	Rules map[string]RuleConfig `toml:"-"`
}

type LintConfig struct {
	Jobs           int      `toml:"jobs"`
	MaxDiagnostics int      `toml:"max-diagnostics"`
	Ignore         []string `toml:"ignore"`
}

// RuleConfig is one [rules] entry.
type RuleConfig struct {
	Off      bool
	Severity diag.Severity
	// HasLevel is false for a table entry without level; the rule keeps
	// its default severity.
	HasLevel bool
	Options  lint.Options
}

type fileConfig struct {
	Lint  LintConfig                `toml:"lint"`
	Rules map[string]toml.Primitive `toml:"rules"`
}

type ruleTable struct {
	Level   *string        `toml:"level"`
	Options map[string]any `toml:"options"`
}

// decodeRule accepts "off", a severity, or {level, options}.
func decodeRule(meta toml.MetaData, prim toml.Primitive) (RuleConfig, error) {
	var rc RuleConfig
	var level string
	if err := meta.PrimitiveDecode(prim, &level); err == nil {
		return rc, rc.setLevel(level)
	}
	var tbl ruleTable
	if err := meta.PrimitiveDecode(prim, &tbl); err != nil {
		return rc, errors.New("rule entry must be a level string or a table with level and options")
	}
	if tbl.Level != nil {
		if err := rc.setLevel(*tbl.Level); err != nil {
			return rc, err
		}
	}
	if tbl.Options != nil {
		rc.Options = lint.Options(tbl.Options)
	}
	return rc, nil
}

func (r *RuleConfig) setLevel(s string) error {
	r.HasLevel = true
	if s == "off" || s == "allow" {
		r.Off = true
		return nil
	}
	sev, err := diag.ParseSeverity(s)
	if err != nil {
		return err
	}
	r.Severity = sev
	return nil
}

// Default is the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Lint:  LintConfig{Ignore: slices.Clone(DefaultIgnore)},
		Rules: map[string]RuleConfig{},
	}
}

// Find walks up from start looking for jsvet.toml.
func Find(start string) (string, error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load reads the config at path. Unknown keys are errors.
func Load(path string) (*Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg := &Config{Lint: raw.Lint, Rules: make(map[string]RuleConfig, len(raw.Rules))}
	for name, prim := range raw.Rules {
		rc, err := decodeRule(meta, prim)
		if err != nil {
			return nil, fmt.Errorf("%s: [rules] %q: %w", path, name, err)
		}
		cfg.Rules[name] = rc
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Lint.Jobs < 0 {
		return nil, fmt.Errorf("%s: [lint].jobs must not be negative", path)
	}
	if cfg.Lint.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [lint].max-diagnostics must not be negative", path)
	}
	if !meta.IsDefined("lint", "ignore") {
		cfg.Lint.Ignore = slices.Clone(DefaultIgnore)
	}
	cfg.Path = path
	return cfg, nil
}

// Discover loads the config governing target, or the defaults if there is
// none.
func Discover(target string) (*Config, error) {
	path, err := Find(target)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Apply configures reg from the [rules] table. Naming a rule reg does not
// know is an error.
func (c *Config) Apply(reg *lint.Registry) error {
	names := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		rc := c.Rules[name]
		s, ok := reg.Setting(name)
		if !ok {
			return fmt.Errorf("%s: [rules]: %w: %s", c.source(), lint.ErrUnknownRule, name)
		}
		if rc.HasLevel {
			s.Off = rc.Off
			if !rc.Off {
				s.Severity = rc.Severity
			}
		}
		s.Options = rc.Options
		if err := reg.Configure(name, s); err != nil {
			return fmt.Errorf("%s: %w", c.source(), err)
		}
	}
	return nil
}

// Ignored reports whether a directory called name is skipped.
func (c *Config) Ignored(name string) bool {
	return slices.Contains(c.Lint.Ignore, name)
}

func (c *Config) source() string {
	if c.Path == "" {
		return FileName
	}
	return c.Path
}
