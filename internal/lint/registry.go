package lint

import (
	"errors"
	"fmt"
	"slices"

	"jsvet/internal/diag"
)

var (
	ErrDuplicateRule = errors.New("duplicate rule")
	ErrUnknownRule   = errors.New("unknown rule")
)

// Setting is the per-run configuration of one rule.
type Setting struct {
	Off      bool
	Severity diag.Severity
	Options  Options
}

// Registry owns the rule set of a run. Configure it before building a
// Linter; it is read-only afterwards.
type Registry struct {
	rules    []Rule
	byName   map[string]int
	settings []Setting
}

// NewRegistry registers rules sorted by name.
func NewRegistry(rules ...Rule) (*Registry, error) {
	sorted := slices.Clone(rules)
	slices.SortStableFunc(sorted, func(a, b Rule) int {
		switch {
		case a.Name() < b.Name():
			return -1
		case a.Name() > b.Name():
			return 1
		}
		return 0
	})
	reg := &Registry{
		rules:    sorted,
		byName:   make(map[string]int, len(sorted)),
		settings: make([]Setting, len(sorted)),
	}
	for i, r := range sorted {
		if _, dup := reg.byName[r.Name()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, r.Name())
		}
		reg.byName[r.Name()] = i
		reg.settings[i] = Setting{Severity: MetaOf(r).Severity}
	}
	return reg, nil
}

// MustRegistry is NewRegistry for static rule sets.
func MustRegistry(rules ...Rule) *Registry {
	reg, err := NewRegistry(rules...)
	if err != nil {
		panic(err)
	}
	return reg
}

func (r *Registry) Rules() []Rule { return r.rules }

func (r *Registry) Lookup(name string) (Rule, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.rules[i], true
}

// Setting returns the current setting of name.
func (r *Registry) Setting(name string) (Setting, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Setting{}, false
	}
	return r.settings[i], true
}

// Configure applies s to the rule called name, passing options to
// Configurable rules.
func (r *Registry) Configure(name string, s Setting) error {
	i, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRule, name)
	}
	if s.Options != nil {
		c, ok := r.rules[i].(Configurable)
		if !ok {
			return fmt.Errorf("rule %s takes no options", name)
		}
		if err := c.Configure(s.Options); err != nil {
			return fmt.Errorf("rule %s: %w", name, err)
		}
	}
	r.settings[i] = s
	return nil
}

// Only disables every rule not named in names.
func (r *Registry) Only(names ...string) error {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := r.byName[n]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRule, n)
		}
		keep[n] = true
	}
	for i, rule := range r.rules {
		if !keep[rule.Name()] {
			r.settings[i].Off = true
		}
	}
	return nil
}

// Enabled returns the rules that are not turned off, with their settings.
func (r *Registry) Enabled() ([]Rule, []Setting) {
	var rules []Rule
	var settings []Setting
	for i, rule := range r.rules {
		if r.settings[i].Off {
			continue
		}
		rules = append(rules, rule)
		settings = append(settings, r.settings[i])
	}
	return rules, settings
}

// Index builds an interest index over every registered rule.
func (r *Registry) Index() *Index { return NewIndex(r.rules) }
