package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jsvet/internal/config"
	"jsvet/internal/driver"
	"jsvet/internal/rules"
)

// loadDriverOptions loads jsvet.toml (from --config, or discovered from
// the first target with defaults when there is none), applies it to the
// default rule set, then applies the command-line overrides.
func loadDriverOptions(cmd *cobra.Command, targets []string) (driver.Options, *config.Config, error) {
	pf := cmd.Root().PersistentFlags()
	path, err := pf.GetString("config")
	if err != nil {
		return driver.Options{}, nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	var cfg *config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		start := "."
		if len(targets) > 0 {
			start = targets[0]
		}
		cfg, err = config.Discover(start)
	}
	if err != nil {
		return driver.Options{}, nil, err
	}

	reg := rules.Default()
	if err := cfg.Apply(reg); err != nil {
		return driver.Options{}, nil, err
	}
	only, err := pf.GetStringSlice("only")
	if err != nil {
		return driver.Options{}, nil, fmt.Errorf("failed to get only flag: %w", err)
	}
	if len(only) > 0 {
		if err := reg.Only(only...); err != nil {
			return driver.Options{}, nil, err
		}
	}

	opts := driver.Options{
		Registry:       reg,
		Jobs:           cfg.Lint.Jobs,
		MaxDiagnostics: cfg.Lint.MaxDiagnostics,
		Ignore:         cfg.Lint.Ignore,
	}
	if pf.Changed("jobs") {
		if opts.Jobs, err = pf.GetInt("jobs"); err != nil {
			return driver.Options{}, nil, err
		}
	}
	if pf.Changed("max-diagnostics") {
		if opts.MaxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
			return driver.Options{}, nil, err
		}
	}
	if opts.Timings, err = pf.GetBool("timings"); err != nil {
		return driver.Options{}, nil, err
	}
	return opts, cfg, nil
}

func targetsOrCwd(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}
