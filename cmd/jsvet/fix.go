package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"jsvet/internal/diag"
	"jsvet/internal/driver"
	"jsvet/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file|directory ...]",
	Short: "Apply available fixes to source files",
	Long: `Lint the given paths and apply fixes until none applies. Only safe fixes are
applied unless --unsafe is given. Edits that overlap an earlier fix in the same
round are retried in the next round.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("unsafe", false, "also apply fixes that may change behavior")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	fixCmd.Flags().Int("rounds", fix.DefaultRounds, "maximum lint-and-fix rounds per file")
	fixCmd.Flags().Bool("verbose", false, "list every applied and skipped fix")
}

func runFix(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()
	targets := targetsOrCwd(args)

	unsafe, err := cmd.Flags().GetBool("unsafe")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	rounds, err := cmd.Flags().GetInt("rounds")
	if err != nil {
		return err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}

	opts, _, err := loadDriverOptions(cmd, targets)
	if err != nil {
		return err
	}
	results, err := driver.FixPaths(cmd.Context(), targets, opts, driver.FixOptions{
		Unsafe: unsafe,
		Rounds: rounds,
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := false
	applied, changed := 0, 0
	for _, r := range results {
		applied += len(r.Applied)
		if r.Changed {
			changed++
		}
		if r.Err != nil {
			// a file that did not converge was still written
			if errors.Is(r.Err, fix.ErrNoFixpoint) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v after %d rounds\n", r.Path, r.Err, r.Rounds)
			} else {
				failed = true
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
			}
		}
		if verbose || dryRun {
			printFixes(out, r)
		}
	}

	verb := "fixed"
	if dryRun {
		verb = "would fix"
	}
	fmt.Fprintf(out, "%s %s in %s\n", verb, plural(applied, "issue"), plural(changed, "file"))
	if !unsafe {
		skipped := 0
		for _, r := range results {
			for _, s := range r.Skipped {
				if s.Reason == "applicability is "+diag.DangerousSuggestion.String() {
					skipped++
				}
			}
		}
		if skipped > 0 {
			noun := "fixes"
			if skipped == 1 {
				noun = "fix"
			}
			fmt.Fprintf(out, "%d more %s available with --unsafe\n", skipped, noun)
		}
	}
	if failed {
		return errFindings
	}
	return nil
}

func printFixes(w io.Writer, r driver.FixResult) {
	for _, a := range r.Applied {
		fmt.Fprintf(w, "%s: [%s] %s (%s)\n", r.Path, a.Code, a.Title, a.Applicability)
	}
	for _, s := range r.Skipped {
		fmt.Fprintf(w, "%s: [%s] skipped %s: %s\n", r.Path, s.Code, s.Title, s.Reason)
	}
}
