package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"jsvet/internal/diag"
	"jsvet/internal/diagfmt"
	"jsvet/internal/driver"
	"jsvet/internal/lint"
	"jsvet/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file|directory ...]",
	Short: "Lint source files or directories",
	Long: `Lint every .js, .jsx, .mjs, .cjs, .ts, .mts, .cts and .tsx file under the given
paths (default: the current directory). Exits with status 1 when an error-level
diagnostic is reported.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|msgpack|sarif)")
	checkCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	checkCmd.Flags().Int8("context", 1, "source lines shown before the primary line (pretty)")
	checkCmd.Flags().Bool("suggest", true, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "include before/after lines of fixes in json and msgpack output")
	checkCmd.Flags().Bool("warnings-as-errors", false, "exit with status 1 on warnings too")
	checkCmd.Flags().Bool("cache", false, "reuse results of unchanged files from the disk cache")
	checkCmd.Flags().String("cache-dir", "", "disk cache directory (default: user cache dir)")
	checkCmd.Flags().String("ui", "auto", "show live progress (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()
	targets := targetsOrCwd(args)

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := diagfmt.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := diagfmt.ParsePathMode(pathModeStr)
	if err != nil {
		return err
	}
	contextLines, err := cmd.Flags().GetInt8("context")
	if err != nil {
		return fmt.Errorf("failed to get context flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return fmt.Errorf("failed to get cache-dir flag: %w", err)
	}

	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}

	opts, _, err := loadDriverOptions(cmd, targets)
	if err != nil {
		return err
	}
	if useCache || cacheDir != "" {
		if opts.Cache, err = driver.OpenDiskCache(cacheDir, "jsvet"); err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
	}

	var res *driver.Result
	if format == diagfmt.FormatPretty && shouldUseTUI(mode, targets) {
		res, err = runLintWithUI(cmd.Context(), targets, opts)
	} else {
		res, err = driver.LintPaths(cmd.Context(), targets, opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case diagfmt.FormatPretty:
		color, cerr := useColor(cmd, stdoutFile(cmd))
		if cerr != nil {
			return cerr
		}
		err = diagfmt.Pretty(out, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     color,
			Context:   contextLines,
			PathMode:  pathMode,
			ShowFixes: suggest,
		})
		if err == nil {
			err = writeSummary(cmd.ErrOrStderr(), res)
		}
	case diagfmt.FormatShort:
		err = diagfmt.Short(out, res.Bag, res.FileSet, pathMode)
	case diagfmt.FormatJSON, diagfmt.FormatMsgpack:
		jopts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeFixes:     suggest,
			IncludePreviews:  preview,
		}
		if format == diagfmt.FormatJSON {
			err = diagfmt.JSON(out, res.Bag, res.FileSet, jopts)
		} else {
			err = diagfmt.Msgpack(out, res.Bag, res.FileSet, jopts)
		}
	case diagfmt.FormatSARIF:
		err = diagfmt.Sarif(out, res.Bag, res.FileSet, sarifMeta(opts.Registry))
	}
	if err != nil {
		return err
	}

	if res.Timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
	}

	if res.Bag.HasErrors() || res.Failures() > 0 || (warningsAsErrors && res.Bag.HasWarnings()) {
		return errFindings
	}
	return nil
}

func sarifMeta(reg *lint.Registry) diagfmt.SarifRunMeta {
	meta := diagfmt.SarifRunMeta{
		ToolName:       "jsvet",
		ToolVersion:    version.Version,
		InvocationArgs: os.Args[1:],
		Rules:          map[string]string{},
	}
	rules, _ := reg.Enabled()
	for _, r := range rules {
		meta.Rules[r.Name()] = lint.MetaOf(r).Doc
	}
	return meta
}

// writeSummary prints the totals line of pretty output.
func writeSummary(w io.Writer, res *driver.Result) error {
	var counts [3]int
	for _, d := range res.Bag.Items() {
		switch d.Severity {
		case diag.SevError:
			counts[0]++
		case diag.SevWarning:
			counts[1]++
		default:
			counts[2]++
		}
	}
	cached := 0
	for _, f := range res.Files {
		if f.Cached {
			cached++
		}
	}
	_, err := fmt.Fprintf(w, "\n%s, %s, %s in %s",
		plural(counts[0], "error"), plural(counts[1], "warning"), plural(counts[2], "info"),
		plural(len(res.Files), "file"))
	if err != nil {
		return err
	}
	if cached > 0 {
		fmt.Fprintf(w, " (%d cached)", cached)
	}
	if res.Dropped > 0 {
		fmt.Fprintf(w, "; %d more not shown", res.Dropped)
	}
	_, err = fmt.Fprintln(w)
	return err
}

func plural(n int, noun string) string {
	if n == 1 || noun == "info" {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
