package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jsvet/internal/ast"
	"jsvet/internal/diagfmt"
	"jsvet/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file>",
	Short: "Parse a file and print its syntax tree or scopes",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("dump", true, "print the syntax tree outline")
	parseCmd.Flags().Bool("scopes", false, "print scopes, symbols and unresolved references")
	parseCmd.Flags().String("format", "text", "scopes output format (text|json)")
	parseCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
}

func runParse(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	dump, err := cmd.Flags().GetBool("dump")
	if err != nil {
		return fmt.Errorf("failed to get dump flag: %w", err)
	}
	scopes, err := cmd.Flags().GetBool("scopes")
	if err != nil {
		return fmt.Errorf("failed to get scopes flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be text or json)", format)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := diagfmt.ParsePathMode(pathModeStr)
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	res, err := driver.Parse(cmd.Context(), args[0], maxDiagnostics)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case scopes:
		sem := diagfmt.BuildSemantics(res.Table, res.FileSet, res.File.ID, pathMode)
		if format == "json" {
			err = diagfmt.SemanticsJSON(out, sem)
		} else {
			err = diagfmt.SemanticsText(out, sem)
		}
	case dump:
		err = ast.Dump(out, res.Tree, res.Tree.Root)
	}
	if err != nil {
		return err
	}

	if res.Bag.Len() > 0 {
		color, cerr := useColor(cmd, stdoutFile(cmd))
		if cerr != nil {
			return cerr
		}
		if err := diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     color,
			Context:   1,
			PathMode:  pathMode,
			ShowFixes: true,
		}); err != nil {
			return err
		}
	}
	if res.Bag.HasErrors() {
		return errFindings
	}
	return nil
}
