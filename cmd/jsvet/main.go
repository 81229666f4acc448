package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"jsvet/internal/version"
)

// errFindings makes the process exit with status 1 without printing an
// error; the findings were already reported.
var errFindings = errors.New("findings reported")

var rootCmd = &cobra.Command{
	Use:           "jsvet",
	Short:         "Lint JavaScript and TypeScript sources",
	Long:          `jsvet parses JavaScript, TypeScript and JSX, resolves scopes and runs lint rules, including a React Hooks dependency checker.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		runTraceCleanup()
	},
}

// main registers subcommands and persistent flags and executes the root
// command. Errors exit with status 1, usage errors with status 2.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)

	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.String("config", "", "path to jsvet.toml (default: discovered from the target)")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics to show (0 = config or unlimited)")
	pf.Int("jobs", 0, "max parallel workers (0 = config or GOMAXPROCS)")
	pf.StringSlice("only", nil, "run only the named rules")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	runTraceCleanup()
	if err == nil {
		return
	}
	if !errors.Is(err, errFindings) {
		fmt.Fprintf(os.Stderr, "jsvet: %v\n", err)
	}
	os.Exit(1)
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color against the output stream and NO_COLOR.
func useColor(cmd *cobra.Command, out *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		return out != nil && isTerminal(out), nil
	}
	return false, fmt.Errorf("unknown color mode %q (expected auto|on|off)", mode)
}

// stdoutFile returns the command's output as a file when it is one.
func stdoutFile(cmd *cobra.Command) *os.File {
	f, _ := cmd.OutOrStdout().(*os.File)
	return f
}
