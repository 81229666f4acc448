package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"jsvet/internal/lint"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available lint rules and their configured state",
	RunE:  runRules,
}

type ruleRow struct {
	name     string
	severity string
	fixable  string
	interest string
	doc      string
}

func runRules(cmd *cobra.Command, args []string) error {
	opts, _, err := loadDriverOptions(cmd, targetsOrCwd(args))
	if err != nil {
		return err
	}
	colored, err := useColor(cmd, stdoutFile(cmd))
	if err != nil {
		return err
	}
	return renderRules(cmd.OutOrStdout(), opts.Registry, colored)
}

func collectRuleRows(reg *lint.Registry) []ruleRow {
	idx := reg.Index()
	rows := make([]ruleRow, 0, idx.Len())
	for i := range idx.Len() {
		r := idx.Rule(i)
		meta := lint.MetaOf(r)
		row := ruleRow{
			name:     r.Name(),
			severity: meta.Severity.Label(),
			interest: idx.Interest(i).String(),
			doc:      meta.Doc,
		}
		if s, ok := reg.Setting(r.Name()); ok {
			if s.Off {
				row.severity = "off"
			} else {
				row.severity = s.Severity.Label()
			}
		}
		if meta.Fixable {
			row.fixable = "yes"
		}
		rows = append(rows, row)
	}
	return rows
}

func renderRules(w io.Writer, reg *lint.Registry, colored bool) error {
	rows := collectRuleRows(reg)

	headerStyle := lipgloss.NewStyle()
	nameStyle := lipgloss.NewStyle()
	docStyle := lipgloss.NewStyle()
	if colored {
		headerStyle = headerStyle.Bold(true).Foreground(lipgloss.Color("7"))
		nameStyle = nameStyle.Foreground(lipgloss.Color("6"))
		docStyle = docStyle.Faint(true)
	}

	header := ruleRow{name: "RULE", severity: "SEVERITY", fixable: "FIX", interest: "NODES", doc: "DESCRIPTION"}
	widths := [4]int{}
	for _, r := range append([]ruleRow{header}, rows...) {
		for i, cell := range []string{r.name, r.severity, r.fixable, r.interest} {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	// long kind lists would push descriptions off screen
	widths[3] = min(widths[3], 32)

	line := func(r ruleRow, cellStyle func(i int, s string) string) string {
		cells := []string{r.name, r.severity, r.fixable, runewidth.Truncate(r.interest, widths[3], "…")}
		var sb strings.Builder
		for i, cell := range cells {
			pad := widths[i] - runewidth.StringWidth(cell)
			sb.WriteString(cellStyle(i, cell))
			sb.WriteString(strings.Repeat(" ", pad+2))
		}
		return sb.String()
	}

	if _, err := fmt.Fprintln(w, line(header, func(_ int, s string) string { return headerStyle.Render(s) })+headerStyle.Render(header.doc)); err != nil {
		return err
	}
	for _, r := range rows {
		text := line(r, func(i int, s string) string {
			switch i {
			case 0:
				return nameStyle.Render(s)
			case 1:
				return severityStyle(r.severity, colored).Render(s)
			}
			return s
		})
		if _, err := fmt.Fprintln(w, text+docStyle.Render(r.doc)); err != nil {
			return err
		}
	}
	return nil
}

func severityStyle(label string, colored bool) lipgloss.Style {
	style := lipgloss.NewStyle()
	if !colored {
		return style
	}
	switch label {
	case "error":
		return style.Foreground(lipgloss.Color("1"))
	case "warning":
		return style.Foreground(lipgloss.Color("3"))
	case "off":
		return style.Faint(true)
	}
	return style.Foreground(lipgloss.Color("4"))
}
