// Package diag defines the diagnostic model shared by the parser, the linter
// and every rule.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: the rule name for lint findings, or a built-in code (codes.go).
//   - Message: human oriented text; keep it short and actionable.
//   - Primary span: the canonical source.Span pointing to the issue.
//   - Labels: optional secondary spans with their own message.
//   - Help: optional advice rendered after the snippet.
//   - Fix: at most one replacement of a span with new text.
//
// A Fix is tagged Safe or DangerousSuggestion. `jsvet fix` applies Safe fixes
// by default and dangerous ones only with --unsafe; see internal/fix.
//
// # Emitting diagnostics
//
// Producers talk to a Reporter, never to storage. BagReporter collects into a
// Bag, which supports limits, sorting and filtering. ReportBuilder offers a
// chained form for call sites that attach labels, help and a fix.
//
// Rendering lives in internal/diagfmt.
package diag
