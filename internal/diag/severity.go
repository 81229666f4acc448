package diag

import "fmt"

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lower-case form used in short output and config files.
func (s Severity) Label() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

// ParseSeverity accepts the spellings allowed in jsvet.toml.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "error", "deny":
		return SevError, nil
	case "warn", "warning":
		return SevWarning, nil
	case "info":
		return SevInfo, nil
	}
	return SevInfo, fmt.Errorf("unknown severity %q", s)
}
