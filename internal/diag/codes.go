package diag

// Code identifies what produced a diagnostic. Lint diagnostics use the rule
// name; the constants below cover everything else.
type Code string

const (
	UnknownCode       Code = "unknown"
	CodeSyntaxError   Code = "syntax-error"
	CodeRuleFailure   Code = "internal/rule-failure"
	CodeIOError       Code = "io-error"
	CodeRedeclaration Code = "redeclaration"
)

func (c Code) String() string {
	if c == "" {
		return string(UnknownCode)
	}
	return string(c)
}
