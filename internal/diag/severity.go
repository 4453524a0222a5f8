package diag

// Severity упорядочена: Info < Warning < Error. Фикстура считается
// неразобранной, если в Bag есть хотя бы одна SevError.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Fatal reports whether a diagnostic of this severity fails the parse.
func (s Severity) Fatal() bool { return s >= SevError }
