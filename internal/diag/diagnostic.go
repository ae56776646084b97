package diag

// Severity distinguishes diagnostics that abort compilation from those
// that are merely reported.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Kind is the diagnostic taxonomy from the error handling design.
type Kind string

const (
	ParseError     Kind = "ParseError"
	ReferenceError Kind = "ReferenceError"
	DuplicateError Kind = "DuplicateError"
	PortConflict   Kind = "PortConflict"
	CycleError     Kind = "CycleError"
	OptionError    Kind = "OptionError"
	ShapeError     Kind = "ShapeError"
	Internal       Kind = "Internal"
)

// Diagnostic is the value every pipeline failure produces.
type Diagnostic struct {
	Severity  Severity
	Kind      Kind
	Primary   Span
	Secondary []Span

	// AffectedServices names every service implicated by the diagnostic,
	// in report order. Rendered as "Affected services: a, b, c" when
	// non-empty.
	AffectedServices []string

	Message    string
	Suggestion string
}

// Error satisfies the error interface so a Diagnostic can be returned and
// wrapped like any other Go error.
func (d *Diagnostic) Error() string {
	return string(d.Kind) + ": " + d.Message
}

// New constructs an error-severity diagnostic.
func New(kind Kind, primary Span, message string) *Diagnostic {
	return &Diagnostic{Severity: SeverityError, Kind: kind, Primary: primary, Message: message}
}

// Warn constructs a warning-severity diagnostic.
func Warn(kind Kind, primary Span, message string) *Diagnostic {
	return &Diagnostic{Severity: SeverityWarning, Kind: kind, Primary: primary, Message: message}
}

// WithSuggestion returns d with Suggestion set, for fluent construction.
func (d *Diagnostic) WithSuggestion(s string) *Diagnostic {
	d.Suggestion = s
	return d
}

// WithAffected returns d with AffectedServices set.
func (d *Diagnostic) WithAffected(services ...string) *Diagnostic {
	d.AffectedServices = services
	return d
}

// WithSecondary appends secondary spans (e.g. the other half of a
// duplicate-definition pair).
func (d *Diagnostic) WithSecondary(spans ...Span) *Diagnostic {
	d.Secondary = append(d.Secondary, spans...)
	return d
}

// InternalError builds the guard diagnostic for conditions that should be
// unreachable. It never panics the caller; it reports a best-effort
// message instead.
func InternalError(where string, cause error) *Diagnostic {
	msg := "internal error in " + where
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return New(Internal, Span{}, msg)
}
