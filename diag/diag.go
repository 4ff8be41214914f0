// Package diag provides the diagnostics sink used while reading input and
// running a simulation. Messages follow the EnergyPlus error-file layout, and
// audit lines follow the initialization-output layout.
package diag

import "github.com/sarchlab/groundtemp/sim"

// Severity grades a diagnostic message.
type Severity int

// Severities, in escalating order. Only Fatal halts the run.
const (
	Advisory Severity = iota
	Severe
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Advisory:
		return "Advisory"
	case Severe:
		return "Severe"
	case Fatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// A Sink receives diagnostics from input processing and from models.
type Sink interface {
	// Advisory records a warning. Processing continues unaffected.
	Advisory(msg string)

	// Severe records an error that fails the current construction attempt.
	Severe(msg string)

	// Continue appends a continuation line to the previous message.
	Continue(msg string)

	// Fatal records an unrecoverable error and terminates the run. It never
	// returns to the caller.
	Fatal(msg string)

	// Audit writes a line to the initialization output.
	Audit(line string)
}

// A Record is a single diagnostic message, passed to hooks as the item.
type Record struct {
	Severity     Severity
	Message      string
	Continuation bool
}

// HookPosDiagnostic is triggered after every diagnostic record is written.
var HookPosDiagnostic = &sim.HookPos{Name: "Diagnostic"}

// HookPosAudit is triggered after every audit line is written. The item is
// the line.
var HookPosAudit = &sim.HookPos{Name: "Audit"}

// FatalError is the panic value raised by Logger.Fatal when the configured
// exit function returns.
type FatalError struct {
	Message string
}

func (e FatalError) Error() string {
	return "fatal: " + e.Message
}
