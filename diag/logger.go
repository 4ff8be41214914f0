package diag

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/sarchlab/groundtemp/sim"
	"github.com/tebeka/atexit"
)

const (
	prefixAdvisory = "   ** Warning ** "
	prefixSevere   = "   ** Severe  ** "
	prefixFatal    = "   **  Fatal  ** "
	prefixContinue = "   **   ~~~   ** "
)

// Logger is a Sink that writes error-file lines through a log.Logger and
// audit lines to a separate writer.
type Logger struct {
	sim.HookableBase

	mu       sync.Mutex
	errLog   *log.Logger
	audit    io.Writer
	exit     func(code int)
	counts   map[Severity]int
	lastSeen Severity
}

// LoggerBuilder builds Loggers.
type LoggerBuilder struct {
	errOut   io.Writer
	auditOut io.Writer
	exit     func(code int)
}

// MakeLoggerBuilder creates a LoggerBuilder that writes errors to stderr,
// discards audit lines, and exits through atexit.
func MakeLoggerBuilder() LoggerBuilder {
	return LoggerBuilder{
		errOut:   os.Stderr,
		auditOut: io.Discard,
		exit:     atexit.Exit,
	}
}

// WithErrWriter sets where error-file lines go.
func (b LoggerBuilder) WithErrWriter(w io.Writer) LoggerBuilder {
	b.errOut = w
	return b
}

// WithAuditWriter sets where audit lines go.
func (b LoggerBuilder) WithAuditWriter(w io.Writer) LoggerBuilder {
	b.auditOut = w
	return b
}

// WithExitFunc replaces the function Fatal uses to terminate the process.
func (b LoggerBuilder) WithExitFunc(f func(code int)) LoggerBuilder {
	b.exit = f
	return b
}

// Build creates the Logger.
func (b LoggerBuilder) Build() *Logger {
	return &Logger{
		errLog: log.New(b.errOut, "", 0),
		audit:  b.auditOut,
		exit:   b.exit,
		counts: make(map[Severity]int),
	}
}

// Advisory records a warning.
func (l *Logger) Advisory(msg string) {
	l.record(Record{Severity: Advisory, Message: msg}, prefixAdvisory)
}

// Severe records a severe error.
func (l *Logger) Severe(msg string) {
	l.record(Record{Severity: Severe, Message: msg}, prefixSevere)
}

// Continue records a continuation of the last message. It inherits the
// severity of the message it continues.
func (l *Logger) Continue(msg string) {
	l.mu.Lock()
	sev := l.lastSeen
	l.mu.Unlock()

	l.record(
		Record{Severity: sev, Message: msg, Continuation: true},
		prefixContinue,
	)
}

// Fatal records the message and the run summary, then terminates the
// process.
func (l *Logger) Fatal(msg string) {
	l.record(Record{Severity: Fatal, Message: msg}, prefixFatal)
	l.record(
		Record{
			Severity:     Fatal,
			Message:      "Program terminated: " + l.Summary(),
			Continuation: true,
		},
		prefixFatal,
	)

	l.exit(1)

	panic(FatalError{Message: msg})
}

// Audit writes one line to the audit writer.
func (l *Logger) Audit(line string) {
	l.mu.Lock()
	_, err := fmt.Fprintln(l.audit, line)
	l.mu.Unlock()

	if err != nil {
		log.Panic(err)
	}

	l.InvokeHook(sim.HookCtx{
		Domain: l,
		Pos:    HookPosAudit,
		Item:   line,
	})
}

// Count returns how many non-continuation messages of a severity were
// recorded.
func (l *Logger) Count(s Severity) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.counts[s]
}

// Summary returns the warning and severe error tally.
func (l *Logger) Summary() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return fmt.Sprintf("%d Warning; %d Severe Errors",
		l.counts[Advisory], l.counts[Severe])
}

func (l *Logger) record(r Record, prefix string) {
	l.mu.Lock()
	if !r.Continuation {
		l.counts[r.Severity]++
		l.lastSeen = r.Severity
	}
	l.errLog.Print(prefix + r.Message)
	l.mu.Unlock()

	l.InvokeHook(sim.HookCtx{
		Domain: l,
		Pos:    HookPosDiagnostic,
		Item:   r,
	})
}
