// Package log provides context-aware logging for devflow.
//
// Diagnostics go to stderr through a [Logger] carried on the context.
// When a debug file is configured, Debug records are also written as JSON
// through log/slog so long runs can be inspected after the fact.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

type ctxKey struct{}

// Logger provides output, verbose command logging and debug records.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
	sink    *slog.Logger
}

// New creates a new logger. Quiet suppresses everything, including verbose output.
func New(out io.Writer, verbose, quiet bool) *Logger {
	return &Logger{out: out, verbose: verbose, quiet: quiet}
}

// WithSink returns a copy of l that also writes Debug and Command records to sink.
func (l *Logger) WithSink(sink *slog.Logger) *Logger {
	c := *l
	c.sink = sink
	return &c
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Warnf writes a warning line. Warnings are shown unless quiet.
func (l *Logger) Warnf(format string, args ...any) {
	l.Printf("Warning: "+format+"\n", args...)
	if l.sink != nil {
		l.sink.Warn(fmt.Sprintf(format, args...))
	}
}

// Command logs an external command execution and returns a func that
// records its duration once the command has finished.
// Only prints when verbose mode is enabled.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	if dir != "" {
		line = "[" + dir + "] $ " + line
	} else {
		line = "$ " + line
	}
	return func(d time.Duration) {
		if l.sink != nil {
			l.sink.Debug("command", "dir", dir, "name", name, "args", args, "duration", d)
		}
		if l.IsVerbose() {
			fmt.Fprintf(l.out, "%s (%s)\n", line, d.Round(time.Millisecond))
		}
	}
}

// Debug prints msg followed by key=value pairs when verbose.
// A trailing key without value is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if l.sink != nil {
		l.sink.Debug(msg, keyvals[:len(keyvals)-len(keyvals)%2]...)
	}
	if !l.IsVerbose() {
		return
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}
	fmt.Fprintln(l.out, b.String())
}

// IsVerbose returns true if verbose output is enabled and not silenced by quiet.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}
