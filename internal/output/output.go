// Package output provides context-aware output for devflow.
// Stdout is used for primary data output (repository state, tables, JSON).
// Stderr (via log package) is used for diagnostics.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
)

type ctxKey struct{}

// Printer writes primary output to stdout.
// Styled text goes through Render, which downsamples ANSI styling to what
// the destination supports and strips it entirely for pipes and files.
type Printer struct {
	w      io.Writer
	styled *colorprofile.Writer
}

// New creates a Printer writing to w. The color profile is detected from
// w and the process environment (NO_COLOR, TERM).
func New(w io.Writer) *Printer {
	return NewWithProfile(w, colorprofile.Detect(w, os.Environ()))
}

// NewWithProfile creates a Printer with a fixed color profile.
func NewWithProfile(w io.Writer, profile colorprofile.Profile) *Printer {
	return &Printer{w: w, styled: &colorprofile.Writer{Forward: w, Profile: profile}}
}

// WithPrinter attaches a Printer for w to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, New(w))
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

// Print writes output without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Render writes styled text produced by lipgloss.
func (p *Printer) Render(s string) {
	_, _ = p.styled.Write([]byte(s))
}

// Plain reports whether styling is stripped from rendered output.
func (p *Printer) Plain() bool {
	return p.styled.Profile == colorprofile.NoTTY || p.styled.Profile == colorprofile.Ascii
}

// JSON writes v as indented JSON followed by a newline.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}
