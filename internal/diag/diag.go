// Package diag implements the verbosity-aware diagnostic sink SPEC_FULL.md §1 and §9
// treat as an out-of-scope external collaborator, colorized when standard error is a
// terminal. Grounded on the example pack's conductor repo, which gates fatih/color
// output on mattn/go-isatty detection the same way.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Sink is a verbosity-aware diagnostic writer. The zero value writes plain,
// uncolored text to os.Stderr at normal verbosity.
type Sink struct {
	Out     io.Writer
	Verbose bool

	errColor  *color.Color
	warnColor *color.Color
}

// New returns a Sink writing to os.Stderr, colorized only when stderr is a terminal.
func New(verbose bool) *Sink {
	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow)
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		errColor.DisableColor()
		warnColor.DisableColor()
	}
	return &Sink{
		Out:       os.Stderr,
		Verbose:   verbose,
		errColor:  errColor,
		warnColor: warnColor,
	}
}

// Errorf writes a tagged error-kind diagnostic, per SPEC_FULL.md §7's "textual error
// message on the diagnostic sink tagged with the error kind."
func (s *Sink) Errorf(kind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s.errColor == nil {
		fmt.Fprintf(s.out(), "[%s] %s\n", kind, msg)
		return
	}
	s.errColor.Fprintf(s.out(), "[%s] %s\n", kind, msg)
}

// Warnf writes a warning-level diagnostic.
func (s *Sink) Warnf(format string, args ...any) {
	if s.warnColor == nil {
		fmt.Fprintf(s.out(), "warning: %s\n", fmt.Sprintf(format, args...))
		return
	}
	s.warnColor.Fprintf(s.out(), "warning: %s\n", fmt.Sprintf(format, args...))
}

// Infof writes an informational diagnostic, suppressed unless Verbose is set.
func (s *Sink) Infof(format string, args ...any) {
	if !s.Verbose {
		return
	}
	fmt.Fprintf(s.out(), "%s\n", fmt.Sprintf(format, args...))
}

func (s *Sink) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stderr
}
