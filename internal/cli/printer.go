package cli

// This file holds the terminal output helpers shared by all commands.

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// ConfigureColor disables colored output when f is not a terminal.
func ConfigureColor(f *os.File) {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		pterm.DisableColor()
	}
}

// Table renders data as a table whose first row is the header.
func Table(data [][]string) {
	renderTable(os.Stdout, data, false)
}

// TableBoxed renders data as a boxed table whose first row is the header.
func TableBoxed(data [][]string) {
	renderTable(os.Stdout, data, true)
}

func renderTable(w io.Writer, data [][]string, boxed bool) {
	if len(data) == 0 {
		return
	}
	table := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(data)).WithWriter(w)
	if boxed {
		table = table.WithBoxed()
	}
	if err := table.Render(); err != nil {
		fmt.Fprintln(w, err)
	}
}

func Green(s string) string  { return pterm.Green(s) }
func Yellow(s string) string { return pterm.Yellow(s) }
func Red(s string) string    { return pterm.Red(s) }
func Cyan(s string) string   { return pterm.Cyan(s) }

// Success prints a success line to stderr.
func Success(msg string) {
	pterm.Success.WithWriter(os.Stderr).Println(msg)
}

// Error prints an error line to stderr.
func Error(msg string) {
	pterm.Error.WithWriter(os.Stderr).Println(msg)
}

// Warn prints a warning line to stderr.
func Warn(msg string) {
	pterm.Warning.WithWriter(os.Stderr).Println(msg)
}

// Printer writes command output. Composed messages go to Out (stdout when
// nil); progress lines go to stderr and are suppressed in quiet mode.
type Printer struct {
	Quiet bool
	Out   io.Writer
}

func (p *Printer) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

// Section prints a section header.
func (p *Printer) Section(title string) {
	if p.Quiet {
		return
	}
	pterm.DefaultSection.WithWriter(os.Stderr).Println(title)
}

// Step prints a progress step.
func (p *Printer) Step(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(os.Stderr, Cyan("==> ")+msg)
}

// Info prints an informational line.
func (p *Printer) Info(msg string) {
	if p.Quiet {
		return
	}
	pterm.Info.WithWriter(os.Stderr).Println(msg)
}

// SpinnerStart starts a spinner and returns the function that stops it.
func (p *Printer) SpinnerStart(msg string) func(ok bool, final string) {
	if p.Quiet {
		return func(bool, string) {}
	}
	spinner, err := pterm.DefaultSpinner.WithWriter(os.Stderr).WithRemoveWhenDone(true).Start(msg)
	if err != nil {
		return func(bool, string) {}
	}
	return func(ok bool, final string) {
		if ok {
			spinner.Success(final)
			return
		}
		spinner.Fail(final)
	}
}

// Printf writes formatted output to Out regardless of quiet mode.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out(), format, args...)
}

// Println writes a line to Out regardless of quiet mode.
func (p *Printer) Println(s string) {
	fmt.Fprintln(p.out(), s)
}

// Table renders data to Out.
func (p *Printer) Table(data [][]string) {
	renderTable(p.out(), data, false)
}
