package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ColorsEnabled returns true if terminal colors should be used.
// Respects NO_COLOR environment variable (https://no-color.org/)
func ColorsEnabled() bool {
	_, noColor := os.LookupEnv("NO_COLOR")
	if noColor {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Symbols for CLI output (ASCII-compatible)
const (
	SymbolSuccess = "+"
	SymbolError   = "x"
	SymbolWarning = "!"
	SymbolInfo    = "*"
	SymbolArrow   = "->"
	SymbolBullet  = "-"
)

var (
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	secondaryStyle = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("6"))
	boldStyle      = lipgloss.NewStyle().Bold(true)
)

// Printer writes user-facing output. Diagnostics go through charmbracelet/log
// instead.
type Printer struct {
	out    io.Writer
	err    io.Writer
	colors bool
}

func ProvidePrinter() *Printer {
	return &Printer{out: os.Stdout, err: os.Stderr, colors: ColorsEnabled()}
}

// NewPrinter returns a Printer without colors, for tests and pipes.
func NewPrinter(out, err io.Writer) *Printer {
	return &Printer{out: out, err: err}
}

func (p *Printer) Out() io.Writer {
	return p.out
}

// Diagnostics returns a Printer that writes to the error stream, for
// summaries that must not mix with data on stdout.
func (p *Printer) Diagnostics() *Printer {
	return &Printer{out: p.err, err: p.err, colors: p.colors}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.colors {
		return text
	}
	return s.Render(text)
}

func (p *Printer) Bold(text string) string {
	return p.style(boldStyle, text)
}

func (p *Printer) Secondary(text string) string {
	return p.style(secondaryStyle, text)
}

func (p *Printer) Println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}

// Write copies raw bytes, e.g. encoded manifests, to the output.
func (p *Printer) Write(data []byte) (int, error) {
	return p.out.Write(data)
}

// PrintHeader prints a bold section header
func (p *Printer) PrintHeader(text string) {
	fmt.Fprintln(p.out, p.style(headerStyle, text))
}

// PrintSuccess prints a success message with checkmark
func (p *Printer) PrintSuccess(message string) {
	fmt.Fprintf(p.out, "%s %s\n", p.style(successStyle, SymbolSuccess), p.style(successStyle, message))
}

// PrintError prints an error message with X symbol to stderr
func (p *Printer) PrintError(message string) {
	fmt.Fprintf(p.err, "%s %s\n", p.style(errorStyle, SymbolError), p.style(errorStyle, message))
}

// PrintWarning prints a warning message with ! symbol to stderr
func (p *Printer) PrintWarning(message string) {
	fmt.Fprintf(p.err, "%s %s\n", p.style(warningStyle, SymbolWarning), p.style(warningStyle, message))
}

// PrintInfo prints an info message with * symbol
func (p *Printer) PrintInfo(message string) {
	fmt.Fprintf(p.out, "%s %s\n", p.style(infoStyle, SymbolInfo), p.style(infoStyle, message))
}

// PrintStep prints a step being executed with arrow
func (p *Printer) PrintStep(message string) {
	fmt.Fprintf(p.out, "  %s %s\n", SymbolArrow, message)
}

// PrintSecondary prints secondary/supplementary information
func (p *Printer) PrintSecondary(message string) {
	fmt.Fprintf(p.out, "  %s %s\n", SymbolArrow, p.Secondary(message))
}

// Plural returns the singular or plural form based on count
func Plural(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
