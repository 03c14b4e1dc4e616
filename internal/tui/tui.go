// Package tui renders chat output for the terminal:
//   - Session banner and input prompt
//   - Assistant text and tool calls
//   - Status lines ([WARN], [ERROR])
//
// Colors are only emitted when the writer is a terminal.
package tui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// =============================================================================
// COLORS
// =============================================================================

const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
	ColorGreen  = "\033[0;32m"
	ColorBlue   = "\033[0;34m"
	ColorCyan   = "\033[0;36m"
	ColorYellow = "\033[1;33m"
	ColorRed    = "\033[0;31m"
)

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// =============================================================================
// PRINTER
// =============================================================================

// Printer writes styled lines to w.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter creates a printer. Colors are used only when color is true.
func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.w }

func (p *Printer) paint(color, s string) string {
	if !p.color {
		return s
	}
	return color + s + ColorReset
}

// Banner prints the interactive session header.
func (p *Printer) Banner(version, model string) {
	fmt.Fprintf(p.w, "%s %s\n", p.paint(ColorBold+ColorCyan, "liteagent "+version), p.paint(ColorDim, "("+model+")"))
	fmt.Fprintln(p.w, p.paint(ColorDim, "Type exit to quit."))
}

// Prompt prints the input marker without a newline.
func (p *Printer) Prompt() {
	fmt.Fprint(p.w, p.paint(ColorGreen, "> "))
}

// Newline ends a prompt line left open by EOF.
func (p *Printer) Newline() {
	fmt.Fprintln(p.w)
}

// Assistant prints model text. Empty text prints nothing.
func (p *Printer) Assistant(text string) {
	if text == "" {
		return
	}
	fmt.Fprintln(p.w, text)
}

// ToolCall prints one tool invocation with its JSON arguments.
func (p *Printer) ToolCall(id, name string, args []byte) {
	fmt.Fprintf(p.w, "%s %s %s\n", p.paint(ColorCyan, "[tool call "+id+"]"), p.paint(ColorBold, name), args)
}

// Warn prints a message with a yellow [WARN] prefix.
func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.paint(ColorYellow, "[WARN]"), msg)
}

// Error prints a message with a red [ERROR] prefix.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.paint(ColorRed, "[ERROR]"), msg)
}
