// Package output renders command output for terminals and scripts.
//
// Text mode styles headers and notices with lipgloss when the destination
// is a terminal and falls back to plain text otherwise. JSON mode emits
// machine-readable documents.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects how a command renders its results.
type Mode string

// Output modes.
const (
	ModeAuto Mode = "auto"
	ModeText Mode = "text"
	ModeJSON Mode = "json"
)

// Modes lists every accepted --output value.
var Modes = []Mode{ModeAuto, ModeText, ModeJSON}

// Valid reports whether m is a known mode. The empty mode means auto.
func (m Mode) Valid() bool {
	switch m {
	case "", ModeAuto, ModeText, ModeJSON:
		return true
	}
	return false
}

// Renderer writes styled output to a single writer.
type Renderer struct {
	out  io.Writer
	mode Mode

	header  lipgloss.Style
	muted   lipgloss.Style
	errorSt lipgloss.Style
	warning lipgloss.Style
	success lipgloss.Style
}

// NewRenderer creates a Renderer, detecting whether out is a terminal.
func NewRenderer(out io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, IsTerminal(out), mode)
}

// NewRendererWithTTY creates a Renderer with an explicit terminal flag.
func NewRendererWithTTY(out io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}

	lr := lipgloss.NewRenderer(out)
	if !isTTY {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		out:     out,
		mode:    mode,
		header:  lr.NewStyle().Bold(true),
		muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
		errorSt: lr.NewStyle().Foreground(lipgloss.Color("9")),
		warning: lr.NewStyle().Foreground(lipgloss.Color("11")),
		success: lr.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	}
}

// IsTerminal reports whether w is a character device such as an interactive console.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int
}

// EffectiveMode resolves ModeAuto to a concrete mode.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode == ModeAuto {
		return ModeText
	}
	return r.mode
}

// Out returns the primary writer.
func (r *Renderer) Out() io.Writer {
	return r.out
}

// Println writes a line to the primary writer.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to the primary writer.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a bold heading line.
func (r *Renderer) Header(text string) {
	r.Println(r.header.Render(text))
}

// Muted writes a de-emphasized line.
func (r *Renderer) Muted(text string) {
	r.Println(r.muted.Render(text))
}

// Error writes a user-facing error line. It goes to the primary writer so
// it appears next to the prompt it refers to.
func (r *Renderer) Error(text string) {
	r.Println(r.errorSt.Render(text))
}

// Warning writes a notice line.
func (r *Renderer) Warning(text string) {
	r.Println(r.warning.Render(text))
}

// Success writes a highlighted success line.
func (r *Renderer) Success(text string) {
	r.Println(r.success.Render(text))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
