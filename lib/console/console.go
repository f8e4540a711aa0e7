// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package console prints the operator-facing "[yolobox]" status lines
// and warnings. These are separate from the slog stream: they are always
// shown, go to stderr so they never mix with the agent's stdout, and are
// styled only when stderr is a color terminal.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Prefix starts every console line.
const Prefix = "[yolobox]"

// Console writes styled status lines.
type Console struct {
	out      io.Writer
	prefix   lipgloss.Style
	status   lipgloss.Style
	warning  lipgloss.Style
	failure  lipgloss.Style
	emphasis lipgloss.Style
}

// New creates a Console for w. Colors are used only when w is a terminal
// and the environment allows them (NO_COLOR, TERM=dumb, etc. are honored
// by termenv).
func New(w io.Writer) *Console {
	profile := termenv.Ascii
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		profile = termenv.EnvColorProfile()
	}
	return NewWithProfile(w, profile)
}

// NewWithProfile creates a Console with a fixed color profile. Tests use
// termenv.Ascii for plain output.
func NewWithProfile(w io.Writer, profile termenv.Profile) *Console {
	// lipgloss re-detects the profile from the writer unless it is set
	// explicitly.
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	return &Console{
		out:      w,
		prefix:   renderer.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		status:   renderer.NewStyle(),
		warning:  renderer.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		failure:  renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		emphasis: renderer.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// Stderr returns a Console writing to os.Stderr.
func Stderr() *Console {
	return New(os.Stderr)
}

// Status prints an informational line.
func (c *Console) Status(format string, args ...any) {
	c.line(c.status, "", fmt.Sprintf(format, args...))
}

// Warn prints a warning the operator must not miss.
func (c *Console) Warn(format string, args ...any) {
	c.line(c.warning, "WARNING: ", fmt.Sprintf(format, args...))
}

// Error prints a failure line.
func (c *Console) Error(format string, args ...any) {
	c.line(c.failure, "", fmt.Sprintf(format, args...))
}

// Notice prints a highlighted, non-alarming line (e.g. an available
// update).
func (c *Console) Notice(format string, args ...any) {
	c.line(c.emphasis, "", fmt.Sprintf(format, args...))
}

func (c *Console) line(style lipgloss.Style, label, message string) {
	fmt.Fprintf(c.out, "%s %s\n", c.prefix.Render(Prefix), style.Render(label+message))
}
