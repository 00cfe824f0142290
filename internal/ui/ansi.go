// Package ui renders console output for the non-interactive commands.
package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	reset = "\033[0m"
	bold  = "\033[1m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"
)

var (
	forceColor   bool
	disableColor bool
)

// SetColorForcing overrides terminal detection.
func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of w, or fallback when w is not a terminal.
func Width(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// Color wraps s in color when w is a terminal or colors are forced.
func Color(w io.Writer, color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || IsTerminal(w) {
		return color + s + reset
	}
	return s
}

// C colors s for stdout.
func C(color, s string) string { return Color(os.Stdout, color, s) }

func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, Color(w, current.Success, current.SymDone+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, Color(w, current.Error, current.SymFail+" "+msg))
}
