// Package term holds the ANSI codes used to color log level tags and the
// banner. Until [Configure] turns them on they are empty strings, so
// concatenating them is harmless.
package term

import (
	"os"
	"strings"

	"github.com/backmassage/roisplit/internal/config"
)

// Codes for the level tags: Blue INFO, Green SUCCESS, Yellow WARN, Red ERROR,
// Cyan DEBUG. Magenta colors the banner. NC resets.
var (
	Red     string
	Green   string
	Yellow  string
	Blue    string
	Cyan    string
	Magenta string
	NC      string
)

type palette struct {
	red, green, yellow, blue, cyan, magenta, reset string
}

var ansi = palette{
	red:     "\033[1;91m",
	green:   "\033[1;92m",
	yellow:  "\033[1;93m",
	blue:    "\033[1;94m",
	cyan:    "\033[1;96m",
	magenta: "\033[1;95m",
	reset:   "\033[0m",
}

// Configure switches the codes on or off for mode. [logging.NewLogger]
// calls it; tests call it again to reset.
func Configure(mode config.ColorMode) {
	var p palette
	if wantColor(mode, os.Getenv, os.Stdout) {
		p = ansi
	}
	Red, Green, Yellow, Blue, Cyan, Magenta, NC =
		p.red, p.green, p.yellow, p.blue, p.cyan, p.magenta, p.reset
}

// Enabled reports whether colors are on.
func Enabled() bool { return NC != "" }

// Paint wraps s in color and a reset, or returns s unchanged when colors
// are off.
func Paint(color, s string) string {
	if !Enabled() || color == "" {
		return s
	}
	return color + s + NC
}

// wantColor applies mode; auto means stdout is a terminal, NO_COLOR
// (https://no-color.org) is unset and TERM is not "dumb".
func wantColor(mode config.ColorMode, getenv func(string) string, out *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if getenv("NO_COLOR") != "" || strings.EqualFold(getenv("TERM"), "dumb") {
		return false
	}
	return IsTerminal(out)
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
