// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides terminal output helpers for the yapi-mcp CLI.
//
// Messages go to a configurable writer (stderr by default) so that stdout
// carries only command results. Colors follow --no-color, NO_COLOR and
// whether the writer is a terminal.
//
// Color usage:
//   - Red: errors
//   - Yellow: warnings
//   - Green: success
//   - Cyan: info and counts
//   - Bold: headers and labels
//   - Dim: URLs and paths
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	Red    = color.New(color.FgRed)
	Yellow = color.New(color.FgYellow)
	Green  = color.New(color.FgGreen)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
	Dim    = color.New(color.Faint)
)

var out io.Writer = os.Stderr

// SetOutput redirects status messages. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// InitColors enables colors only when noColor is false, NO_COLOR is unset
// and f is a terminal. Call it once after flag parsing.
func InitColors(noColor bool, f *os.File) {
	color.NoColor = noColor || os.Getenv("NO_COLOR") != "" || !IsTerminal(f)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Success prints "✓ msg" in green.
func Success(msg string) {
	_, _ = Green.Fprintln(out, "✓ "+msg)
}

// Successf is Success with formatting.
func Successf(format string, args ...any) {
	Success(fmt.Sprintf(format, args...))
}

// Warning prints "⚠ msg" in yellow.
func Warning(msg string) {
	_, _ = Yellow.Fprintln(out, "⚠ "+msg)
}

// Error prints "✗ msg" in red.
func Error(msg string) {
	_, _ = Red.Fprintln(out, "✗ "+msg)
}

// Info prints "ℹ msg" in cyan.
func Info(msg string) {
	_, _ = Cyan.Fprintln(out, "ℹ "+msg)
}

// Infof is Info with formatting.
func Infof(format string, args ...any) {
	Info(fmt.Sprintf(format, args...))
}

// Header prints a bold header underlined to its width.
//
//	YApi Category 2783
//	==================
func Header(text string) {
	_, _ = Bold.Fprintln(out, text)
	fmt.Fprintln(out, strings.Repeat("=", utf8.RuneCountInString(text)))
}

// Label returns text in bold for inline use.
func Label(text string) string {
	return Bold.Sprint(text)
}

// DimText returns text dimmed, for URLs and paths.
func DimText(text string) string {
	return Dim.Sprint(text)
}

// CountText returns a count in cyan.
func CountText(count int) string {
	return Cyan.Sprint(count)
}
