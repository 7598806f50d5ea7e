// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// ColorMode selects whether the text view uses ANSI colors.
type ColorMode int

const (
	// ColorAuto enables colors unless NO_COLOR is set, TERM is dumb, or
	// stdout is not a terminal.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses auto, always, or never.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors decides whether to emit colors.
func ResolveColors(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		return !color.NoColor
	}
}

// Printer writes styled terminal output.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter creates a printer writing results to out and failures to errOut.
func NewPrinter(out, errOut io.Writer, mode ColorMode) *Printer {
	return &Printer{out: out, err: errOut, useColors: ResolveColors(mode)}
}

func (p *Printer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.useColors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Title prints the report title with an underline.
func (p *Printer) Title(title string) {
	p.paint(color.FgCyan, color.Bold).Fprintln(p.out, title)
	fmt.Fprintln(p.out, strings.Repeat("═", len([]rune(title))))
}

// Header prints a section header.
func (p *Printer) Header(title string) {
	p.paint(color.Bold).Fprintf(p.out, "\n%s\n", title)
	fmt.Fprintln(p.out, strings.Repeat("─", len([]rune(title))))
}

// Print prints a plain line.
func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Failure prints the single user-facing error banner.
func (p *Printer) Failure(msg string) {
	if p.useColors {
		p.paint(color.FgRed, color.Bold).Fprintf(p.err, "✗ %s\n", msg)
		return
	}
	fmt.Fprintf(p.err, "[ERROR] %s\n", msg)
}

// Warning prints a non-fatal notice.
func (p *Printer) Warning(format string, args ...any) {
	if p.useColors {
		p.paint(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
}

// Bold returns text in bold.
func (p *Printer) Bold(text string) string { return p.paint(color.Bold).Sprint(text) }

// Dim returns dimmed text.
func (p *Printer) Dim(text string) string { return p.paint(color.Faint).Sprint(text) }

// Accent returns text highlighted for links and keywords.
func (p *Printer) Accent(text string) string { return p.paint(color.FgCyan).Sprint(text) }

// Chip returns a keyword rendered as a tag.
func (p *Printer) Chip(text string) string {
	if p.useColors {
		return p.paint(color.FgBlue).Sprintf("[%s]", text)
	}
	return "[" + text + "]"
}
