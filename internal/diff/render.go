package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderOptions controls diff presentation. Zero value renders plain text,
// untruncated; truncation is an explicit opt-in.
type RenderOptions struct {
	// Color enables ANSI styling by line prefix.
	Color bool
	// MaxLines truncates the rendered diff beyond this many lines, appending
	// an elision note. Zero or negative means no truncation.
	MaxLines int
}

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// Render applies presentation to a plain diff: optional coloring by prefix
// and optional truncation. Truncation never changes which lines the diff
// contains semantically, only how many are shown.
func Render(diff string, opts RenderOptions) string {
	if diff == "" {
		return ""
	}
	lines := strings.Split(diff, "\n")
	if opts.Color {
		for i, line := range lines {
			lines[i] = colorLine(line)
		}
	}
	if opts.MaxLines > 0 && len(lines) > opts.MaxLines {
		elided := len(lines) - opts.MaxLines
		note := fmt.Sprintf("... (%d more lines)", elided)
		if opts.Color {
			note = faintStyle.Render(note)
		}
		lines = append(lines[:opts.MaxLines], note)
	}
	return strings.Join(lines, "\n")
}

func colorLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return faintStyle.Render(line)
	case strings.HasPrefix(line, "+"):
		return addedStyle.Render(line)
	case strings.HasPrefix(line, "-"):
		return removedStyle.Render(line)
	case strings.HasPrefix(line, "@@"):
		return hunkStyle.Render(line)
	}
	return line
}
