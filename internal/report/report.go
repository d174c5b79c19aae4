// internal/report/report.go
//
// Change classification and terminal reporting. The reporter only formats;
// persistence is the runner's job, so dry-run purity holds by construction.
// Color is an explicit configuration value resolved once at startup, never
// ambient state consulted mid-run.

package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/kingrea/packdocs/internal/diff"
)

// Kind classifies a document update.
type Kind int

const (
	NoChange Kind = iota
	Created
	Modified
)

func (k Kind) String() string {
	switch k {
	case NoChange:
		return "no-change"
	case Created:
		return "created"
	case Modified:
		return "modified"
	}
	return "unknown"
}

// Mode selects whether a run persists results or only previews them.
type Mode int

const (
	Apply Mode = iota
	DryRun
)

// Record is the outcome of classifying one document update.
type Record struct {
	Kind  Kind
	Label string
	Diff  string
}

// Classify compares an old document (nil when the file did not exist) against
// the freshly merged content. A previously missing file with non-empty new
// content is Created; otherwise the diff engine decides.
func Classify(old *string, new, label string) Record {
	if old == nil {
		if new == "" {
			return Record{Kind: NoChange, Label: label}
		}
		_, d := diff.Text("", new, label)
		return Record{Kind: Created, Label: label, Diff: d}
	}
	changed, d := diff.Text(*old, new, label)
	if !changed {
		return Record{Kind: NoChange, Label: label}
	}
	return Record{Kind: Modified, Label: label, Diff: d}
}

// ColorEnabled resolves the color convention once at startup: NO_COLOR and
// CLICOLOR=0 disable styling, as does a terminal without color support.
func ColorEnabled() bool {
	if termenv.EnvNoColor() {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

var (
	dimStyle     = lipgloss.NewStyle().Faint(true)
	createdStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Reporter renders records and status lines to a writer.
type Reporter struct {
	Out io.Writer
	// Color enables ANSI styling.
	Color bool
	// MaxDiffLines truncates printed diffs when positive.
	MaxDiffLines int
}

// New builds a reporter writing to out.
func New(out io.Writer, color bool, maxDiffLines int) *Reporter {
	return &Reporter{Out: out, Color: color, MaxDiffLines: maxDiffLines}
}

// Report prints one record. DryRun only changes the annotation; the reporter
// never touches storage in either mode.
func (r *Reporter) Report(rec Record, mode Mode) {
	suffix := ""
	if mode == DryRun {
		suffix = " " + r.dim("(dry run)")
	}
	switch rec.Kind {
	case NoChange:
		fmt.Fprintln(r.Out, r.dim(rec.Label+": no changes"))
		return
	case Created:
		fmt.Fprintln(r.Out, r.green(rec.Label+": created")+suffix)
	case Modified:
		fmt.Fprintln(r.Out, rec.Label+":"+suffix)
	}
	if rec.Diff != "" {
		rendered := diff.Render(rec.Diff, diff.RenderOptions{
			Color:    r.Color,
			MaxLines: r.MaxDiffLines,
		})
		fmt.Fprintln(r.Out, rendered)
	}
}

// Skipped prints a per-document skip notice.
func (r *Reporter) Skipped(label, reason string) {
	fmt.Fprintln(r.Out, r.dim(fmt.Sprintf("%s: skipped (%s)", label, reason)))
}

// Warningf prints a yellow warning line.
func (r *Reporter) Warningf(format string, args ...any) {
	fmt.Fprintln(r.Out, r.style(warnStyle, fmt.Sprintf(format, args...)))
}

// Errorf prints a red error line.
func (r *Reporter) Errorf(format string, args ...any) {
	fmt.Fprintln(r.Out, r.style(errorStyle, fmt.Sprintf(format, args...)))
}

func (r *Reporter) dim(s string) string   { return r.style(dimStyle, s) }
func (r *Reporter) green(s string) string { return r.style(createdStyle, s) }

func (r *Reporter) style(st lipgloss.Style, s string) string {
	if !r.Color {
		return s
	}
	return st.Render(s)
}
