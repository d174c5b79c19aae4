package docmerge

import "strings"

// Kind tags the fragment families the merge engine understands.
type Kind int

const (
	// BadgeBlock is a contiguous run of shield badge image links.
	BadgeBlock Kind = iota
	// InstallSection is a heading-introduced installation section.
	InstallSection
)

func (k Kind) String() string {
	switch k {
	case BadgeBlock:
		return "badge-block"
	case InstallSection:
		return "install-section"
	}
	return "unknown"
}

// Fragment pairs a kind with its rendered text. Fragments are stateless and
// recomputed from the manifest every run.
type Fragment struct {
	Kind Kind
	Text string
}

// Location describes where a fragment kind lives in a document, or where it
// should be inserted when absent. Start and End are line indices (End
// exclusive); Anchor is the line index an absent fragment is inserted at.
type Location struct {
	Found  bool
	Start  int
	End    int
	Anchor int
}

// splitLines cuts a document into lines, keeping each line's terminator so
// the original bytes can be reassembled exactly. CRLF endings survive because
// the carriage return stays attached to its line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

// lineContent strips the terminator from a raw line.
func lineContent(line string) string {
	return strings.TrimRight(line, "\r\n")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// terminated splits fragment text into lines and gives each a newline
// terminator, ready to splice between existing document lines.
func terminated(text string) []string {
	parts := strings.Split(text, "\n")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, p+"\n")
	}
	return lines
}
