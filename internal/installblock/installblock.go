// internal/installblock/installblock.go
//
// Installation section generation. The section is only ever inserted when a
// README has no install heading at all; once present, the user's own wording
// wins and this text is never applied again.

package installblock

import (
	"fmt"
	"strings"

	"github.com/kingrea/packdocs/internal/manifest"
)

// Heading is the heading line used for generated installation sections.
const Heading = "## Installation"

// Markdown renders the installation section for a manifest. The result has no
// leading or trailing blank lines; the merge engine owns separator placement.
func Markdown(m *manifest.Manifest) string {
	var b strings.Builder
	b.WriteString(Heading)
	b.WriteString("\n\n")
	b.WriteString("Clone this repository into your Talon user directory:\n\n")
	b.WriteString("```sh\n")
	b.WriteString("cd ~/.talon/user\n")
	b.WriteString(fmt.Sprintf("git clone %s\n", cloneTarget(m)))
	b.WriteString("```\n\n")
	b.WriteString("Talon picks up the package automatically; no restart is required.")
	if m.RequiresBeta() {
		b.WriteString("\n\n")
		b.WriteString("**Note:** this package requires the Talon beta.")
	}
	return b.String()
}

func cloneTarget(m *manifest.Manifest) string {
	if strings.TrimSpace(m.Repository) != "" {
		return strings.TrimSpace(m.Repository)
	}
	name := strings.TrimSpace(m.Name)
	if name == "" {
		name = "this-package"
	}
	return fmt.Sprintf("<repository-url> %s", name)
}
