package docmerge

import "strings"

// ComposeInput describes a README built from scratch when none exists.
type ComposeInput struct {
	Title       string
	Description string
	// BadgeLines are pre-rendered badge markdown lines; empty means no block.
	BadgeLines []string
	// Install is the pre-rendered install section; empty means suppressed.
	Install string
	// PreviewImage names an image file to embed, empty when absent.
	PreviewImage string
}

// ComposeNew renders a fresh README. The output round-trips through Merge
// untouched: the badge block it writes is exactly what the locator finds, and
// the install heading it writes blocks re-insertion.
func ComposeNew(in ComposeInput) string {
	lines := []string{"# " + in.Title, ""}
	if len(in.BadgeLines) > 0 {
		lines = append(lines, in.BadgeLines...)
		lines = append(lines, "")
	}
	lines = append(lines, in.Description)
	if in.PreviewImage != "" {
		lines = append(lines, "", `<img src="`+in.PreviewImage+`" alt="preview">`)
	}
	if in.Install != "" {
		lines = append(lines, "", in.Install)
	}
	return strings.Join(lines, "\n") + "\n"
}
