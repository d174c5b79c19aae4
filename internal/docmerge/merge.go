package docmerge

import "strings"

// Policy carries the manifest-derived decisions the merge engine needs. The
// engine itself never reads a manifest; callers distill it to this.
type Policy struct {
	// InstallSuppressed blocks insertion of an absent install section
	// (reference, archived, and deprecated packages are not installable).
	InstallSuppressed bool
}

// Merge splices a fragment into a document and returns the new text. Pure:
// the input document is never mutated and nothing is persisted. Running Merge
// twice with the same fragment yields the first pass's output unchanged.
func (l *Locator) Merge(doc string, frag Fragment, pol Policy) string {
	switch frag.Kind {
	case BadgeBlock:
		return l.mergeBadges(doc, frag.Text)
	case InstallSection:
		return l.mergeInstall(doc, frag.Text, pol)
	}
	return doc
}

// mergeBadges replaces an existing badge run wholesale or inserts a new block
// at its anchor. Replacement collapses any blank lines the old run carried;
// the regenerated block is the single source of truth for badge membership.
func (l *Locator) mergeBadges(doc, text string) string {
	if strings.TrimSpace(text) == "" {
		return doc
	}
	lines := splitLines(doc)
	loc := l.locateBadges(lines)
	block := terminated(text)

	if loc.Found {
		if loc.End == len(lines) && !strings.HasSuffix(doc, "\n") {
			// The old run closed the document without a final newline;
			// keep that style so nothing outside the range shifts.
			block[len(block)-1] = strings.TrimSuffix(block[len(block)-1], "\n")
		}
		out := make([]string, 0, len(lines)-(loc.End-loc.Start)+len(block))
		out = append(out, lines[:loc.Start]...)
		out = append(out, block...)
		out = append(out, lines[loc.End:]...)
		return strings.Join(out, "")
	}

	rest := lines[loc.Anchor:]
	for len(rest) > 0 && isBlank(rest[0]) {
		rest = rest[1:]
	}
	out := make([]string, 0, len(lines)+len(block)+2)
	out = append(out, lines[:loc.Anchor]...)
	if loc.Anchor > 0 {
		out = append(out, "\n")
	}
	out = append(out, block...)
	if len(rest) > 0 {
		out = append(out, "\n")
		out = append(out, rest...)
	}
	return strings.Join(out, "")
}

// mergeInstall inserts an install section when none exists and the policy
// allows one. An existing section always wins, whatever its wording.
func (l *Locator) mergeInstall(doc, text string, pol Policy) string {
	if strings.TrimSpace(text) == "" {
		return doc
	}
	lines := splitLines(doc)
	loc := l.locateInstall(lines)
	if loc.Found || pol.InstallSuppressed {
		return doc
	}

	if loc.Anchor >= len(lines) {
		trimmed := strings.TrimRight(doc, " \t\r\n")
		if trimmed == "" {
			return text + "\n"
		}
		return trimmed + "\n\n" + text + "\n"
	}

	before := lines[:loc.Anchor]
	for len(before) > 0 && isBlank(before[len(before)-1]) {
		before = before[:len(before)-1]
	}
	block := terminated(text)
	out := make([]string, 0, len(lines)+len(block)+2)
	out = append(out, before...)
	if len(before) > 0 {
		out = append(out, "\n")
	}
	out = append(out, block...)
	out = append(out, "\n")
	out = append(out, lines[loc.Anchor:]...)
	return strings.Join(out, "")
}
