package docmerge

import (
	"regexp"
	"strings"
)

var (
	headingRe    = regexp.MustCompile(`^(#{1,6})[ \t]+(.*?)\s*$`)
	topHeadingRe = regexp.MustCompile(`^#[ \t]+`)

	// Whole-word matching keeps headings like "Reinstalling dependencies"
	// from being mistaken for an install section.
	installWordRe = regexp.MustCompile(`(?i)\b(installation|install|setup)\b`)

	wellKnownHeadingRe = regexp.MustCompile(`(?i)^(usage|features|license|contributing|api)$`)
)

// Locator finds badge blocks and install sections in a document. The set of
// recognized badge names is fixed per locator; plugin badges extend it so an
// extended block is still detected as one contiguous run.
type Locator struct {
	badgeLineRe *regexp.Regexp
}

// DefaultBadgeNames is the built-in recognized badge identifier set.
var DefaultBadgeNames = []string{"Version", "Status", "Platform", "License", "Talon Beta"}

// NewLocator builds a locator recognizing the given badge names, defaulting
// to DefaultBadgeNames when none are given.
func NewLocator(badgeNames ...string) *Locator {
	if len(badgeNames) == 0 {
		badgeNames = DefaultBadgeNames
	}
	quoted := make([]string, len(badgeNames))
	for i, name := range badgeNames {
		quoted[i] = regexp.QuoteMeta(name)
	}
	pattern := `^!\[(` + strings.Join(quoted, "|") + `)\]\(https://img\.shields\.io/badge/[^)]*\)\s*$`
	return &Locator{badgeLineRe: regexp.MustCompile(pattern)}
}

// Locate finds the existing range for a fragment kind, or the anchor where it
// belongs. Never fails: when no anchor heading exists the documented fallback
// applies (start of document for badges, end of document for installs).
func (l *Locator) Locate(doc string, kind Kind) Location {
	lines := splitLines(doc)
	switch kind {
	case BadgeBlock:
		return l.locateBadges(lines)
	case InstallSection:
		return l.locateInstall(lines)
	}
	return Location{Anchor: len(lines)}
}

// isBadgeLine reports whether a line is a recognized badge on its own.
func (l *Locator) isBadgeLine(line string) bool {
	return l.badgeLineRe.MatchString(lineContent(line))
}

// locateBadges finds the maximal run of recognized badge lines, allowing
// blank lines between badges. The whole run is treated as one block.
func (l *Locator) locateBadges(lines []string) Location {
	start := -1
	for i, line := range lines {
		if l.isBadgeLine(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return Location{Anchor: badgeAnchor(lines)}
	}
	end := start + 1
	i := start + 1
	for i < len(lines) {
		if l.isBadgeLine(lines[i]) {
			i++
			end = i
			continue
		}
		if isBlank(lines[i]) {
			j := i
			for j < len(lines) && isBlank(lines[j]) {
				j++
			}
			if j < len(lines) && l.isBadgeLine(lines[j]) {
				i = j
				continue
			}
		}
		break
	}
	return Location{Found: true, Start: start, End: end}
}

// badgeAnchor picks the insertion point for an absent badge block:
// immediately after the first top-level heading, else start of document.
func badgeAnchor(lines []string) int {
	for i, line := range lines {
		if topHeadingRe.MatchString(lineContent(line)) {
			return i + 1
		}
	}
	return 0
}

// locateInstall finds any heading (levels 1-6) naming an install section.
// Matching is line-anchored; install words buried in prose never count.
func (l *Locator) locateInstall(lines []string) Location {
	for i, line := range lines {
		m := headingRe.FindStringSubmatch(lineContent(line))
		if m == nil {
			continue
		}
		if installWordRe.MatchString(m[2]) {
			return Location{Found: true, Start: i, End: i + 1}
		}
	}
	return Location{Anchor: installAnchor(lines)}
}

// installAnchor picks the insertion point for an absent install section:
// immediately before the first well-known section heading, else end of
// document.
func installAnchor(lines []string) int {
	for i, line := range lines {
		m := headingRe.FindStringSubmatch(lineContent(line))
		if m == nil {
			continue
		}
		if wellKnownHeadingRe.MatchString(strings.TrimSpace(m[2])) {
			return i
		}
	}
	return len(lines)
}
