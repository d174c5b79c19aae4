// internal/shields/shields.go
//
// Shield badge generation. Badges are rendered as markdown image links
// pointing at img.shields.io and are recomputed from the manifest on every
// run; stale badges in a README are replaced wholesale, never merged.

package shields

import (
	"fmt"
	"strings"

	"github.com/kingrea/packdocs/internal/manifest"
)

// Badge names recognized as members of a contiguous badge block.
const (
	NameVersion   = "Version"
	NameStatus    = "Status"
	NamePlatform  = "Platform"
	NameLicense   = "License"
	NameTalonBeta = "Talon Beta"
)

// URLPrefix is the stable prefix shared by every generated badge target.
const URLPrefix = "https://img.shields.io/badge/"

// statusColors maps recognized manifest statuses to shield colors.
var statusColors = map[string]string{
	manifest.StatusStable:       "green",
	manifest.StatusPreview:      "orange",
	manifest.StatusExperimental: "orange",
	manifest.StatusPrototype:    "red",
	manifest.StatusReference:    "blue",
	manifest.StatusDeprecated:   "red",
	manifest.StatusArchived:     "lightgrey",
}

// Extra is a plugin-contributed badge appended after the built-in set. Value
// wins when both Value and ValueFrom are set; ValueFrom names a manifest
// string field to read at render time.
type Extra struct {
	Name      string
	Label     string
	Value     string
	ValueFrom string
	Color     string
}

// BuiltinNames returns the fixed badge identifiers every locator must know.
func BuiltinNames() []string {
	return []string{NameVersion, NameStatus, NamePlatform, NameLicense, NameTalonBeta}
}

// Names returns the recognized badge identifiers including plugin extras.
func Names(extras []Extra) []string {
	names := BuiltinNames()
	for _, e := range extras {
		names = append(names, e.Name)
	}
	return names
}

// Lines renders the badge block for a manifest, one markdown image link per
// line, in stable order: Version, Status, Platform, License, Talon Beta, then
// extras in registration order.
func Lines(m *manifest.Manifest, extras []Extra) []string {
	lines := []string{
		badge(NameVersion, "version", m.EffectiveVersion(), "blue"),
		badge(NameStatus, "status", m.EffectiveStatus(), statusColor(m.EffectiveStatus())),
	}
	if len(m.Platforms) > 0 {
		value := strings.Join(m.Platforms, " | ")
		lines = append(lines, badge(NamePlatform, "platform", value, "lightgrey"))
	}
	if strings.TrimSpace(m.License) != "" {
		lines = append(lines, badge(NameLicense, "license", strings.TrimSpace(m.License), "blue"))
	}
	if m.RequiresBeta() {
		lines = append(lines, badge(NameTalonBeta, "talon beta", "required", "red"))
	}
	for _, e := range extras {
		if line, ok := extraBadge(e, m); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

func badge(name, label, value, color string) string {
	return fmt.Sprintf("![%s](%s%s-%s-%s)", name, URLPrefix, encode(label), encode(value), color)
}

func extraBadge(e Extra, m *manifest.Manifest) (string, bool) {
	value := e.Value
	if value == "" && e.ValueFrom != "" {
		value = fieldValue(m, e.ValueFrom)
	}
	if strings.TrimSpace(value) == "" {
		return "", false
	}
	color := e.Color
	if color == "" {
		color = "lightgrey"
	}
	label := e.Label
	if label == "" {
		label = strings.ToLower(e.Name)
	}
	return badge(e.Name, label, value, color), true
}

// fieldValue resolves a ValueFrom reference against the manifest's string
// fields. Unknown fields resolve to empty, which drops the badge.
func fieldValue(m *manifest.Manifest, field string) string {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "name":
		return m.Name
	case "title":
		return m.EffectiveTitle()
	case "version":
		return m.EffectiveVersion()
	case "status":
		return m.EffectiveStatus()
	case "license":
		return m.License
	case "repository":
		return m.Repository
	}
	return ""
}

func statusColor(status string) string {
	if color, ok := statusColors[status]; ok {
		return color
	}
	return "lightgrey"
}

// encode escapes the characters shields.io treats specially inside a badge
// path segment. Spaces and pipes are percent-encoded the way the badge URLs
// have always been written; a literal dash would split the segment, so it is
// doubled per the shields.io convention. Percent goes first so introduced
// escapes survive, and parentheses are escaped because a raw ")" would end
// the markdown link target early.
func encode(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "-", "--")
	s = strings.ReplaceAll(s, " ", "%20")
	s = strings.ReplaceAll(s, "|", "%7C")
	s = strings.ReplaceAll(s, "(", "%28")
	s = strings.ReplaceAll(s, ")", "%29")
	return s
}
