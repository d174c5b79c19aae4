// internal/manifest/manifest.go
//
// This package reads manifest.json, the declarative description of a Talon
// package. Every generated documentation fragment is derived from it; the
// rest of the tool treats the manifest as read-only input.

package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the manifest's well-known name inside a package directory.
const FileName = "manifest.json"

// DefaultVersion is used when the manifest does not declare one.
const DefaultVersion = "0.0.0"

// ErrNotFound indicates the package directory has no manifest.json.
var ErrNotFound = errors.New("manifest: manifest.json not found")

// Recognized status values. Anything else is reported as-is and treated as
// unknown for color selection.
const (
	StatusStable       = "stable"
	StatusPreview      = "preview"
	StatusExperimental = "experimental"
	StatusPrototype    = "prototype"
	StatusReference    = "reference"
	StatusDeprecated   = "deprecated"
	StatusArchived     = "archived"
)

// Manifest models manifest.json. Both requires_talon_beta and
// requiresTalonBeta are accepted; either one set to true marks the package as
// beta-only.
type Manifest struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Status      string   `json:"status"`
	License     string   `json:"license"`
	Repository  string   `json:"repository"`
	Platforms   []string `json:"platforms"`
	Shields     *bool    `json:"shields"`

	BetaSnake *bool `json:"requires_talon_beta"`
	BetaCamel *bool `json:"requiresTalonBeta"`
}

// Load reads and parses manifest.json from dir. A missing file returns
// ErrNotFound (wrapped with the directory) so callers can decide whether the
// absence is fatal for their stage.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest: %s: %w", dir, ErrNotFound)
		}
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes raw manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parse: %w", err)
	}
	return &m, nil
}

// EffectiveVersion returns the declared version or the default.
func (m *Manifest) EffectiveVersion() string {
	if strings.TrimSpace(m.Version) == "" {
		return DefaultVersion
	}
	return strings.TrimSpace(m.Version)
}

// EffectiveStatus returns the lower-cased status, or "unknown" when absent.
func (m *Manifest) EffectiveStatus() string {
	s := strings.ToLower(strings.TrimSpace(m.Status))
	if s == "" {
		return "unknown"
	}
	return s
}

// EffectiveTitle falls back from title to name to a generic label.
func (m *Manifest) EffectiveTitle() string {
	if strings.TrimSpace(m.Title) != "" {
		return strings.TrimSpace(m.Title)
	}
	if strings.TrimSpace(m.Name) != "" {
		return strings.TrimSpace(m.Name)
	}
	return "Talon Package"
}

// EffectiveDescription falls back to a generic one-liner.
func (m *Manifest) EffectiveDescription() string {
	if strings.TrimSpace(m.Description) != "" {
		return strings.TrimSpace(m.Description)
	}
	return "A Talon voice control package."
}

// RequiresBeta reports whether either beta key is set to true.
func (m *Manifest) RequiresBeta() bool {
	if m.BetaSnake != nil && *m.BetaSnake {
		return true
	}
	return m.BetaCamel != nil && *m.BetaCamel
}

// ShieldsEnabled reports whether badge generation is wanted. Absent means
// enabled; only an explicit false suppresses badges.
func (m *Manifest) ShieldsEnabled() bool {
	return m.Shields == nil || *m.Shields
}

// InstallSuppressed reports whether an installation section should never be
// generated for this package. Reference material and retired packages are not
// meant to be installed.
func (m *Manifest) InstallSuppressed() bool {
	switch m.EffectiveStatus() {
	case StatusReference, StatusArchived, StatusDeprecated:
		return true
	}
	return false
}
