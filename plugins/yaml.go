package plugins

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefinitionFile pairs a parsed badge definition with its on-disk source.
// Files holding several badges get a #n suffix so duplicate-ID errors can
// point at the exact entry.
type DefinitionFile struct {
	Definition BadgeDefinition
	Path       string
}

// definitionDoc is the on-disk schema. Badges are small, so a file may hold
// either a single definition at the top level or several under "badges".
type definitionDoc struct {
	BadgeDefinition `yaml:",inline"`
	Badges          []BadgeDefinition `yaml:"badges,omitempty"`
}

// ParseDefinitionYAML decodes one payload into its validated, normalized
// badge definitions.
func ParseDefinitionYAML(data []byte) ([]BadgeDefinition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("plugin: definition payload is empty")
	}
	var doc definitionDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("plugin: decode definition: %w", err)
	}
	defs := doc.Badges
	if strings.TrimSpace(doc.ID) != "" {
		defs = append([]BadgeDefinition{doc.BadgeDefinition}, defs...)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("plugin: payload declares no badges")
	}
	out := make([]BadgeDefinition, 0, len(defs))
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		out = append(out, def.Normalized())
	}
	return out, nil
}

// LoadDefinitionFile reads one YAML file and returns its badge definitions.
func LoadDefinitionFile(path string) ([]DefinitionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plugin: read %s: %w", path, err)
	}
	defs, err := ParseDefinitionYAML(data)
	if err != nil {
		return nil, fmt.Errorf("plugin: %s: %w", path, err)
	}
	return tagPaths(filepath.Clean(path), defs), nil
}

// LoadDefinitionDir scans a directory for *.yaml badge files. Missing
// directories are treated as "no plugins" to simplify startup.
func LoadDefinitionDir(dir string) ([]DefinitionFile, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("plugin: read %s: %w", trimmed, err)
	}
	var defs []DefinitionFile
	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}
		fileDefs, err := LoadDefinitionFile(filepath.Join(trimmed, entry.Name()))
		if err != nil {
			return nil, err
		}
		defs = append(defs, fileDefs...)
	}
	if len(defs) == 0 {
		return nil, nil
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Path < defs[j].Path })
	return defs, nil
}

// tagPaths attaches source paths to parsed definitions, numbering entries
// when one file contributed more than one badge.
func tagPaths(path string, defs []BadgeDefinition) []DefinitionFile {
	files := make([]DefinitionFile, len(defs))
	for i, def := range defs {
		p := path
		if len(defs) > 1 {
			p = fmt.Sprintf("%s#%d", path, i+1)
		}
		files[i] = DefinitionFile{Definition: def, Path: p}
	}
	return files
}

func isYAMLFile(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
