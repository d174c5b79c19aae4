package plugins

import (
	"fmt"
	"strings"

	"github.com/kingrea/packdocs/internal/shields"
)

// BadgeDefinition describes a plugin-contributed badge loaded from YAML.
//
// The struct mirrors the on-disk schema under .packdocs/badges/*.yaml and is
// intentionally narrow so metadata can be validated before the badge is wired
// into the rendered block.
type BadgeDefinition struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Label     string `json:"label,omitempty" yaml:"label,omitempty"`
	Value     string `json:"value,omitempty" yaml:"value,omitempty"`
	ValueFrom string `json:"value_from,omitempty" yaml:"value_from,omitempty"`
	Color     string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Normalized returns a trimmed, copy-on-write variant of the definition with
// defaults applied: a missing name falls back to the id.
func (def BadgeDefinition) Normalized() BadgeDefinition {
	clone := BadgeDefinition{
		ID:        strings.TrimSpace(def.ID),
		Name:      strings.TrimSpace(def.Name),
		Label:     strings.TrimSpace(def.Label),
		Value:     strings.TrimSpace(def.Value),
		ValueFrom: strings.TrimSpace(def.ValueFrom),
		Color:     strings.TrimSpace(def.Color),
	}
	if clone.Name == "" {
		clone.Name = clone.ID
	}
	return clone
}

// Validate ensures the badge definition is well-formed.
func (def BadgeDefinition) Validate() error {
	normalized := def.Normalized()
	if normalized.ID == "" {
		return fmt.Errorf("plugin: id is required")
	}
	if normalized.Value == "" && normalized.ValueFrom == "" {
		return fmt.Errorf("plugin %s: either value or value_from is required", normalized.ID)
	}
	if strings.ContainsAny(normalized.Name, "[]()") {
		return fmt.Errorf("plugin %s: name %q contains markdown link characters", normalized.ID, normalized.Name)
	}
	return nil
}

// Extra converts the definition into the badge renderer's plugin shape.
func (def BadgeDefinition) Extra() shields.Extra {
	normalized := def.Normalized()
	return shields.Extra{
		Name:      normalized.Name,
		Label:     normalized.Label,
		Value:     normalized.Value,
		ValueFrom: normalized.ValueFrom,
		Color:     normalized.Color,
	}
}
