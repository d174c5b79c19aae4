// internal/config/config.go
//
// This package handles configuration and the .packdocs directory structure.
// A project that uses packdocs gets a .packdocs/ folder holding the tool
// config, the run journal, and any badge plugin definitions.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PackdocsDir is the name of the directory created alongside the packages.
const PackdocsDir = ".packdocs"

const defaultConfigYAML = `# packdocs configuration
version: 1

presentation:
  # auto follows NO_COLOR and terminal capabilities; always/never override.
  color: auto
  # Truncate printed diffs beyond this many lines. 0 disables truncation.
  max_diff_lines: 0

stages:
  # Stages run for every package directory unless --stage overrides them.
  default:
    - readme
`

// Presentation holds output formatting preferences.
type Presentation struct {
	Color        string `yaml:"color"`
	MaxDiffLines int    `yaml:"max_diff_lines"`
}

// StagesConfig captures stage selection preferences.
type StagesConfig struct {
	Default []string `yaml:"default"`
}

// ProjectConfig models .packdocs/config.yaml.
type ProjectConfig struct {
	Version      int          `yaml:"version"`
	Presentation Presentation `yaml:"presentation"`
	Stages       StagesConfig `yaml:"stages"`
}

// Config holds the runtime configuration for packdocs.
type Config struct {
	// ProjectDir is the directory where the user ran packdocs from.
	ProjectDir string

	// PackdocsProjectDir is ProjectDir/.packdocs.
	PackdocsProjectDir string

	Project ProjectConfig
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Presentation: Presentation{
			Color:        "auto",
			MaxDiffLines: 0,
		},
		Stages: StagesConfig{
			Default: []string{"readme"},
		},
	}
}

// InitPackdocsDir creates the .packdocs directory structure in the given
// project directory and writes the default config when none exists.
//
// Structure created:
// .packdocs/
// ├── config.yaml   <- tool configuration
// ├── badges/       <- badge plugin definitions (yaml or go)
// └── packdocs.log  <- run journal (created on first write)
func InitPackdocsDir(projectDir string) error {
	packdocsDir := filepath.Join(projectDir, PackdocsDir)
	if err := os.MkdirAll(filepath.Join(packdocsDir, "badges"), 0o755); err != nil {
		return fmt.Errorf("config: create %s: %w", packdocsDir, err)
	}
	return ensureProjectConfig(filepath.Join(packdocsDir, "config.yaml"))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("config: write default %s: %w", path, err)
	}
	return nil
}

// NewConfig creates a Config populated with project settings, applying
// defaults for anything the config file leaves out.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:         projectDir,
		PackdocsProjectDir: filepath.Join(projectDir, PackdocsDir),
		Project:            defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadProjectConfig() error {
	data, err := os.ReadFile(c.ProjectConfigPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", c.ProjectConfigPath(), err)
	}
	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", c.ProjectConfigPath(), err)
	}
	if parsed.Presentation.Color != "" {
		c.Project.Presentation.Color = parsed.Presentation.Color
	}
	if parsed.Presentation.MaxDiffLines > 0 {
		c.Project.Presentation.MaxDiffLines = parsed.Presentation.MaxDiffLines
	}
	if len(parsed.Stages.Default) > 0 {
		c.Project.Stages.Default = parsed.Stages.Default
	}
	if parsed.Version != 0 {
		c.Project.Version = parsed.Version
	}
	return nil
}

// ProjectConfigPath returns the on-disk location for the config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.PackdocsProjectDir, "config.yaml")
}

// BadgePluginsDir returns the directory scanned for badge definitions.
func (c *Config) BadgePluginsDir() string {
	return filepath.Join(c.PackdocsProjectDir, "badges")
}

// LogbookPath returns the run journal location.
func (c *Config) LogbookPath() string {
	return filepath.Join(c.PackdocsProjectDir, "packdocs.log")
}
