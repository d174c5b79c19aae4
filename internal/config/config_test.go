package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadProjectConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	if c.Project.Presentation.Color != "auto" {
		t.Fatalf("expected default color auto, got %q", c.Project.Presentation.Color)
	}
	if len(c.Project.Stages.Default) != 1 || c.Project.Stages.Default[0] != "readme" {
		t.Fatalf("unexpected default stages: %v", c.Project.Stages.Default)
	}
}

func TestLoadProjectConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	packdocsDir := filepath.Join(projectDir, PackdocsDir)
	if err := os.MkdirAll(packdocsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
presentation:
  color: never
  max_diff_lines: 40
stages:
  default:
    - shields
    - install
`)
	if err := os.WriteFile(filepath.Join(packdocsDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Project.Presentation.Color != "never" {
		t.Fatalf("color = %q, want never", c.Project.Presentation.Color)
	}
	if c.Project.Presentation.MaxDiffLines != 40 {
		t.Fatalf("max_diff_lines = %d, want 40", c.Project.Presentation.MaxDiffLines)
	}
	if len(c.Project.Stages.Default) != 2 || c.Project.Stages.Default[0] != "shields" {
		t.Fatalf("stages = %v", c.Project.Stages.Default)
	}
}

func TestInitPackdocsDirWritesDefaultConfigOnce(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitPackdocsDir(projectDir); err != nil {
		t.Fatalf("init: %v", err)
	}
	configPath := filepath.Join(projectDir, PackdocsDir, "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "color: auto") {
		t.Fatalf("default config missing content: %s", data)
	}
	custom := "version: 1\npresentation:\n  color: never\n"
	if err := os.WriteFile(configPath, []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := InitPackdocsDir(projectDir); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	data, _ = os.ReadFile(configPath)
	if string(data) != custom {
		t.Fatal("re-init overwrote a user-edited config")
	}
	if _, err := os.Stat(filepath.Join(projectDir, PackdocsDir, "badges")); err != nil {
		t.Fatalf("badges dir missing: %v", err)
	}
}

func TestMalformedConfigFails(t *testing.T) {
	projectDir := t.TempDir()
	packdocsDir := filepath.Join(projectDir, PackdocsDir)
	if err := os.MkdirAll(packdocsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(packdocsDir, "config.yaml"), []byte("{{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewConfig(projectDir); err == nil {
		t.Fatal("expected parse error")
	}
}
