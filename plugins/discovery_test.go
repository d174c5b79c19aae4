package plugins

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kingrea/packdocs/internal/config"
)

const sampleYAML = `id: docs-link
name: Docs
label: docs
value: available
color: blue
`

func TestLoadBadgePlugins(t *testing.T) {
	cfg := initTestConfig(t)
	if err := os.WriteFile(filepath.Join(cfg.BadgePluginsDir(), "docs.yaml"), []byte(sampleYAML), 0644); err != nil {
		t.Fatalf("write plugin: %v", err)
	}
	extras, err := LoadBadgePlugins(cfg)
	if err != nil {
		t.Fatalf("load plugins: %v", err)
	}
	if len(extras) != 1 {
		t.Fatalf("expected 1 extra, got %d", len(extras))
	}
	if extras[0].Name != "Docs" || extras[0].Value != "available" {
		t.Fatalf("unexpected extra: %+v", extras[0])
	}
}

func TestLoadBadgePluginsDuplicateID(t *testing.T) {
	cfg := initTestConfig(t)
	for _, name := range []string{"a.yaml", "b.yaml"} {
		if err := os.WriteFile(filepath.Join(cfg.BadgePluginsDir(), name), []byte(sampleYAML), 0644); err != nil {
			t.Fatalf("write plugin %s: %v", name, err)
		}
	}
	if _, err := LoadBadgePlugins(cfg); err == nil {
		t.Fatalf("expected duplicate badge id to fail")
	}
}

func TestLoadBadgePluginsEmpty(t *testing.T) {
	cfg := initTestConfig(t)
	extras, err := LoadBadgePlugins(cfg)
	if err != nil {
		t.Fatalf("load plugins: %v", err)
	}
	if extras != nil {
		t.Fatalf("expected nil extras for empty dir, got %v", extras)
	}
}

func initTestConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	if err := config.InitPackdocsDir(root); err != nil {
		t.Fatalf("init packdocs dir: %v", err)
	}
	return &config.Config{
		ProjectDir:         root,
		PackdocsProjectDir: filepath.Join(root, config.PackdocsDir),
	}
}
