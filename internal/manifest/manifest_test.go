package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingManifestReturnsNotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadMalformedManifestFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("malformed manifest misreported as missing: %v", err)
	}
}

func TestDefaultsApplyWhenFieldsAbsent(t *testing.T) {
	m, err := Parse([]byte(`{"name":"cursorless"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := m.EffectiveVersion(); got != DefaultVersion {
		t.Fatalf("version = %q, want %q", got, DefaultVersion)
	}
	if got := m.EffectiveStatus(); got != "unknown" {
		t.Fatalf("status = %q, want unknown", got)
	}
	if got := m.EffectiveTitle(); got != "cursorless" {
		t.Fatalf("title = %q, want name fallback", got)
	}
	if !m.ShieldsEnabled() {
		t.Fatal("shields should default to enabled")
	}
	if m.RequiresBeta() {
		t.Fatal("beta should default to false")
	}
}

func TestStatusIsLowerCasedForComparison(t *testing.T) {
	m, err := Parse([]byte(`{"status":"Archived"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := m.EffectiveStatus(); got != StatusArchived {
		t.Fatalf("status = %q, want %q", got, StatusArchived)
	}
	if !m.InstallSuppressed() {
		t.Fatal("archived packages must suppress install sections")
	}
}

func TestEitherBetaKeyIsAccepted(t *testing.T) {
	snake, err := Parse([]byte(`{"requires_talon_beta":true}`))
	if err != nil {
		t.Fatalf("parse snake: %v", err)
	}
	if !snake.RequiresBeta() {
		t.Fatal("requires_talon_beta not honored")
	}
	camel, err := Parse([]byte(`{"requiresTalonBeta":true}`))
	if err != nil {
		t.Fatalf("parse camel: %v", err)
	}
	if !camel.RequiresBeta() {
		t.Fatal("requiresTalonBeta not honored")
	}
}

func TestInstallSuppressionCoversRetiredStatuses(t *testing.T) {
	for _, status := range []string{StatusReference, StatusArchived, StatusDeprecated} {
		m := &Manifest{Status: status}
		if !m.InstallSuppressed() {
			t.Fatalf("status %q should suppress install", status)
		}
	}
	for _, status := range []string{StatusStable, StatusPreview, "something-new", ""} {
		m := &Manifest{Status: status}
		if m.InstallSuppressed() {
			t.Fatalf("status %q should not suppress install", status)
		}
	}
}
