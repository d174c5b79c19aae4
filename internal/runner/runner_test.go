package runner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kingrea/packdocs/internal/logbook"
	"github.com/kingrea/packdocs/internal/report"
	"github.com/kingrea/packdocs/internal/stage"
	"github.com/kingrea/packdocs/internal/stages"
)

func newTestRunner(t *testing.T, dryRun bool, out *bytes.Buffer) *Runner {
	t.Helper()
	reg := stage.NewRegistry()
	stages.RegisterBuiltins(reg)
	book, err := logbook.New(filepath.Join(t.TempDir(), "packdocs.log"))
	if err != nil {
		t.Fatalf("logbook: %v", err)
	}
	return &Runner{
		Registry: reg,
		Reporter: report.New(out, false, 0),
		Logbook:  book,
		StageIDs: []string{"readme"},
		DryRun:   dryRun,
	}
}

func packageDir(t *testing.T, manifestJSON, readme string) string {
	t.Helper()
	dir := t.TempDir()
	if manifestJSON != "" {
		if err := os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(manifestJSON), 0o644); err != nil {
			t.Fatalf("write manifest: %v", err)
		}
	}
	if readme != "" {
		if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte(readme), 0o644); err != nil {
			t.Fatalf("write README: %v", err)
		}
	}
	return dir
}

func readme(t *testing.T, dir string) (string, bool) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false
		}
		t.Fatalf("read README: %v", err)
	}
	return string(data), true
}

func TestRunCreatesReadmeAndReportsCreated(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(t, false, &out)
	dir := packageDir(t, `{"name":"parrot","status":"stable","version":"1.0.0"}`, "")
	sum, err := r.Run([]string{dir})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Processed != 1 || sum.Failed != 0 {
		t.Fatalf("summary = %+v", sum)
	}
	content, exists := readme(t, dir)
	if !exists {
		t.Fatal("README not created")
	}
	if !strings.HasPrefix(content, "# parrot\n") {
		t.Fatalf("README = %q", content)
	}
	if !strings.Contains(out.String(), "README.md: created") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestDryRunNeverTouchesStorage(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(t, true, &out)
	dir := packageDir(t, `{"name":"parrot","status":"stable"}`, "")
	if _, err := r.Run([]string{dir}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, exists := readme(t, dir); exists {
		t.Fatal("dry run wrote a README")
	}
	if !strings.Contains(out.String(), "(dry run)") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestSecondRunIsNoChange(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(t, false, &out)
	dir := packageDir(t, `{"name":"parrot","status":"stable"}`, "")
	if _, err := r.Run([]string{dir}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	out.Reset()
	if _, err := r.Run([]string{dir}); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !strings.Contains(out.String(), "README.md: no changes") {
		t.Fatalf("second run output = %q", out.String())
	}
}

func TestMissingManifestIsSkippedInDryRunButFailsApply(t *testing.T) {
	var out bytes.Buffer
	dry := newTestRunner(t, true, &out)
	dir := packageDir(t, "", "# Existing\n")
	sum, err := dry.Run([]string{dir})
	if err != nil {
		t.Fatalf("dry run should tolerate a missing manifest: %v", err)
	}
	if sum.Processed != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if !strings.Contains(out.String(), "skipped") {
		t.Fatalf("output = %q", out.String())
	}

	out.Reset()
	apply := newTestRunner(t, false, &out)
	if _, err := apply.Run([]string{dir}); err == nil {
		t.Fatal("apply run should fail without a manifest")
	}
}

func TestBatchIsolatesFailures(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(t, false, &out)
	bad := packageDir(t, "{broken json", "")
	good := packageDir(t, `{"name":"parrot","status":"stable"}`, "")
	sum, err := r.Run([]string{bad, good})
	if err == nil {
		t.Fatal("aggregate error expected when a directory fails")
	}
	if sum.Processed != 1 || sum.Failed != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if _, exists := readme(t, good); !exists {
		t.Fatal("good directory was not processed after the bad one")
	}
	if !strings.Contains(out.String(), "Error processing") {
		t.Fatalf("failure not reported: %q", out.String())
	}
}

func TestMalformedManifestNeverCorruptsDocument(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(t, false, &out)
	original := "# Hand-written\n\nPrecious prose.\n"
	dir := packageDir(t, "{broken", original)
	if _, err := r.Run([]string{dir}); err == nil {
		t.Fatal("malformed manifest should fail the directory")
	}
	content, _ := readme(t, dir)
	if content != original {
		t.Fatalf("document was modified despite manifest failure: %q", content)
	}
}

func TestCollectGathersPendingChangesWithoutWriting(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(t, true, &out)
	dir := packageDir(t, `{"name":"parrot","status":"stable"}`, "")
	pending, sum, err := r.Collect([]string{dir})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if sum.Processed != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
	if _, exists := readme(t, dir); exists {
		t.Fatal("collect wrote a README")
	}
	if err := r.Apply(pending[0]); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, exists := readme(t, dir); !exists {
		t.Fatal("apply did not write the README")
	}
}

func TestUnknownStageIDFailsTheDirectory(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(t, false, &out)
	r.StageIDs = []string{"no-such-stage"}
	dir := packageDir(t, `{"name":"parrot"}`, "")
	if _, err := r.Run([]string{dir}); err == nil {
		t.Fatal("unknown stage should fail")
	}
}
