package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestClassifyCreatedWhenFileWasAbsent(t *testing.T) {
	rec := Classify(nil, "# Title\n", "README.md")
	if rec.Kind != Created {
		t.Fatalf("kind = %v, want Created", rec.Kind)
	}
	if !strings.Contains(rec.Diff, "+# Title") {
		t.Fatalf("created diff should list all added lines: %q", rec.Diff)
	}
}

func TestClassifyAbsentFileWithEmptyContentIsNoChange(t *testing.T) {
	rec := Classify(nil, "", "README.md")
	if rec.Kind != NoChange {
		t.Fatalf("kind = %v, want NoChange", rec.Kind)
	}
}

func TestClassifyNoChangeAndModified(t *testing.T) {
	old := "# Title\n"
	if rec := Classify(&old, "# Title\n", "README.md"); rec.Kind != NoChange || rec.Diff != "" {
		t.Fatalf("identical content misclassified: %+v", rec)
	}
	rec := Classify(&old, "# Other\n", "README.md")
	if rec.Kind != Modified {
		t.Fatalf("kind = %v, want Modified", rec.Kind)
	}
	if !strings.Contains(rec.Diff, "-# Title") || !strings.Contains(rec.Diff, "+# Other") {
		t.Fatalf("diff = %q", rec.Diff)
	}
}

func TestReportFormatsByKind(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false, 0)

	r.Report(Record{Kind: NoChange, Label: "README.md"}, Apply)
	if got := buf.String(); got != "README.md: no changes\n" {
		t.Fatalf("no-change output = %q", got)
	}

	buf.Reset()
	r.Report(Record{Kind: Created, Label: "README.md", Diff: "+all new"}, Apply)
	out := buf.String()
	if !strings.HasPrefix(out, "README.md: created\n") {
		t.Fatalf("created output = %q", out)
	}
	if !strings.Contains(out, "+all new") {
		t.Fatalf("created output missing diff: %q", out)
	}
}

func TestDryRunAnnotationAppearsOnChanges(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false, 0)
	r.Report(Record{Kind: Modified, Label: "README.md", Diff: "-a\n+b"}, DryRun)
	out := buf.String()
	if !strings.Contains(out, "(dry run)") {
		t.Fatalf("dry-run annotation missing: %q", out)
	}
}

func TestReporterHonorsMaxDiffLines(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false, 2)
	r.Report(Record{Kind: Modified, Label: "f", Diff: "l1\nl2\nl3\nl4"}, Apply)
	out := buf.String()
	if !strings.Contains(out, "... (2 more lines)") {
		t.Fatalf("truncation note missing: %q", out)
	}
	if strings.Contains(out, "l3") {
		t.Fatalf("truncated line still printed: %q", out)
	}
}
