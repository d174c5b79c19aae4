package diff

import (
	"strings"
	"testing"
)

func TestTextEqualInputsShortCircuit(t *testing.T) {
	for _, s := range []string{"", "a\nb\n", "no trailing newline"} {
		changed, out := Text(s, s, "README.md")
		if changed || out != "" {
			t.Fatalf("Text(%q, same) = (%v, %q), want (false, \"\")", s, changed, out)
		}
	}
}

func TestTextSingleLineChange(t *testing.T) {
	changed, out := Text("a\nb\nc\n", "a\nx\nc\n", "README.md")
	if !changed {
		t.Fatal("change not detected")
	}
	want := strings.Join([]string{
		"--- a/README.md",
		"+++ b/README.md",
		"@@ -1,3 +1,3 @@",
		" a",
		"-b",
		"+x",
		" c",
	}, "\n")
	if out != want {
		t.Fatalf("diff = %q\nwant %q", out, want)
	}
}

func TestTextAllAddedFromEmpty(t *testing.T) {
	changed, out := Text("", "one\ntwo\n", "README.md")
	if !changed {
		t.Fatal("change not detected")
	}
	if !strings.Contains(out, "@@ -0,0 +1,2 @@") {
		t.Fatalf("missing zero-length hunk header: %q", out)
	}
	if !strings.Contains(out, "+one\n+two") {
		t.Fatalf("added lines missing: %q", out)
	}
}

func TestTextMissingFinalNewlineIsAChange(t *testing.T) {
	changed, out := Text("line\n", "line", "f")
	if !changed {
		t.Fatal("final-newline difference not detected")
	}
	if !strings.Contains(out, "-line") || !strings.Contains(out, "+line") {
		t.Fatalf("diff = %q", out)
	}
}

func TestTextSplitsDistantChangesIntoHunks(t *testing.T) {
	var a, b []string
	for i := 0; i < 30; i++ {
		line := "same"
		a = append(a, line)
		b = append(b, line)
	}
	a[0], b[0] = "old-top", "new-top"
	a[29], b[29] = "old-bottom", "new-bottom"
	_, out := Text(strings.Join(a, "\n")+"\n", strings.Join(b, "\n")+"\n", "f")
	if got := strings.Count(out, "@@"); got != 4 {
		t.Fatalf("hunk marker count = %d, want 4 (two hunks): %q", got, out)
	}
}

func TestTextMergesNearbyChangesIntoOneHunk(t *testing.T) {
	a := "one\ntwo\nthree\nfour\nfive\n"
	b := "ONE\ntwo\nthree\nfour\nFIVE\n"
	_, out := Text(a, b, "f")
	if got := strings.Count(out, "@@"); got != 2 {
		t.Fatalf("hunk marker count = %d, want 2 (single hunk): %q", got, out)
	}
}

func TestJSONIgnoresFormattingOnlyDifferences(t *testing.T) {
	old := `{"version":"1.0.0","status":"stable"}`
	new := "{\n  \"version\": \"1.0.0\",\n  \"status\": \"stable\"\n}"
	changed, out := JSON(old, new, "manifest.json")
	if changed || out != "" {
		t.Fatalf("formatting-only change reported: (%v, %q)", changed, out)
	}
}

func TestJSONPreservesAuthoredKeyOrder(t *testing.T) {
	old := `{"b":1,"a":2}`
	new := `{"b":1,"a":3}`
	_, out := JSON(old, new, "m")
	bIdx := strings.Index(out, `"b"`)
	aIdx := strings.Index(out, `"a"`)
	if bIdx < 0 || aIdx < 0 || bIdx > aIdx {
		t.Fatalf("keys reordered in diff: %q", out)
	}
	if !strings.Contains(out, `-  "a": 2`) || !strings.Contains(out, `+  "a": 3`) {
		t.Fatalf("value change missing: %q", out)
	}
}

func TestJSONFallsBackToTextOnParseFailure(t *testing.T) {
	changed, out := JSON("{broken", "{still broken}", "m")
	if !changed {
		t.Fatal("fallback diff reported no change")
	}
	if !strings.Contains(out, "-{broken") {
		t.Fatalf("raw text fallback missing: %q", out)
	}
}

func TestCanonicalizeNestedStructures(t *testing.T) {
	got, err := canonicalize(`{"list":[1,"two",null,true],"empty":{},"none":[]}`)
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	want := strings.Join([]string{
		`{`,
		`  "list": [`,
		`    1,`,
		`    "two",`,
		`    null,`,
		`    true`,
		`  ],`,
		`  "empty": {},`,
		`  "none": []`,
		`}`,
	}, "\n")
	if got != want {
		t.Fatalf("canonical = %q\nwant %q", got, want)
	}
}

func TestRenderTruncationIsOptIn(t *testing.T) {
	diff := strings.Join([]string{"--- a/f", "+++ b/f", "@@ -1,3 +1,3 @@", " a", "-b", "+x", " c"}, "\n")
	if got := Render(diff, RenderOptions{}); got != diff {
		t.Fatalf("default render altered the diff: %q", got)
	}
	got := Render(diff, RenderOptions{MaxLines: 4})
	lines := strings.Split(got, "\n")
	if len(lines) != 5 {
		t.Fatalf("truncated to %d lines, want 4 + note", len(lines))
	}
	if lines[4] != "... (3 more lines)" {
		t.Fatalf("elision note = %q", lines[4])
	}
}

func TestRenderEmptyDiffStaysEmpty(t *testing.T) {
	if got := Render("", RenderOptions{Color: true, MaxLines: 5}); got != "" {
		t.Fatalf("Render(\"\") = %q", got)
	}
}
