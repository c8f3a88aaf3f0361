package sessions

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestPreviewFirstUserText(t *testing.T) {
	root := t.TempDir()
	path := writeSession(t, root, "-home-user-alpha", "s1", []string{
		`{"type":"summary","summary":"meta"}`,
		`{"type":"user","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"tu_1","content":"noise"}]}}`,
		userLine("2026-03-01T10:00:00Z", "fix the flaky test in the scheduler"),
		userLine("2026-03-01T10:05:00Z", "second message"),
	}, time.Now())

	preview, ok := Preview(path, 200)
	if !ok {
		t.Fatal("expected a preview")
	}
	if preview != "fix the flaky test in the scheduler" {
		t.Errorf("preview = %q", preview)
	}
}

func TestPreviewTruncates(t *testing.T) {
	root := t.TempDir()
	path := writeSession(t, root, "-home-user-alpha", "s1", []string{
		userLine("2026-03-01T10:00:00Z", "aaaaaaaaaaaaaaaaaaaa"),
	}, time.Now())

	preview, ok := Preview(path, 10)
	if !ok {
		t.Fatal("expected a preview")
	}
	if preview != "aaaaaaaaaa..." {
		t.Errorf("preview = %q", preview)
	}
}

func TestPreviewTruncatesOnRuneBoundary(t *testing.T) {
	root := t.TempDir()
	path := writeSession(t, root, "-home-user-alpha", "s1", []string{
		userLine("2026-03-01T10:00:00Z", strings.Repeat("あ", 8)),
	}, time.Now())

	preview, ok := Preview(path, 5)
	if !ok {
		t.Fatal("expected a preview")
	}
	if preview != strings.Repeat("あ", 5)+"..." {
		t.Errorf("preview = %q", preview)
	}
	if !utf8.ValidString(preview) {
		t.Error("preview is not valid UTF-8")
	}
}

func TestPreviewCollapsesWhitespace(t *testing.T) {
	root := t.TempDir()
	path := writeSession(t, root, "-home-user-alpha", "s1", []string{
		`{"type":"user","message":{"role":"user","content":"line one\n\n\tline   two"}}`,
	}, time.Now())

	preview, ok := Preview(path, 200)
	if !ok {
		t.Fatal("expected a preview")
	}
	if preview != "line one line two" {
		t.Errorf("preview = %q", preview)
	}
}

func TestPreviewSkipsReminderBlocks(t *testing.T) {
	root := t.TempDir()
	path := writeSession(t, root, "-home-user-alpha", "s1", []string{
		`{"type":"user","message":{"role":"user","content":[{"type":"text","text":"<system-reminder>injected</system-reminder>"},{"type":"text","text":"real question"}]}}`,
	}, time.Now())

	preview, ok := Preview(path, 200)
	if !ok {
		t.Fatal("expected a preview")
	}
	if preview != "real question" {
		t.Errorf("preview = %q", preview)
	}
}

func TestPreviewMissingFile(t *testing.T) {
	if _, ok := Preview(filepath.Join(t.TempDir(), "gone.jsonl"), 100); ok {
		t.Error("missing file should have no preview")
	}
}

func TestPreviewNoUserText(t *testing.T) {
	root := t.TempDir()
	path := writeSession(t, root, "-home-user-alpha", "s1", []string{
		`{"type":"assistant","message":{"role":"assistant","content":"only the assistant spoke"}}`,
	}, time.Now())

	if _, ok := Preview(path, 100); ok {
		t.Error("expected no preview without user text")
	}
}
