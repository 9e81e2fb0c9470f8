package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testLog(t *testing.T) *Log {
	t.Helper()
	l := New(filepath.Join(t.TempDir(), "logs_test.txt"))
	l.now = func() time.Time { return time.Date(2024, 5, 1, 13, 37, 0, 0, time.UTC) }
	return l
}

func TestLog_ScanWritesSectionWithFields(t *testing.T) {
	l := testLog(t)
	err := l.Scan("Item Drop Rate: +12%\nLUK +9", []Field{
		{Key: "item_drop_rate", Value: "12"},
		{Key: "prime_line_count", Value: "1"},
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	got := string(data)
	for _, want := range []string{
		"===== OCR Scan: 2024-05-01 13:37:00 =====",
		"Item Drop Rate: +12%",
		"Extracted Stats:",
		"item_drop_rate: 12",
		"prime_line_count: 1",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("log missing %q:\n%s", want, got)
		}
	}
}

func TestLog_AppendsAcrossWrites(t *testing.T) {
	l := testLog(t)
	if err := l.Scan("first", nil); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if err := l.Scan("second", nil); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if err := l.Terminal("success: desired stats found", "attempts: 2"); err != nil {
		t.Fatalf("Terminal: %v", err)
	}
	data, _ := os.ReadFile(l.Path())
	got := string(data)
	if !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Fatalf("entries not appended:\n%s", got)
	}
	if !strings.Contains(got, "===== SUCCESS: DESIRED STATS FOUND =====") {
		t.Fatalf("terminal header missing:\n%s", got)
	}
	if !strings.Contains(got, "attempts: 2") {
		t.Fatalf("terminal detail missing:\n%s", got)
	}
}

func TestSetup_ClearsWorkspace(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "stat_region_old.png")
	if err := os.WriteFile(stale, []byte("png"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	l, err := Setup(dir)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale artifact not cleared")
	}
	if !strings.HasPrefix(filepath.Base(l.Path()), "logs_") {
		t.Fatalf("unexpected log name %s", l.Path())
	}
}
