// Package session provides the append-only run log: one timestamped section
// per OCR scan and one terminal section per run outcome. The format is
// free text for humans, not meant for machine re-parsing.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Field is one derived stat recorded alongside a scan's raw text.
type Field struct {
	Key   string
	Value string
}

// Log appends entries to a single per-run file. Each write opens and closes
// the file; there is exactly one writer, so no lock is held between entries.
type Log struct {
	path string
	now  func() time.Time // overridable in tests
}

// New returns a Log writing to path. The file is created on first append.
func New(path string) *Log {
	return &Log{path: path, now: time.Now}
}

// Path returns the log file location.
func (l *Log) Path() string { return l.path }

// Setup prepares the workspace directory: existing files are cleared and a
// fresh timestamped log file name is chosen.
func Setup(dir string) (*Log, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("session: workspace dir: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("session: read workspace: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		// Best effort; a locked file should not abort the run.
		_ = os.Remove(filepath.Join(dir, e.Name()))
	}
	name := fmt.Sprintf("logs_%s.txt", time.Now().Format("20060102_150405"))
	return New(filepath.Join(dir, name)), nil
}

// Scan records one sampling result: the raw OCR text plus its derived fields.
func (l *Log) Scan(text string, fields []Field) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n===== OCR Scan: %s =====\n", l.now().Format("2006-01-02 15:04:05"))
	b.WriteString(text)
	b.WriteString("\n")
	if len(fields) > 0 {
		b.WriteString("\nExtracted Stats:\n")
		for _, f := range fields {
			fmt.Fprintf(&b, "%s: %s\n", f.Key, f.Value)
		}
	}
	b.WriteString("\n" + strings.Repeat("-", 60) + "\n")
	return l.append(b.String())
}

// Terminal records the final entry for a run outcome.
func (l *Log) Terminal(header string, lines ...string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n===== %s =====\n", strings.ToUpper(header))
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return l.append(b.String())
}

func (l *Log) append(s string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("session: open log: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(s); err != nil {
		return fmt.Errorf("session: write log: %w", err)
	}
	return nil
}
