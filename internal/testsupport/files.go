package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WriteFile creates a file under root with the given relative path and
// content, creating parent directories as needed, and returns the absolute
// path.
func WriteFile(t testing.TB, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	return path
}

// WriteFileAt is WriteFile plus a fixed modification time, so tests control
// the timestamps the engine reasons about.
func WriteFileAt(t testing.TB, root, rel, content string, mtime time.Time) string {
	t.Helper()
	path := WriteFile(t, root, rel, content)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", rel, err)
	}
	return path
}

// Stamp parses "2006-01-02 15:04" in local time; test fixtures read better
// with literal dates than with time.Date calls.
func Stamp(t testing.TB, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	if err != nil {
		t.Fatalf("parse stamp %q: %v", value, err)
	}
	return ts
}
