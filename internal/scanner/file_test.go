package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sharederrors "github.com/khanhnv2901/srcaudit-cli/internal/shared/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestScanFileLineNumbersAndTrimming(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.py", strings.Join([]string{
		`import os`,
		`   password = "hunter2"   `,
		`total = 1`,
		`os.system("ls")`,
	}, "\n"))

	result, err := ScanFile(path, defaultMatcher(t))
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}

	creds := result["Hardcoded credentials"]
	if len(creds) != 1 {
		t.Fatalf("expected 1 credential finding, got %d", len(creds))
	}
	if creds[0].Line != 2 {
		t.Errorf("expected line 2, got %d", creds[0].Line)
	}
	if creds[0].Text != `password = "hunter2"` {
		t.Errorf("expected trimmed text, got %q", creds[0].Text)
	}

	insecure := result["Insecure function calls"]
	if len(insecure) != 1 || insecure[0].Line != 4 {
		t.Errorf("expected os.system finding on line 4, got %v", insecure)
	}
}

func TestScanFileLineNumberBounds(t *testing.T) {
	dir := t.TempDir()
	lines := []string{
		`password = "a"`,
		`clean line`,
		`password = "b"`,
	}
	path := writeFile(t, dir, "bounds.py", strings.Join(lines, "\n"))

	result, err := ScanFile(path, defaultMatcher(t))
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}

	total := 0
	for _, findings := range result {
		for _, f := range findings {
			total++
			if f.Line < 1 || f.Line > len(lines) {
				t.Errorf("line number %d outside [1,%d]", f.Line, len(lines))
			}
		}
	}
	if max := len(lines) * 2; total > max {
		t.Errorf("findings %d exceed lines*categories bound %d", total, max)
	}
}

func TestScanFileCleanFileIsEmptyNotError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clean.py", "a = 1\nb = 2\n")

	result, err := ScanFile(path, defaultMatcher(t))
	if err != nil {
		t.Fatalf("clean file must not error: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected empty result, got %v", result)
	}
}

func TestScanFileReplacesInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mixed.py")
	content := append([]byte(`password = "hun`), 0xff, 0xfe)
	content = append(content, []byte(`ter2"`+"\n")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	result, err := ScanFile(path, defaultMatcher(t))
	if err != nil {
		t.Fatalf("invalid bytes must be replaced, not fatal: %v", err)
	}
	if len(result["Hardcoded credentials"]) != 1 {
		t.Errorf("expected finding despite invalid bytes, got %v", result)
	}
}

func TestScanFileMissingFile(t *testing.T) {
	_, err := ScanFile(filepath.Join(t.TempDir(), "gone.py"), defaultMatcher(t))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, sharederrors.ErrFileUnreadable) {
		t.Errorf("expected ErrFileUnreadable, got %v", err)
	}
}

func TestScanFileOversizedLineIsUnreadable(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "minified.js", strings.Repeat("x", 2<<20))

	_, err := ScanFile(path, defaultMatcher(t))
	if !errors.Is(err, sharederrors.ErrFileUnreadable) {
		t.Errorf("expected ErrFileUnreadable for oversized line, got %v", err)
	}
}
