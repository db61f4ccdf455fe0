package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	sharederrors "github.com/khanhnv2901/srcaudit-cli/internal/shared/errors"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requirements.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestParseExactPinsOnly(t *testing.T) {
	path := writeManifest(t, `# pinned deps
flask==0.1

requests>=2.0
django~=4.2
celery[redis]==5.3.0
uvicorn==0.23; python_version >= "3.8"
gunicorn == 21.0
numpy===1.26
pandas==2.1.0  # keep in sync with notebooks
plainname
`)

	pins, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []Pin{
		{Name: "flask", Version: "0.1"},
		{Name: "pandas", Version: "2.1.0"},
	}
	if !reflect.DeepEqual(pins, want) {
		t.Errorf("Parse = %v, want %v", pins, want)
	}
}

func TestParseLineTable(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Pin
		ok   bool
	}{
		{name: "exact pin", line: "flask==0.1", want: Pin{Name: "flask", Version: "0.1"}, ok: true},
		{name: "surrounding whitespace", line: "  flask==0.1  ", want: Pin{Name: "flask", Version: "0.1"}, ok: true},
		{name: "range pin", line: "flask>=1.0", ok: false},
		{name: "compatible release", line: "flask~=1.0", ok: false},
		{name: "extras", line: "flask[async]==2.0", ok: false},
		{name: "environment marker", line: `flask==2.0; sys_platform == "linux"`, ok: false},
		{name: "comment", line: "# flask==0.1", ok: false},
		{name: "blank", line: "", ok: false},
		{name: "no version", line: "flask==", ok: false},
		{name: "no name", line: "==0.1", ok: false},
		{name: "triple equals", line: "flask===0.1", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("parseLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("parseLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseMissingManifest(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "requirements.txt"))
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	if !errors.Is(err, sharederrors.ErrManifestNotFound) {
		t.Errorf("expected ErrManifestNotFound, got %v", err)
	}
}
