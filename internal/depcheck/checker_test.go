package depcheck

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/khanhnv2901/srcaudit-cli/internal/manifest"
	"github.com/khanhnv2901/srcaudit-cli/internal/registry"
)

func stubChecker(t *testing.T, versions map[string]string) *Checker {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/pypi/"), "/json")
		version, ok := versions[pkg]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `{"info":{"version":%q}}`, version)
	}))
	t.Cleanup(srv.Close)

	return &Checker{
		Registry:    registry.NewClient(srv.URL, 2*time.Second, 100),
		Concurrency: 4,
	}
}

func TestCheckAgainstStubRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	content := "flask==0.1\nflask>=1.0\n# comment\nrequests==2.31.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	checker := stubChecker(t, map[string]string{
		"flask":    "3.0.0",
		"requests": "2.31.0",
	})

	result, err := checker.Check(context.Background(), path)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	want := []LibraryRecord{
		{Name: "flask", Pinned: "0.1", Latest: "3.0.0", Outdated: true},
		{Name: "requests", Pinned: "2.31.0", Latest: "2.31.0", Outdated: false},
	}
	if !reflect.DeepEqual(result.Records, want) {
		t.Errorf("Records = %v, want %v", result.Records, want)
	}
	if result.Unknown != 0 {
		t.Errorf("expected 0 unknown lookups, got %d", result.Unknown)
	}

	outdated := result.Outdated()
	if len(outdated) != 1 || outdated[0].Name != "flask" {
		t.Errorf("expected only flask outdated, got %v", outdated)
	}
}

func TestCheckPinsKeepsManifestOrder(t *testing.T) {
	versions := map[string]string{}
	var pins []manifest.Pin
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("pkg%02d", i)
		versions[name] = "9.0.0"
		pins = append(pins, manifest.Pin{Name: name, Version: "1.0.0"})
	}

	checker := stubChecker(t, versions)
	result := checker.CheckPins(context.Background(), pins)

	if len(result.Records) != len(pins) {
		t.Fatalf("expected %d records, got %d", len(pins), len(result.Records))
	}
	for i, rec := range result.Records {
		if rec.Name != pins[i].Name {
			t.Fatalf("record %d out of manifest order: got %s, want %s", i, rec.Name, pins[i].Name)
		}
	}
}

func TestCheckPinsSkipsFailedLookups(t *testing.T) {
	checker := stubChecker(t, map[string]string{"flask": "3.0.0"})

	var mu sync.Mutex
	progressed := map[string]bool{}
	checker.Progress = func(name string, resolved bool) {
		mu.Lock()
		progressed[name] = resolved
		mu.Unlock()
	}

	result := checker.CheckPins(context.Background(), []manifest.Pin{
		{Name: "flask", Version: "0.1"},
		{Name: "ghost", Version: "1.0"},
	})

	if len(result.Records) != 1 || result.Records[0].Name != "flask" {
		t.Errorf("expected only flask resolved, got %v", result.Records)
	}
	if result.Unknown != 1 {
		t.Errorf("expected 1 unknown lookup, got %d", result.Unknown)
	}
	if !progressed["flask"] || progressed["ghost"] {
		t.Errorf("unexpected progress callbacks: %v", progressed)
	}
}

func TestCheckMissingManifest(t *testing.T) {
	checker := stubChecker(t, nil)
	if _, err := checker.Check(context.Background(), filepath.Join(t.TempDir(), "requirements.txt")); err == nil {
		t.Error("expected error for missing manifest")
	}
}
