// Package manifest parses dependency pin files (requirements.txt).
package manifest

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	sharederrors "github.com/khanhnv2901/srcaudit-cli/internal/shared/errors"
)

// Pin is one exactly pinned dependency: name==version.
type Pin struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Parse reads a requirements-style manifest and returns its exact pins
// in file order. Blank lines and # comments are ignored. Anything that
// is not a plain name==version entry (ranges, extras, environment
// markers) is skipped without a warning; those are expected and out of
// scope, not anomalies.
func Parse(path string) ([]Pin, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", sharederrors.ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("open manifest %s: %w", path, err)
	}
	defer f.Close()

	var pins []Pin
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if pin, ok := parseLine(sc.Text()); ok {
			pins = append(pins, pin)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return pins, nil
}

func parseLine(raw string) (Pin, bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return Pin{}, false
	}
	// Trailing comment after the pin.
	if idx := strings.Index(line, " #"); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	// Only the exact == operator is in scope. Extras, ranges and
	// environment markers use characters that never appear in a plain pin.
	if strings.ContainsAny(line, "<>~![];, ") {
		return Pin{}, false
	}
	name, version, found := strings.Cut(line, "==")
	if !found || name == "" || version == "" || strings.Contains(version, "=") {
		return Pin{}, false
	}
	return Pin{Name: name, Version: version}, true
}
