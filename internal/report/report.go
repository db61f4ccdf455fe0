// Package report renders scan and dependency-check results. Rendering
// is pure formatting: no side effects beyond the output writer, and
// deterministic output for identical inputs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/khanhnv2901/srcaudit-cli/internal/depcheck"
	"github.com/khanhnv2901/srcaudit-cli/internal/scanner"
)

// Render writes the human-readable report: findings grouped by file and
// category, then the outdated-libraries section. Either section may be
// nil when only one phase ran. Absence of problems is stated
// explicitly, never implied by silence.
func Render(w io.Writer, scan *scanner.ScanResult, deps *depcheck.Result) {
	if scan != nil {
		renderScan(w, scan)
	}
	if deps != nil {
		if scan != nil {
			fmt.Fprintln(w)
		}
		renderDeps(w, deps)
	}
}

func renderScan(w io.Writer, scan *scanner.ScanResult) {
	fmt.Fprintln(w, "Suspicious pattern scan")
	fmt.Fprintln(w, "=======================")
	fmt.Fprintf(w, "Root: %s\n\n", scan.Root)

	paths := scan.SortedPaths()
	for _, path := range paths {
		fmt.Fprintln(w, path)
		file := scan.Files[path]
		for _, category := range categoryOrder(scan, file) {
			findings, ok := file[category]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "  [%s]\n", category)
			for _, f := range findings {
				fmt.Fprintf(w, "    line %d: %s\n", f.Line, f.Text)
			}
		}
		fmt.Fprintln(w)
	}

	if len(paths) == 0 {
		fmt.Fprintf(w, "No suspicious patterns found.\n")
	}
	fmt.Fprintf(w, "Scanned %d files", scan.ScannedFiles)
	if scan.SkippedFiles > 0 {
		fmt.Fprintf(w, ", skipped %d unreadable", scan.SkippedFiles)
	}
	fmt.Fprintf(w, ", %d findings.\n", scan.TotalFindings())
}

// categoryOrder yields categories in registry order, falling back to
// whatever the file recorded (sorted by SortedPaths callers elsewhere).
func categoryOrder(scan *scanner.ScanResult, file scanner.FileResult) []string {
	if len(scan.Categories) > 0 {
		return scan.Categories
	}
	names := make([]string, 0, len(file))
	for name := range file {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func renderDeps(w io.Writer, deps *depcheck.Result) {
	fmt.Fprintln(w, "Outdated libraries")
	fmt.Fprintln(w, "==================")

	outdated := deps.Outdated()
	for _, rec := range outdated {
		fmt.Fprintf(w, "%s: pinned %s, latest %s\n", rec.Name, rec.Pinned, rec.Latest)
	}
	if len(outdated) == 0 {
		fmt.Fprintln(w, "All pinned libraries are up to date.")
	}
	if deps.Unknown > 0 {
		fmt.Fprintf(w, "(%d lookups failed; latest version unknown)\n", deps.Unknown)
	}
}

// jsonReport is the machine-readable envelope, metadata first.
type jsonReport struct {
	Meta     jsonMeta                 `json:"meta"`
	Scan     *scanner.ScanResult      `json:"scan,omitempty"`
	Outdated []depcheck.LibraryRecord `json:"outdated,omitempty"`
	Unknown  int                      `json:"unknown_lookups,omitempty"`
}

type jsonMeta struct {
	GeneratedAt string `json:"generated_at"`
	Findings    int    `json:"findings"`
	Outdated    int    `json:"outdated"`
}

// RenderJSON writes the same information as Render in JSON form.
func RenderJSON(w io.Writer, scan *scanner.ScanResult, deps *depcheck.Result) error {
	rep := jsonReport{
		Meta: jsonMeta{GeneratedAt: time.Now().UTC().Format(time.RFC3339)},
		Scan: scan,
	}
	if scan != nil {
		rep.Meta.Findings = scan.TotalFindings()
	}
	if deps != nil {
		rep.Outdated = deps.Outdated()
		rep.Unknown = deps.Unknown
		rep.Meta.Outdated = len(rep.Outdated)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
