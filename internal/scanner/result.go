package scanner

import "sort"

// Finding is a single line flagged by a pattern category.
type Finding struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

// FileResult maps a category name to the findings recorded for one file,
// in ascending line order. An empty FileResult means the file was scanned
// cleanly, which is distinct from the file being unreadable.
type FileResult map[string][]Finding

// ScanResult aggregates the findings of one tree walk, keyed by
// root-relative file path. It is read-only once returned by Walk.
type ScanResult struct {
	Root         string                `json:"root"`
	Categories   []string              `json:"categories"`
	Files        map[string]FileResult `json:"files"`
	ScannedFiles int                   `json:"scanned_files"`
	SkippedFiles int                   `json:"skipped_files"`
}

// SortedPaths returns the flagged file paths in lexical order so callers
// can render reproducible output regardless of worker completion order.
func (r *ScanResult) SortedPaths() []string {
	paths := make([]string, 0, len(r.Files))
	for p := range r.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// TotalFindings counts every finding across all files and categories.
func (r *ScanResult) TotalFindings() int {
	total := 0
	for _, file := range r.Files {
		for _, findings := range file {
			total += len(findings)
		}
	}
	return total
}
