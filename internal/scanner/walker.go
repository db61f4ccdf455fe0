package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/khanhnv2901/srcaudit-cli/internal/shared/constants"
	sharederrors "github.com/khanhnv2901/srcaudit-cli/internal/shared/errors"
)

// DefaultExtensions is the file-extension allow-list. The suffix match
// is case-sensitive.
func DefaultExtensions() []string {
	return []string{".py", ".js", ".ts", ".php", ".sh", ".rb", ".java", ".c", ".cpp", ".cs"}
}

// DefaultExcludeMarkers prunes version-control, virtual-environment and
// dependency-cache directories. A marker matches as a substring of a
// single path component, so "venv" also prunes ".venv".
func DefaultExcludeMarkers() []string {
	return []string{".git", ".hg", ".svn", "venv", "node_modules", "__pycache__", "site-packages", ".tox", ".mypy_cache", ".idea", "vendor"}
}

// Walker enumerates files under a root and dispatches eligible ones to
// ScanFile through a bounded worker pool. All configuration is explicit;
// the walker holds no ambient state and is safe to use concurrently.
type Walker struct {
	Matcher        *Matcher
	Extensions     []string
	ExcludeMarkers []string
	Concurrency    int // Maximum number of files scanned at once
	Logger         *zap.SugaredLogger
}

// Walk scans every eligible file under root and aggregates the non-empty
// per-file results keyed by root-relative path. Directory symlinks are
// never followed, so a cyclic link cannot recurse forever. Unreadable
// files are logged and counted, never fatal; only an unusable root or a
// canceled context aborts the walk.
func (w *Walker) Walk(ctx context.Context, root string) (*ScanResult, error) {
	// Absolute root for clarity in logs and reports; findings stay
	// keyed by root-relative path either way.
	if abs, absErr := filepath.Abs(root); absErr == nil {
		root = abs
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", sharederrors.ErrRootNotFound, root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", sharederrors.ErrRootNotDir, root)
	}

	files, err := w.collect(ctx, root)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{
		Root:       root,
		Categories: w.Matcher.CategoryNames(),
		Files:      make(map[string]FileResult),
	}

	concurrency := w.Concurrency
	if concurrency <= 0 {
		concurrency = constants.DefaultScanConcurrency
	}

	// Worker pool
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	mu := sync.Mutex{}

	for _, path := range files {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			fileResult, err := ScanFile(p, w.Matcher)

			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				rel = p
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.SkippedFiles++
				if w.Logger != nil {
					w.Logger.Warnf("skipping %s: %v", rel, err)
				}
				return
			}
			result.ScannedFiles++
			if len(fileResult) > 0 {
				result.Files[rel] = fileResult
			}
		}(path)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// collect performs the sequential descent, applying the directory
// exclusion policy and the extension allow-list.
func (w *Walker) collect(ctx context.Context, root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Unreadable directory entry: note the blind spot, keep walking.
			if w.Logger != nil {
				w.Logger.Warnf("cannot access %s: %v", path, err)
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && w.excluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		// WalkDir reports a symlinked directory as a non-dir entry and
		// does not descend into it, which is exactly the policy we want.
		if !d.Type().IsRegular() {
			return nil
		}
		if w.eligible(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (w *Walker) excluded(dirName string) bool {
	for _, marker := range w.ExcludeMarkers {
		if strings.Contains(dirName, marker) {
			return true
		}
	}
	return false
}

func (w *Walker) eligible(fileName string) bool {
	for _, ext := range w.Extensions {
		if strings.HasSuffix(fileName, ext) {
			return true
		}
	}
	return false
}
