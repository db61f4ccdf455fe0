// Package depcheck compares manifest pins against the registry's latest
// published versions.
package depcheck

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/khanhnv2901/srcaudit-cli/internal/manifest"
	"github.com/khanhnv2901/srcaudit-cli/internal/registry"
	"github.com/khanhnv2901/srcaudit-cli/internal/shared/constants"
)

// LibraryRecord is one resolved pin with the registry's latest version.
type LibraryRecord struct {
	Name     string `json:"name"`
	Pinned   string `json:"pinned"`
	Latest   string `json:"latest"`
	Outdated bool   `json:"outdated"`
}

// Result is the outcome of one dependency check. Records keep manifest
// order; Unknown counts lookups that failed and were skipped, so a
// clean check is distinguishable from one with blind spots.
type Result struct {
	Records []LibraryRecord `json:"records"`
	Unknown int             `json:"unknown"`
}

// Outdated returns only the records whose pin is behind the registry,
// still in manifest order.
func (r *Result) Outdated() []LibraryRecord {
	var out []LibraryRecord
	for _, rec := range r.Records {
		if rec.Outdated {
			out = append(out, rec)
		}
	}
	return out
}

// ProgressFunc is invoked after each lookup completes.
type ProgressFunc func(name string, resolved bool)

// Checker resolves pins concurrently through a worker pool. Each lookup
// is independent; results land in a slot per pin so output order never
// depends on completion order.
type Checker struct {
	Registry    *registry.Client
	Concurrency int // Maximum number of concurrent lookups
	Logger      *zap.SugaredLogger
	Progress    ProgressFunc
}

// Check parses the manifest and resolves every pin. Lookup failures are
// logged, counted and skipped; only a manifest-level error is returned.
func (c *Checker) Check(ctx context.Context, manifestPath string) (*Result, error) {
	pins, err := manifest.Parse(manifestPath)
	if err != nil {
		return nil, err
	}
	return c.CheckPins(ctx, pins), nil
}

// CheckPins resolves the given pins against the registry.
func (c *Checker) CheckPins(ctx context.Context, pins []manifest.Pin) *Result {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = constants.DefaultDepsConcurrency
	}

	type slot struct {
		record   LibraryRecord
		resolved bool
	}
	slots := make([]slot, len(pins))

	// Worker pool
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, pin := range pins {
		wg.Add(1)
		go func(i int, pin manifest.Pin) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			latest, err := c.Registry.LatestVersion(ctx, pin.Name)
			if err != nil {
				if c.Logger != nil {
					c.Logger.Warnf("latest version unknown for %s: %v", pin.Name, err)
				}
				if c.Progress != nil {
					c.Progress(pin.Name, false)
				}
				return
			}
			slots[i] = slot{
				record: LibraryRecord{
					Name:     pin.Name,
					Pinned:   pin.Version,
					Latest:   latest,
					Outdated: IsOutdated(pin.Version, latest),
				},
				resolved: true,
			}
			if c.Progress != nil {
				c.Progress(pin.Name, true)
			}
		}(i, pin)
	}
	wg.Wait()

	result := &Result{}
	for _, s := range slots {
		if s.resolved {
			result.Records = append(result.Records, s.record)
		} else {
			result.Unknown++
		}
	}
	return result
}
