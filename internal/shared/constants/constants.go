package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// MaxLineBytes caps the buffered line length while scanning a file.
	// Files with longer lines (typically minified or binary content)
	// count as unreadable instead of crashing the scan.
	MaxLineBytes = 1 << 20

	// DefaultScanConcurrency is the per-file scanning worker count.
	DefaultScanConcurrency = 8

	// DefaultDepsConcurrency is the concurrent registry lookup count.
	DefaultDepsConcurrency = 4

	// DefaultRegistryRPS bounds registry lookups per second.
	DefaultRegistryRPS = 10

	// DefaultRegistryTimeout bounds a single registry lookup. No retry.
	DefaultRegistryTimeout = 5 * time.Second

	// DefaultRegistryBaseURL is the package index queried for latest versions.
	DefaultRegistryBaseURL = "https://pypi.org"

	// DefaultManifestName is the dependency pin file checked by default.
	DefaultManifestName = "requirements.txt"
)
