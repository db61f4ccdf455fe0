package errors

import "errors"

// Domain errors
var (
	// Pattern configuration errors (fatal at startup)
	ErrInvalidPattern = errors.New("invalid pattern definition")
	ErrEmptyCategory  = errors.New("pattern category has no patterns")

	// Scan errors
	ErrRootNotFound   = errors.New("scan root does not exist")
	ErrRootNotDir     = errors.New("scan root is not a directory")
	ErrFileUnreadable = errors.New("file could not be read")

	// Manifest errors
	ErrManifestNotFound = errors.New("manifest file not found")

	// Registry errors
	ErrPackageNotFound     = errors.New("package not found in registry")
	ErrRegistryResponse    = errors.New("unexpected registry response")
	ErrRegistryUnavailable = errors.New("registry unavailable")
)
