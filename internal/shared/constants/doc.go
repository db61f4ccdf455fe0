// Package constants centralizes tunable limits and defaults shared
// across the CLI so they are defined exactly once.
package constants
