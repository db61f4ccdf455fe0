// Package scanner implements the pattern-scanning core: a registry of
// regex categories, a per-line matcher, a per-file scanner and a tree
// walker that aggregates findings across a source tree.
package scanner
