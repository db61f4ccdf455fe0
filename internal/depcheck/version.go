package depcheck

import "strconv"

// CompareVersions orders dotted version strings: -1 if a < b, 0 if
// equal, 1 if a > b. Segments are compared left to right, numerically
// where both sides are numeric — so 1.2.3 < 1.2.10 and 1.9 < 1.10,
// where a lexical comparison would get both wrong.
//
// Tie-break rules for the ambiguous cases, chosen as one consistent
// total order: a version that is a strict prefix of another is older
// (1.2 < 1.2.0), and within a segment any non-numeric suffix sorts
// before the bare number (1.2.0rc1 < 1.2.0).
func CompareVersions(a, b string) int {
	as := splitSegments(a)
	bs := splitSegments(b)

	for i := 0; i < len(as) || i < len(bs); i++ {
		if i >= len(as) {
			return -1
		}
		if i >= len(bs) {
			return 1
		}
		if cmp := compareSegment(as[i], bs[i]); cmp != 0 {
			return cmp
		}
	}
	return 0
}

// IsOutdated reports whether the pinned version sorts strictly before
// the latest published one.
func IsOutdated(pinned, latest string) bool {
	return CompareVersions(pinned, latest) < 0
}

func splitSegments(v string) []string {
	var segments []string
	start := 0
	for i := 0; i < len(v); i++ {
		if v[i] == '.' {
			segments = append(segments, v[start:i])
			start = i + 1
		}
	}
	return append(segments, v[start:])
}

func compareSegment(a, b string) int {
	na, ra := splitNumericPrefix(a)
	nb, rb := splitNumericPrefix(b)

	if na != nb {
		if na < nb {
			return -1
		}
		return 1
	}

	switch {
	case ra == "" && rb == "":
		return 0
	case ra == "":
		return 1 // bare release sorts after a suffixed one
	case rb == "":
		return -1
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	}
	return 0
}

// splitNumericPrefix returns the leading digit run as an int and the
// remainder. A segment with no leading digits gets -1 so it sorts
// before any numbered segment.
func splitNumericPrefix(s string) (int, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return -1, s
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		// Digit run too long for int; extremely unlikely in practice.
		return -1, s
	}
	return n, s[i:]
}
