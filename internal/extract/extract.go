// Package extract reconstructs coordination structures (mentions, votes,
// claims) from a segmented conversation. All extractors are pure scans
// over the message sequence; absence of a feature is a normal outcome,
// never an error.
package extract

// orUnknown substitutes the display placeholder for a missing timestamp.
func orUnknown(ts string) string {
	if ts == "" {
		return "unknown"
	}
	return ts
}

// overlaps reports whether [start, end) intersects any claimed span.
// Extractors use it to keep overlapping patterns from double-counting the
// same stretch of text.
func overlaps(spans [][2]int, start, end int) bool {
	for _, s := range spans {
		if start < s[1] && end > s[0] {
			return true
		}
	}
	return false
}
