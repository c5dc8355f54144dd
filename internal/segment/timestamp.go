package segment

import "regexp"

// Timestamp patterns, tried in order; the first match wins.
var timestampPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\[(\d{4}-\d{2}-\d{2}[T\s]\d{2}:\d{2}(?::\d{2})?(?:Z|[+-]\d{2}:?\d{2})?)\]`), // [2026-01-24T10:30:00Z]
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2})`),                                          // 2026-01-24 10:30
	regexp.MustCompile(`(\d{2}:\d{2}:\d{2})`),                                                        // 10:30:00
	regexp.MustCompile(`(?i)\((\d{1,2}:\d{2}\s*(?:AM|PM)?)\)`),                                       // (10:30 AM)
}

// ExtractTimestamp returns the first timestamp-looking token in content, or
// "" when nothing matches. The value is display text only; ordering always
// follows message ids.
func ExtractTimestamp(content string) string {
	for _, p := range timestampPatterns {
		if m := p.FindStringSubmatch(content); m != nil {
			return m[1]
		}
	}
	return ""
}
