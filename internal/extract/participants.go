package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dkoval/ctxpress/internal/model"
)

// Single-letter handles are valid: the segmenter accepts one-letter
// speaker labels, so mention tokens must too.
var mentionTokenRe = regexp.MustCompile(`@([A-Z][A-Z0-9_]*)`)

// Participants derives the known participant set for one analysis run.
// When known is non-empty it is normalized to uppercase and used as given
// (order preserved, duplicates dropped). Otherwise the set is every speaker
// plus every @IDENTIFIER token, covering participants who are referenced
// but never speak; the derived set is sorted.
func Participants(messages []model.Message, known []string) []string {
	if len(known) > 0 {
		seen := make(map[string]bool, len(known))
		out := make([]string, 0, len(known))
		for _, k := range known {
			k = strings.ToUpper(strings.TrimSpace(k))
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, k)
		}
		return out
	}

	set := make(map[string]bool)
	for _, msg := range messages {
		if msg.Participant != model.UnknownParticipant {
			set[msg.Participant] = true
		}
		for _, m := range mentionTokenRe.FindAllStringSubmatch(msg.Content, -1) {
			set[m[1]] = true
		}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
