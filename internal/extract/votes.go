package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dkoval/ctxpress/internal/model"
)

// GeneralTopic is the single tally bucket all votes fall into. Free-form
// conversations carry no reliable topic labels, so tallies are not split
// per topic.
const GeneralTopic = "General"

// maxChoiceLen discards captures that are probably whole sentences rather
// than actual choices.
const maxChoiceLen = 50

// Common ways people phrase votes, tried in order per message.
var votePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:i\s+)?vote\s+(?:for\s+)?([A-Z][a-zA-Z_0-9\s]*)`),        // "I vote for X", "vote X"
	regexp.MustCompile(`(?i)(?:my\s+)?vote:?\s*([A-Z][a-zA-Z_0-9\s]*)`),                // "My vote: X"
	regexp.MustCompile(`(?i)\+1\s+(?:for\s+)?([A-Z][a-zA-Z_0-9\s]*)`),                  // "+1 for X"
	regexp.MustCompile(`(?i)(?:i\s+)?support\s+([A-Z][a-zA-Z_0-9\s]*)`),                // "I support X"
	regexp.MustCompile(`(?i)(?:i\s+)?(?:choose|pick|select)\s+([A-Z][a-zA-Z_0-9\s]*)`), // "I choose X"
	regexp.MustCompile(`(?i)([A-Z][a-zA-Z_0-9\s]*)\s+gets?\s+my\s+vote`),               // "X gets my vote"
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Votes extracts vote expressions and tallies them under GeneralTopic.
// A match overlapping text already claimed by an earlier pattern is
// skipped, so one statement yields one vote even when several patterns
// would capture it.
func Votes(messages []model.Message) (map[string]map[string]int, []model.Vote) {
	tallies := make(map[string]map[string]int)
	var details []model.Vote

	for _, msg := range messages {
		var claimed [][2]int
		for _, re := range votePatterns {
			for _, loc := range re.FindAllStringSubmatchIndex(msg.Content, -1) {
				if overlaps(claimed, loc[0], loc[1]) {
					continue
				}

				choice := normalizeChoice(msg.Content[loc[2]:loc[3]])
				if choice == "" || len(choice) > maxChoiceLen {
					continue
				}
				claimed = append(claimed, [2]int{loc[0], loc[1]})

				details = append(details, model.Vote{
					Voter:     msg.Participant,
					Choice:    choice,
					Timestamp: orUnknown(msg.Timestamp),
					MessageID: msg.ID,
					RawText:   msg.Content[loc[0]:loc[1]],
				})

				bucket := tallies[GeneralTopic]
				if bucket == nil {
					bucket = make(map[string]int)
					tallies[GeneralTopic] = bucket
				}
				bucket[choice]++
			}
		}
	}
	return tallies, details
}

// normalizeChoice collapses whitespace and title-cases the captured choice
// so tallies group spelling variants.
func normalizeChoice(raw string) string {
	collapsed := strings.TrimSpace(whitespaceRe.ReplaceAllString(raw, " "))
	return titleCase(collapsed)
}

// titleCase uppercases every letter that follows a non-letter and
// lowercases the rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
			prevLetter = false
		case prevLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		}
	}
	return b.String()
}
