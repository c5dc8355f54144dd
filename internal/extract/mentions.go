package extract

import (
	"regexp"
	"strings"

	"github.com/dkoval/ctxpress/internal/model"
)

const (
	// ackWindow is how many subsequent messages are scanned for a reply
	// from the mentioned participant. Replies farther out do not count as
	// acknowledgment.
	ackWindow = 10

	// contextRadius is how many characters of surrounding text are kept
	// on each side of a mention.
	contextRadius = 50
)

// Mentions finds every @-reference to a known participant. Matching is
// case-insensitive; the recorded identifier is always uppercase.
func Mentions(messages []model.Message, participants []string) []model.Mention {
	if len(messages) == 0 || len(participants) == 0 {
		return nil
	}

	alts := make([]string, len(participants))
	for i, p := range participants {
		alts[i] = regexp.QuoteMeta(p)
	}
	mentionRe := regexp.MustCompile(`(?i)@(` + strings.Join(alts, "|") + `)\b`)

	var mentions []model.Mention
	for _, msg := range messages {
		for _, loc := range mentionRe.FindAllStringSubmatchIndex(msg.Content, -1) {
			mentioned := strings.ToUpper(msg.Content[loc[2]:loc[3]])

			start := loc[0] - contextRadius
			if start < 0 {
				start = 0
			}
			end := loc[1] + contextRadius
			if end > len(msg.Content) {
				end = len(msg.Content)
			}

			mentions = append(mentions, model.Mention{
				Mentioner:    msg.Participant,
				Mentioned:    mentioned,
				Timestamp:    orUnknown(msg.Timestamp),
				MessageID:    msg.ID,
				Context:      msg.Content[start:end],
				Acknowledged: acknowledged(messages, msg.ID, mentioned),
			})
		}
	}
	return mentions
}

// acknowledged reports whether the mentioned participant speaks within the
// next ackWindow messages (by id) after the mention.
func acknowledged(messages []model.Message, mentionID int, mentioned string) bool {
	for _, msg := range messages {
		if msg.ID <= mentionID || msg.ID > mentionID+ackWindow {
			continue
		}
		if strings.EqualFold(msg.Participant, mentioned) {
			return true
		}
	}
	return false
}

// MentionGraph folds mentions into a weighted adjacency map:
// mentioner -> mentioned -> count. A fresh map is built on every call.
func MentionGraph(mentions []model.Mention) map[string]map[string]int {
	graph := make(map[string]map[string]int)
	for _, m := range mentions {
		inner := graph[m.Mentioner]
		if inner == nil {
			inner = make(map[string]int)
			graph[m.Mentioner] = inner
		}
		inner[m.Mentioned]++
	}
	return graph
}
