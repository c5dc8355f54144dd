package analyze

import (
	"fmt"
	"sort"

	"github.com/dkoval/ctxpress/internal/model"
)

const (
	mentionImportance = 2
	voteImportance    = 3
	claimImportance   = 2
)

// buildTimeline merges mention, vote and claim events into one sequence
// ordered by message id. The sort is stable, so events from the same
// message keep extraction order: mentions, then votes, then claims.
func buildTimeline(mentions []model.Mention, votes []model.Vote, claims []model.Claim) []model.TimelineEvent {
	events := make([]model.TimelineEvent, 0, len(mentions)+len(votes)+len(claims))

	for _, m := range mentions {
		events = append(events, model.TimelineEvent{
			Timestamp:   m.Timestamp,
			MessageID:   m.MessageID,
			Type:        model.EventMention,
			Participant: m.Mentioner,
			Summary:     fmt.Sprintf("@%s mentioned by %s", m.Mentioned, m.Mentioner),
			Importance:  mentionImportance,
		})
	}

	for _, v := range votes {
		events = append(events, model.TimelineEvent{
			Timestamp:   v.Timestamp,
			MessageID:   v.MessageID,
			Type:        model.EventVote,
			Participant: v.Voter,
			Summary:     fmt.Sprintf("%s voted for %s", v.Voter, v.Choice),
			Importance:  voteImportance,
		})
	}

	for _, c := range claims {
		events = append(events, model.TimelineEvent{
			Timestamp:   c.Timestamp,
			MessageID:   c.MessageID,
			Type:        model.EventClaim,
			Participant: c.Claimant,
			Summary:     fmt.Sprintf("%s: %s...", c.Claimant, truncate(c.Text, 50)),
			Importance:  claimImportance,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].MessageID < events[j].MessageID
	})
	return events
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
