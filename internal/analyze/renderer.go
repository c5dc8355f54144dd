package analyze

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dkoval/ctxpress/internal/model"
)

const (
	headerBar  = "============================================================"
	sectionBar = "----------------------------------------"

	timelineCap      = 20
	unackCap         = 5
	contextClip      = 60
	minTimelineScore = 2
)

// render formats the aggregated structures into the condensed report and a
// one-line summary. Pure formatting: it never recomputes or mutates its
// inputs.
func render(
	messages []model.Message,
	mentions []model.Mention,
	tallies map[string]map[string]int,
	claims []model.Claim,
	timeline []model.TimelineEvent,
	contradictions []model.Contradiction,
	focus string,
) (string, string) {
	var b strings.Builder

	b.WriteString(headerBar + "\n")
	b.WriteString("GROUP CONVERSATION COMPRESSION SUMMARY\n")
	b.WriteString(headerBar + "\n\n")

	speakers := speakerSet(messages)
	verified := 0
	for _, c := range claims {
		if c.Verified != nil && *c.Verified {
			verified++
		}
	}
	fmt.Fprintf(&b, "Total Messages: %d\n", len(messages))
	fmt.Fprintf(&b, "Participants: %s\n", strings.Join(speakers, ", "))
	fmt.Fprintf(&b, "Mentions: %d\n", len(mentions))
	fmt.Fprintf(&b, "Claims: %d (%d verified)\n", len(claims), verified)
	fmt.Fprintf(&b, "Contradictions Detected: %d\n\n", len(contradictions))

	renderMentionGraph(&b, mentions)
	renderTallies(&b, tallies)
	renderContradictions(&b, claims, contradictions)
	renderTimeline(&b, timeline)
	renderFocus(&b, mentions, focus)

	b.WriteString("\n" + headerBar + "\n")
	b.WriteString("END COMPRESSION SUMMARY\n")
	b.WriteString(headerBar)

	summary := fmt.Sprintf(
		"Group conversation with %d participants, %d messages. %d mentions, %d contradictions detected.",
		len(speakers), len(messages), len(mentions), len(contradictions),
	)
	return b.String(), summary
}

// speakerSet returns the sorted set of speakers actually seen in the
// messages, UNKNOWN included. This is the display roster; the analysis
// roster may be wider when mention targets never spoke.
func speakerSet(messages []model.Message) []string {
	seen := make(map[string]struct{}, len(messages))
	var speakers []string
	for _, m := range messages {
		if _, ok := seen[m.Participant]; ok {
			continue
		}
		seen[m.Participant] = struct{}{}
		speakers = append(speakers, m.Participant)
	}
	sort.Strings(speakers)
	return speakers
}

func renderMentionGraph(b *strings.Builder, mentions []model.Mention) {
	b.WriteString(sectionBar + "\n")
	b.WriteString("MENTION GRAPH\n")
	b.WriteString(sectionBar + "\n")

	received := make(map[string]int)
	acked := make(map[string]int)
	for _, m := range mentions {
		received[m.Mentioned]++
		if m.Acknowledged {
			acked[m.Mentioned]++
		}
	}

	names := make([]string, 0, len(received))
	for name := range received {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if received[names[i]] != received[names[j]] {
			return received[names[i]] > received[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Fprintf(b, "  @%s: %d mentions (ack: %d/%d)\n", name, received[name], acked[name], received[name])
	}
	b.WriteString("\n")
}

func renderTallies(b *strings.Builder, tallies map[string]map[string]int) {
	total := 0
	for _, choices := range tallies {
		total += len(choices)
	}
	if total == 0 {
		return
	}

	b.WriteString(sectionBar + "\n")
	b.WriteString("VOTE TALLIES\n")
	b.WriteString(sectionBar + "\n")

	topics := make([]string, 0, len(tallies))
	for topic := range tallies {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	for _, topic := range topics {
		choices := tallies[topic]
		fmt.Fprintf(b, "  %s:\n", topic)

		names := make([]string, 0, len(choices))
		for choice := range choices {
			names = append(names, choice)
		}
		sort.Slice(names, func(i, j int) bool {
			if choices[names[i]] != choices[names[j]] {
				return choices[names[i]] > choices[names[j]]
			}
			return names[i] < names[j]
		})
		for _, choice := range names {
			fmt.Fprintf(b, "    %s: %d vote(s)\n", choice, choices[choice])
		}
	}
	b.WriteString("\n")
}

func renderContradictions(b *strings.Builder, claims []model.Claim, contradictions []model.Contradiction) {
	if len(contradictions) == 0 {
		return
	}

	b.WriteString(sectionBar + "\n")
	b.WriteString("[!] CONTRADICTIONS DETECTED\n")
	b.WriteString(sectionBar + "\n")
	for _, c := range contradictions {
		fmt.Fprintf(b, "  [%s] %s:\n", strings.ToUpper(string(c.Severity)), c.Type)
		if c.ClaimID >= 0 && c.ClaimID < len(claims) {
			fmt.Fprintf(b, "    Claim: %s\n", claims[c.ClaimID].Text)
		}
		fmt.Fprintf(b, "    Fact: %s\n", c.Fact)
		fmt.Fprintf(b, "    Evidence: %s\n", c.Evidence)
	}
	b.WriteString("\n")
}

func renderTimeline(b *strings.Builder, timeline []model.TimelineEvent) {
	b.WriteString(sectionBar + "\n")
	b.WriteString("KEY EVENTS TIMELINE\n")
	b.WriteString(sectionBar + "\n")

	shown := 0
	for _, e := range timeline {
		if e.Importance < minTimelineScore {
			continue
		}
		if shown == timelineCap {
			break
		}
		shown++
		when := e.Timestamp
		if when == "" {
			when = fmt.Sprintf("msg#%d", e.MessageID)
		}
		fmt.Fprintf(b, "  [%s] %s\n", when, e.Summary)
	}
	if len(timeline) > timelineCap {
		fmt.Fprintf(b, "  ... and %d more events\n", len(timeline)-timelineCap)
	}
	b.WriteString("\n")
}

func renderFocus(b *strings.Builder, mentions []model.Mention, focus string) {
	if focus == "" {
		return
	}

	b.WriteString(sectionBar + "\n")
	fmt.Fprintf(b, "FOCUS: %s\n", strings.ToUpper(focus))
	b.WriteString(sectionBar + "\n")

	var received, unacked []model.Mention
	for _, m := range mentions {
		if !strings.EqualFold(m.Mentioned, focus) {
			continue
		}
		received = append(received, m)
		if !m.Acknowledged {
			unacked = append(unacked, m)
		}
	}
	fmt.Fprintf(b, "  Received %d mentions\n", len(received))

	if len(unacked) > 0 {
		fmt.Fprintf(b, "  [!] %d UNACKNOWLEDGED mentions:\n", len(unacked))
		for i, m := range unacked {
			if i == unackCap {
				break
			}
			fmt.Fprintf(b, "      From %s: %s...\n", m.Mentioner, truncate(m.Context, contextClip))
		}
	}
}
