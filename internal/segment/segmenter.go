package segment

import (
	"regexp"
	"strings"

	"github.com/dkoval/ctxpress/internal/model"
)

// A strategy attempts to split conversation text into attributed messages.
// Strategies are tried in order; the first one yielding at least one
// message wins.
type strategy func(text string) []model.Message

var strategies = []strategy{
	segmentBoldLabels,
	segmentLinePrefixes,
	segmentBracketLabels,
	segmentParagraphs,
}

// Segment splits raw conversation text into an ordered message sequence
// with contiguous 0-based ids. It never fails: unrecognizable input
// degrades to paragraph messages attributed to model.UnknownParticipant,
// and empty input yields an empty sequence.
func Segment(text string) []model.Message {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, s := range strategies {
		if msgs := s(text); len(msgs) > 0 {
			return msgs
		}
	}
	return nil
}

// The colon sits inside the bold markers: **NAME:** or **NAME (role):**.
var boldLabelRe = regexp.MustCompile(`(?m)^\*\*([A-Z][A-Z0-9_]*)(?:\s*\([^)]+\))?:\*\*`)

// segmentBoldLabels handles the "**NAME:** text" format, the most common
// in agent session logs.
func segmentBoldLabels(text string) []model.Message {
	return segmentByMarkers(text, boldLabelRe)
}

var bracketLabelRe = regexp.MustCompile(`(?m)^\[([A-Z][A-Z0-9_]+)\]`)

// segmentBracketLabels handles the "[NAME] text" format.
func segmentBracketLabels(text string) []model.Message {
	return segmentByMarkers(text, bracketLabelRe)
}

// segmentByMarkers splits text at each marker match. A segment's content is
// everything between its marker and the next one; empty segments are
// discarded, not emitted as zero-length messages.
func segmentByMarkers(text string, marker *regexp.Regexp) []model.Message {
	locs := marker.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	var msgs []model.Message
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}

		content := strings.TrimSpace(text[loc[1]:end])
		if content == "" {
			continue
		}

		msgs = append(msgs, model.Message{
			ID:          len(msgs),
			Participant: text[loc[2]:loc[3]],
			Content:     content,
			Timestamp:   ExtractTimestamp(content),
			Raw:         text[loc[0]:end],
		})
	}
	return msgs
}

var linePrefixRe = regexp.MustCompile(`^([A-Z][A-Z0-9_]+):\s*(.*)$`)

// segmentLinePrefixes handles "NAME: text" lines. Subsequent lines belong
// to the current message until the next prefixed line.
func segmentLinePrefixes(text string) []model.Message {
	var (
		msgs    []model.Message
		speaker string
		body    []string
	)

	flush := func() {
		if speaker == "" {
			return
		}
		content := strings.TrimSpace(strings.Join(body, "\n"))
		if content == "" {
			return
		}
		msgs = append(msgs, model.Message{
			ID:          len(msgs),
			Participant: speaker,
			Content:     content,
			Timestamp:   ExtractTimestamp(content),
			Raw:         speaker + ": " + content,
		})
	}

	for _, line := range strings.Split(text, "\n") {
		if m := linePrefixRe.FindStringSubmatch(line); m != nil {
			flush()
			speaker = m[1]
			body = nil
			if rest := strings.TrimSpace(m[2]); rest != "" {
				body = append(body, rest)
			}
			continue
		}
		if speaker != "" {
			body = append(body, line)
		}
	}
	flush()

	return msgs
}

// segmentParagraphs is the last resort: blank-line-delimited paragraphs,
// each attributed to the unknown sentinel.
func segmentParagraphs(text string) []model.Message {
	var msgs []model.Message
	for _, para := range strings.Split(text, "\n\n") {
		content := strings.TrimSpace(para)
		if content == "" {
			continue
		}
		msgs = append(msgs, model.Message{
			ID:          len(msgs),
			Participant: model.UnknownParticipant,
			Content:     content,
			Raw:         para,
		})
	}
	return msgs
}
