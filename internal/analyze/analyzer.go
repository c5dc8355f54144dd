// Package analyze orchestrates the group-conversation pipeline: segment
// the text, resolve participants, extract mentions/votes/claims, verify
// claims, then build the timeline, per-participant views and the rendered
// report.
package analyze

import (
	"github.com/dkoval/ctxpress/internal/extract"
	"github.com/dkoval/ctxpress/internal/model"
	"github.com/dkoval/ctxpress/internal/segment"
	"github.com/dkoval/ctxpress/internal/verify"
)

// Analyzer runs the group-conversation analysis. It is stateless and
// allocates fresh structures per call, so one Analyzer may be shared by
// concurrent callers on independent inputs.
type Analyzer struct{}

// New creates a new analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Options tunes a single analysis run.
type Options struct {
	// Participants overrides participant detection when non-empty.
	Participants []string

	// Focus names a participant to spotlight in the rendered report.
	Focus string
}

// Analyze segments the conversation, reconstructs its coordination
// structures and renders the condensed view. It is a pure function of its
// inputs and never fails: empty or unparseable text degrades to smaller or
// empty result structures.
func (a *Analyzer) Analyze(conversation string, opts Options) *model.GroupReport {
	messages := segment.Segment(conversation)
	participants := extract.Participants(messages, opts.Participants)

	mentions := extract.Mentions(messages, participants)
	graph := extract.MentionGraph(mentions)

	tallies, votes := extract.Votes(messages)

	claims := extract.Claims(messages)
	contradictions := verify.Verify(claims, mentions, tallies)

	timeline := buildTimeline(mentions, votes, claims)
	contexts := buildContexts(messages, mentions, votes, claims, participants)

	compressed, summary := render(messages, mentions, tallies, claims, timeline, contradictions, opts.Focus)

	originalSize := len(conversation)
	compressedSize := len(compressed)
	ratio := 1.0
	if originalSize > 0 {
		ratio = float64(compressedSize) / float64(originalSize)
	}

	return &model.GroupReport{
		OriginalSize:          originalSize,
		CompressedSize:        compressedSize,
		CompressionRatio:      ratio,
		EstimatedTokenSavings: originalSize/model.CharsPerToken - compressedSize/model.CharsPerToken,
		TotalMessages:         len(messages),
		UniqueParticipants:    len(participants),
		MentionGraph:          graph,
		Votes:                 tallies,
		VoteDetails:           votes,
		Claims:                claims,
		Contradictions:        contradictions,
		Timeline:              timeline,
		ParticipantContexts:   contexts,
		CompressedText:        compressed,
		Summary:               summary,
	}
}
