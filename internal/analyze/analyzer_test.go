package analyze

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dkoval/ctxpress/internal/model"
)

const sessionLog = `**ALICE:** [2026-01-24T10:00:00Z] Kicking off. @BOB please review the plan.

**BOB:** Looking now. I vote for Redis.

**CAROL:** +1 for Redis. @ALICE the doc is ready.

**ALICE:** Thanks. I vote for Postgres.

**BOB:** I wasn't mentioned in this thread.`

func TestAnalyze_EndToEnd(t *testing.T) {
	report := New().Analyze(sessionLog, Options{})

	if report.TotalMessages != 5 {
		t.Errorf("expected 5 messages, got %d", report.TotalMessages)
	}
	if report.UniqueParticipants != 3 {
		t.Errorf("expected 3 participants, got %d", report.UniqueParticipants)
	}

	if report.MentionGraph["ALICE"]["BOB"] != 1 {
		t.Errorf("expected ALICE -> BOB mention, got %v", report.MentionGraph)
	}
	if report.MentionGraph["CAROL"]["ALICE"] != 1 {
		t.Errorf("expected CAROL -> ALICE mention, got %v", report.MentionGraph)
	}

	if report.Votes["General"]["Redis"] != 2 {
		t.Errorf("expected 2 Redis votes, got %v", report.Votes)
	}
	if report.Votes["General"]["Postgres"] != 1 {
		t.Errorf("expected 1 Postgres vote, got %v", report.Votes)
	}

	// BOB denies being mentioned, but ALICE mentioned him in message 0.
	if len(report.Contradictions) != 1 {
		t.Fatalf("expected 1 contradiction, got %d: %+v", len(report.Contradictions), report.Contradictions)
	}
	if report.Contradictions[0].Type != model.ClaimMentionDenial {
		t.Errorf("expected mention_denial contradiction, got %s", report.Contradictions[0].Type)
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	report := New().Analyze("", Options{})

	if report.TotalMessages != 0 {
		t.Errorf("expected 0 messages, got %d", report.TotalMessages)
	}
	if len(report.Claims) != 0 || len(report.Contradictions) != 0 || len(report.Timeline) != 0 {
		t.Error("expected empty collections for empty input")
	}
	if report.CompressionRatio != 1.0 {
		t.Errorf("expected ratio 1.0 for empty input, got %f", report.CompressionRatio)
	}
	if report.CompressedText == "" {
		t.Error("render must still produce a report for empty input")
	}
}

func TestAnalyze_NoSpeakerMarkers(t *testing.T) {
	report := New().Analyze("first paragraph\n\nsecond paragraph\n\nthird", Options{})

	if report.TotalMessages != 3 {
		t.Errorf("expected one message per paragraph, got %d", report.TotalMessages)
	}
	if report.UniqueParticipants != 0 {
		t.Errorf("unattributed paragraphs must not create participants, got %d", report.UniqueParticipants)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	a := New()
	first := a.Analyze(sessionLog, Options{Focus: "BOB"})
	second := a.Analyze(sessionLog, Options{Focus: "BOB"})

	if !reflect.DeepEqual(first, second) {
		t.Error("re-running the analysis on identical input must yield identical results")
	}
}

func TestAnalyze_ParticipationCountProperty(t *testing.T) {
	report := New().Analyze(sessionLog, Options{})

	total := 0
	for _, ctx := range report.ParticipantContexts {
		total += ctx.ParticipationCount
	}
	if total != report.TotalMessages {
		t.Errorf("participation counts sum to %d, want %d", total, report.TotalMessages)
	}
}

func TestAnalyze_MentionGraphSumProperty(t *testing.T) {
	report := New().Analyze(sessionLog, Options{})

	sum := 0
	for _, targets := range report.MentionGraph {
		for _, n := range targets {
			sum += n
		}
	}

	mentionEvents := 0
	for _, e := range report.Timeline {
		if e.Type == model.EventMention {
			mentionEvents++
		}
	}
	if sum != mentionEvents {
		t.Errorf("graph weight sum %d != mention event count %d", sum, mentionEvents)
	}
}

func TestAnalyze_TimelineOrdered(t *testing.T) {
	report := New().Analyze(sessionLog, Options{})

	if len(report.Timeline) == 0 {
		t.Fatal("expected timeline events")
	}
	for i := 1; i < len(report.Timeline); i++ {
		if report.Timeline[i].MessageID < report.Timeline[i-1].MessageID {
			t.Fatalf("timeline not ordered at %d: %d after %d",
				i, report.Timeline[i].MessageID, report.Timeline[i-1].MessageID)
		}
	}
}

func TestAnalyze_ParticipantContexts(t *testing.T) {
	report := New().Analyze(sessionLog, Options{})

	bob, ok := report.ParticipantContexts["BOB"]
	if !ok {
		t.Fatal("expected context for BOB")
	}
	if bob.ParticipationCount != 2 {
		t.Errorf("expected BOB participation 2, got %d", bob.ParticipationCount)
	}
	if len(bob.MentionsReceived) != 1 {
		t.Errorf("expected BOB to receive 1 mention, got %d", len(bob.MentionsReceived))
	}
	if bob.FirstMessage != 1 || bob.LastMessage != 4 {
		t.Errorf("expected BOB active 1..4, got %d..%d", bob.FirstMessage, bob.LastMessage)
	}
}

func TestAnalyze_NeverSpokeSentinel(t *testing.T) {
	report := New().Analyze("**ALICE:** waiting on @GHOST", Options{})

	ghost, ok := report.ParticipantContexts["GHOST"]
	if !ok {
		t.Fatal("expected context for mention-only participant GHOST")
	}
	if ghost.FirstMessage != -1 || ghost.LastMessage != -1 {
		t.Errorf("expected -1 sentinels, got %d..%d", ghost.FirstMessage, ghost.LastMessage)
	}
	if ghost.ParticipationCount != 0 {
		t.Errorf("expected 0 participation, got %d", ghost.ParticipationCount)
	}
}

func TestAnalyze_ParticipantOverride(t *testing.T) {
	// With an explicit roster, only the named participants are tracked.
	report := New().Analyze(sessionLog, Options{Participants: []string{"ALICE"}})

	if report.UniqueParticipants != 1 {
		t.Errorf("expected 1 participant, got %d", report.UniqueParticipants)
	}
	if _, ok := report.ParticipantContexts["BOB"]; ok {
		t.Error("BOB must not be tracked under an ALICE-only roster")
	}
}

func TestAnalyze_Metrics(t *testing.T) {
	report := New().Analyze(sessionLog, Options{})

	if report.OriginalSize != len(sessionLog) {
		t.Errorf("expected original size %d, got %d", len(sessionLog), report.OriginalSize)
	}
	wantSavings := report.OriginalSize/model.CharsPerToken - report.CompressedSize/model.CharsPerToken
	if report.EstimatedTokenSavings != wantSavings {
		t.Errorf("expected savings %d, got %d", wantSavings, report.EstimatedTokenSavings)
	}
}

func TestAnalyze_SummaryLine(t *testing.T) {
	report := New().Analyze(sessionLog, Options{})

	if !strings.Contains(report.Summary, "3 participants") {
		t.Errorf("summary must state the participant count: %q", report.Summary)
	}
	if !strings.Contains(report.Summary, "5 messages") {
		t.Errorf("summary must state the message count: %q", report.Summary)
	}
	if !strings.Contains(report.Summary, "1 contradictions detected") {
		t.Errorf("summary must state the contradiction count: %q", report.Summary)
	}
}
