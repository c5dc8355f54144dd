package verify

import (
	"strings"
	"testing"

	"github.com/dkoval/ctxpress/internal/extract"
	"github.com/dkoval/ctxpress/internal/model"
	"github.com/dkoval/ctxpress/internal/segment"
)

func TestVerify_MentionDenialContradicted(t *testing.T) {
	messages := segment.Segment("**A:** @B review\n\n**B:** ok\n\n**B:** I wasn't mentioned")
	participants := extract.Participants(messages, nil)
	mentions := extract.Mentions(messages, participants)
	claims := extract.Claims(messages)

	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}

	contradictions := Verify(claims, mentions, nil)
	if len(contradictions) != 1 {
		t.Fatalf("expected 1 contradiction, got %d", len(contradictions))
	}

	c := contradictions[0]
	if c.Type != model.ClaimMentionDenial {
		t.Errorf("expected type mention_denial, got %s", c.Type)
	}
	if c.Severity != model.SeverityHigh {
		t.Errorf("expected severity high, got %s", c.Severity)
	}
	if c.ClaimID != 0 {
		t.Errorf("expected claim id 0, got %d", c.ClaimID)
	}

	if claims[0].Verified == nil || *claims[0].Verified {
		t.Error("expected claim marked verified=false")
	}
	if !strings.HasSuffix(claims[0].Note, "[CONTRADICTION DETECTED]") {
		t.Errorf("expected contradiction marker in note: %q", claims[0].Note)
	}
}

func TestVerify_MentionDenialUpheld(t *testing.T) {
	claims := []model.Claim{
		{Claimant: "B", Text: "I wasn't mentioned", MessageID: 2, Category: model.ClaimMentionDenial, Note: "Type: mention_denial"},
	}

	contradictions := Verify(claims, nil, nil)
	if len(contradictions) != 0 {
		t.Fatalf("expected no contradictions, got %d", len(contradictions))
	}
	if claims[0].Verified == nil || !*claims[0].Verified {
		t.Error("expected claim marked verified=true")
	}
	if !strings.HasSuffix(claims[0].Note, "[VERIFIED]") {
		t.Errorf("expected verified marker in note: %q", claims[0].Note)
	}
}

func TestVerify_MentionDenialOnlyEarlierMentionsCount(t *testing.T) {
	// The mention arrives after the denial, so the denial stands.
	mentions := []model.Mention{
		{Mentioner: "A", Mentioned: "B", MessageID: 5},
	}
	claims := []model.Claim{
		{Claimant: "B", Text: "I wasn't mentioned", MessageID: 2, Category: model.ClaimMentionDenial},
	}

	if contradictions := Verify(claims, mentions, nil); len(contradictions) != 0 {
		t.Errorf("later mention must not contradict, got %d contradictions", len(contradictions))
	}
	if claims[0].Verified == nil || !*claims[0].Verified {
		t.Error("expected claim verified=true")
	}
}

func TestVerify_VoteCountMismatch(t *testing.T) {
	tallies := map[string]map[string]int{
		"General": {"X": 2, "Y": 1},
	}
	claims := []model.Claim{
		{Claimant: "A", Text: "there are 5 votes total", MessageID: 3, Category: model.ClaimVoteCount},
	}

	contradictions := Verify(claims, nil, tallies)
	if len(contradictions) != 1 {
		t.Fatalf("expected 1 contradiction, got %d", len(contradictions))
	}
	if contradictions[0].Severity != model.SeverityMedium {
		t.Errorf("expected severity medium, got %s", contradictions[0].Severity)
	}
	if !strings.Contains(contradictions[0].Fact, "Actual vote count: 3") {
		t.Errorf("unexpected fact: %q", contradictions[0].Fact)
	}
	// Vote-count verification reports contradictions but never sets a
	// definite verdict.
	if claims[0].Verified != nil {
		t.Error("vote_count claims must keep Verified unset")
	}
}

func TestVerify_VoteCountMatch(t *testing.T) {
	tallies := map[string]map[string]int{
		"General": {"X": 3},
	}
	claims := []model.Claim{
		{Claimant: "A", Text: "there are 3 votes total", MessageID: 3, Category: model.ClaimVoteCount},
	}

	if contradictions := Verify(claims, nil, tallies); len(contradictions) != 0 {
		t.Errorf("matching count must not contradict, got %d", len(contradictions))
	}
}

func TestVerify_VoteCountZeroTallySkipped(t *testing.T) {
	claims := []model.Claim{
		{Claimant: "A", Text: "there are 3 votes total", MessageID: 0, Category: model.ClaimVoteCount},
	}

	if contradictions := Verify(claims, nil, nil); len(contradictions) != 0 {
		t.Errorf("empty tally must not contradict, got %d", len(contradictions))
	}
}

func TestVerify_UncheckedCategoriesUntouched(t *testing.T) {
	claims := []model.Claim{
		{Claimant: "A", Text: "I was here", Category: model.ClaimPresence},
		{Claimant: "B", Text: "I already responded", Category: model.ClaimResponse},
	}

	contradictions := Verify(claims, nil, nil)
	if len(contradictions) != 0 {
		t.Errorf("expected no contradictions, got %d", len(contradictions))
	}
	for i, c := range claims {
		if c.Verified != nil {
			t.Errorf("claim %d: presence/response claims must stay unverified", i)
		}
	}
}
