package extract

import (
	"strings"
	"testing"

	"github.com/dkoval/ctxpress/internal/model"
)

func TestClaims_Categories(t *testing.T) {
	tests := []struct {
		content  string
		category model.ClaimCategory
	}{
		{"I wasn't mentioned at all", model.ClaimMentionDenial},
		{"I was not mentioned here", model.ClaimMentionDenial},
		{"no one mentioned me", model.ClaimMentionDenial},
		{"didn't see any mention of this", model.ClaimMentionDenial},
		{"there are 3 votes total", model.ClaimVoteCount},
		{"the count is 5", model.ClaimVoteCount},
		{"4 people voted", model.ClaimVoteCount},
		{"2 participants voted", model.ClaimVoteCount},
		{"I was here the whole time", model.ClaimPresence},
		{"I already responded to that", model.ClaimResponse},
		{"nobody replied to my question", model.ClaimResponse},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			messages := []model.Message{{ID: 0, Participant: "A", Content: tt.content}}
			claims := Claims(messages)
			if len(claims) == 0 {
				t.Fatalf("expected a claim for %q", tt.content)
			}
			if claims[0].Category != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, claims[0].Category)
			}
			if !strings.HasPrefix(claims[0].Note, "Type: "+string(tt.category)) {
				t.Errorf("note must carry the category: %q", claims[0].Note)
			}
		})
	}
}

func TestClaims_Attribution(t *testing.T) {
	messages := []model.Message{
		{ID: 0, Participant: "A", Content: "all good"},
		{ID: 1, Participant: "B", Content: "I wasn't mentioned"},
	}

	claims := Claims(messages)
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	if claims[0].Claimant != "B" || claims[0].MessageID != 1 {
		t.Errorf("expected claimant B at message 1, got %s at %d", claims[0].Claimant, claims[0].MessageID)
	}
	if claims[0].Verified != nil {
		t.Error("extraction must leave Verified unset; verification sets it")
	}
}

func TestClaims_OverlapCountedOnce(t *testing.T) {
	// A stretch of text matched by one pattern must not be re-reported by
	// a later overlapping pattern.
	messages := []model.Message{
		{ID: 0, Participant: "A", Content: "I wasn't mentioned"},
	}

	claims := Claims(messages)
	if len(claims) != 1 {
		t.Errorf("expected 1 claim, got %d: %+v", len(claims), claims)
	}
}

func TestClaims_MultipleDistinct(t *testing.T) {
	messages := []model.Message{
		{ID: 0, Participant: "A", Content: "I wasn't mentioned, and there are 3 votes total"},
	}

	claims := Claims(messages)
	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d: %+v", len(claims), claims)
	}
}

func TestClaims_None(t *testing.T) {
	messages := []model.Message{{ID: 0, Participant: "A", Content: "plain statement"}}
	if claims := Claims(messages); len(claims) != 0 {
		t.Errorf("expected no claims, got %+v", claims)
	}
}
