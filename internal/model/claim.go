package model

// ClaimCategory tags the kind of assertion a claim makes. The category
// decides which verifier, if any, applies.
type ClaimCategory string

const (
	ClaimMentionDenial ClaimCategory = "mention_denial" // "I was never mentioned"
	ClaimVoteCount     ClaimCategory = "vote_count"     // "there are N votes"
	ClaimPresence      ClaimCategory = "presence_claim" // "I was here the whole time"
	ClaimResponse      ClaimCategory = "response_claim" // "I already replied"
)

// Claim is a participant's self-referential assertion subject to
// fact-checking against the extracted record.
type Claim struct {
	Claimant  string        `json:"claimant"`
	Text      string        `json:"claim_text"`
	Timestamp string        `json:"timestamp"`
	MessageID int           `json:"message_id"`
	Category  ClaimCategory `json:"category"`
	Verified  *bool         `json:"verified"`          // nil until (and unless) a verifier runs
	Note      string        `json:"verification_note"` // category tag plus verification outcome
}

// Severity grades how serious a contradiction is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Contradiction is a detected mismatch between a claim and the facts
// derivable from the extracted mentions and votes. It always derives from
// exactly one claim, referenced by index into the claims list.
type Contradiction struct {
	ClaimID  int           `json:"claim_id"` // index into GroupReport.Claims
	Fact     string        `json:"fact_description"`
	Type     ClaimCategory `json:"type"`
	Severity Severity      `json:"severity"`
	Evidence string        `json:"evidence"`
}
