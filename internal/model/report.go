package model

// EventType classifies a timeline event.
type EventType string

const (
	EventMention EventType = "mention"
	EventVote    EventType = "vote"
	EventClaim   EventType = "claim"
)

// TimelineEvent is one entry in the merged, significance-ranked event
// sequence. Ordering is by MessageID only; Timestamp is display text and
// may be missing or non-monotonic.
type TimelineEvent struct {
	Timestamp   string    `json:"timestamp"`
	MessageID   int       `json:"message_id"`
	Type        EventType `json:"type"`
	Participant string    `json:"participant"`
	Summary     string    `json:"summary"`
	Importance  int       `json:"importance"` // 1-5 scale, used for display truncation
}

// ParticipantContext projects the extracted structures onto one
// participant: index lists into the mention/vote/claim collections plus
// participation stats. Recomputed on every analysis run.
type ParticipantContext struct {
	Name               string `json:"participant"`
	MentionsReceived   []int  `json:"mentions_received"`
	MentionsMade       []int  `json:"mentions_made"`
	VotesCast          []int  `json:"votes_cast"`
	ClaimsMade         []int  `json:"claims_made"`
	ParticipationCount int    `json:"participation_count"`
	FirstMessage       int    `json:"first_message"` // -1 when the participant never spoke
	LastMessage        int    `json:"last_message"`  // -1 when the participant never spoke
}

// GroupReport is the complete result of one group-conversation analysis.
// It is immutable once produced: a pure function of the input text and the
// optional participant/focus hints.
type GroupReport struct {
	OriginalSize          int     `json:"original_size"`
	CompressedSize        int     `json:"compressed_size"`
	CompressionRatio      float64 `json:"compression_ratio"`
	EstimatedTokenSavings int     `json:"estimated_token_savings"`

	TotalMessages      int `json:"total_messages"`
	UniqueParticipants int `json:"unique_participants"`

	// Coordination structures reconstructed from the text.
	MentionGraph map[string]map[string]int `json:"mention_graph"` // mentioner -> mentioned -> count
	Votes        map[string]map[string]int `json:"votes"`         // topic -> choice -> count
	VoteDetails  []Vote                    `json:"vote_details"`

	Claims         []Claim         `json:"claims"`
	Contradictions []Contradiction `json:"contradictions"`

	Timeline []TimelineEvent `json:"timeline"`

	ParticipantContexts map[string]ParticipantContext `json:"participant_contexts"`

	CompressedText string `json:"compressed_text"`
	Summary        string `json:"summary"`

	// Digest is optional LLM-written prose, generated after the analysis.
	// It never feeds back into any of the structures above.
	Digest *Digest `json:"llm,omitempty"`
}

// Digest is an optional LLM-generated prose digest of a GroupReport.
type Digest struct {
	Enabled  bool     `json:"enabled"`
	Provider string   `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`
	Text     string   `json:"text,omitempty"`
	Warnings []string `json:"warnings,omitempty"` // e.g. participants named outside the roster
}

// CompressionResult describes a single-document compression operation.
type CompressionResult struct {
	OriginalSize          int     `json:"original_size"`
	CompressedSize        int     `json:"compressed_size"`
	CompressionRatio      float64 `json:"compression_ratio"`
	EstimatedTokenSavings int     `json:"estimated_token_savings"`
	Method                string  `json:"method"`
	Preview               string  `json:"preview"`
}
