package model

// UnknownParticipant is the sentinel speaker assigned when segmentation
// cannot attribute a paragraph to anyone.
const UnknownParticipant = "UNKNOWN"

// CharsPerToken is the rough average used for token estimation (~4 chars per token).
const CharsPerToken = 4

// Message is a single attributed utterance in a conversation. The ordered
// message sequence is the canonical timeline basis; every other entity
// references a message by ID, never by content.
type Message struct {
	ID          int    `json:"id"`                  // 0-based, assigned in encounter order
	Participant string `json:"participant"`         // uppercase identifier, or UnknownParticipant
	Content     string `json:"content"`             // trimmed segment content
	Timestamp   string `json:"timestamp,omitempty"` // best-effort extracted display text
	Raw         string `json:"raw"`                 // original text of the segment
}
