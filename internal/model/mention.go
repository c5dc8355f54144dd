package model

// Mention is a textual reference from one participant to another via an
// @IDENTIFIER token.
type Mention struct {
	Mentioner    string `json:"mentioner"`    // who made the mention
	Mentioned    string `json:"mentioned"`    // who was mentioned (uppercase)
	Timestamp    string `json:"timestamp"`    // when, or "unknown"
	MessageID    int    `json:"message_id"`   // message the mention appears in
	Context      string `json:"context"`      // surrounding text, clipped
	Acknowledged bool   `json:"acknowledged"` // did the mentioned participant reply soon after
}

// Vote is one expression of preference captured from a message.
type Vote struct {
	Voter     string `json:"voter"`
	Choice    string `json:"choice"` // normalized title case, capped length
	Timestamp string `json:"timestamp"`
	MessageID int    `json:"message_id"`
	RawText   string `json:"raw_text"` // original matched statement
}
