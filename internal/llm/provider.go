// Package llm generates optional natural-language digests of analysis
// reports through pluggable providers. The analysis itself never depends on
// a provider; a digest is a presentation extra.
package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dkoval/ctxpress/internal/model"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Digest generates a narrative digest of the analysis report
	Digest(ctx context.Context, req DigestRequest) (*DigestResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// DigestRequest contains the input for LLM digestion
type DigestRequest struct {
	// Report is the analysis report to digest
	Report *model.GroupReport

	// Roster is the allowlist of participant names the LLM may reference.
	// Names outside this list in the output are flagged as warnings.
	Roster []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// DigestResponse contains the LLM's digest output
type DigestResponse struct {
	// Text is the generated digest
	Text string

	// NamedParticipants are the @handles the LLM actually used
	NamedParticipants []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// BuildPrompt constructs the default digest prompt. The roster doubles as
// an allowlist so the model is told exactly which participants exist.
func BuildPrompt(report *model.GroupReport, roster []string) string {
	prompt := fmt.Sprintf(`You are digesting a multi-party conversation analysis. The analysis records who mentioned whom, what was voted for, and which self-referential claims contradict the record.

RULES:
1. ONLY reference participants from this list:
%s

2. Do not invent participants, votes, or claims beyond the data below.
3. If a claim was contradicted, say so plainly and name the severity.
4. Describe coordination facts, not conversation content you cannot see.

Analysis Summary:
- Messages: %d
- Participants: %d
- Mentions: %d
- Claims: %d
- Contradictions: %d

Vote Tallies:
%s
Contradictions:
%s`,
		joinRoster(roster),
		report.TotalMessages,
		report.UniqueParticipants,
		totalMentions(report.MentionGraph),
		len(report.Claims),
		len(report.Contradictions),
		formatTallies(report.Votes),
		formatContradictions(report),
	)

	prompt += "\nProvide a 3-4 sentence digest of the group's coordination: who drove the conversation, what was decided, and whether anyone's claims were contradicted."
	return prompt
}

// Helper functions

func totalMentions(graph map[string]map[string]int) int {
	total := 0
	for _, targets := range graph {
		for _, n := range targets {
			total += n
		}
	}
	return total
}

func joinRoster(roster []string) string {
	if len(roster) == 0 {
		return "(No participants identified)"
	}
	result := ""
	for i, name := range roster {
		if i >= 20 { // Limit to first 20 to avoid token bloat
			result += fmt.Sprintf("\n... and %d more participants", len(roster)-20)
			break
		}
		result += fmt.Sprintf("\n- @%s", name)
	}
	return result
}

func formatTallies(tallies map[string]map[string]int) string {
	if len(tallies) == 0 {
		return "  (none)\n"
	}
	topics := make([]string, 0, len(tallies))
	for topic := range tallies {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	var b strings.Builder
	for _, topic := range topics {
		choices := tallies[topic]
		names := make([]string, 0, len(choices))
		for choice := range choices {
			names = append(names, choice)
		}
		sort.Strings(names)
		for _, choice := range names {
			fmt.Fprintf(&b, "  %s / %s: %d\n", topic, choice, choices[choice])
		}
	}
	if b.Len() == 0 {
		return "  (none)\n"
	}
	return b.String()
}

func formatContradictions(report *model.GroupReport) string {
	if len(report.Contradictions) == 0 {
		return "  (none)\n"
	}
	var b strings.Builder
	for i, c := range report.Contradictions {
		if i >= 5 {
			fmt.Fprintf(&b, "  ... and %d more\n", len(report.Contradictions)-5)
			break
		}
		fmt.Fprintf(&b, "  [%s] %s: %s\n", c.Severity, c.Type, c.Fact)
	}
	return b.String()
}
