package llm

import (
	"context"
	"fmt"

	"github.com/dkoval/ctxpress/internal/model"
)

// Digester runs a provider over an analysis report and applies the roster
// check. A handle in the output that is not in the roster does not fail the
// digest; it is surfaced as a warning on the result.
type Digester struct {
	provider Provider
}

// NewDigester wraps a provider. The provider must be non-nil.
func NewDigester(provider Provider) *Digester {
	return &Digester{provider: provider}
}

// Digest generates a digest of the report. The roster is the participant
// set from the analysis; it bounds what the model may reference.
func (d *Digester) Digest(ctx context.Context, report *model.GroupReport, roster []string) (*model.Digest, error) {
	resp, err := d.provider.Digest(ctx, DigestRequest{
		Report: report,
		Roster: roster,
	})
	if err != nil {
		return nil, fmt.Errorf("generate digest: %w", err)
	}

	digest := &model.Digest{
		Enabled:  true,
		Provider: d.provider.Name(),
		Model:    resp.Model,
		Text:     resp.Text,
	}
	for _, handle := range resp.NamedParticipants {
		if !contains(roster, handle) {
			digest.Warnings = append(digest.Warnings,
				fmt.Sprintf("digest references unknown participant @%s", handle))
		}
	}
	return digest, nil
}
