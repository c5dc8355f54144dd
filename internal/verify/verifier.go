// Package verify checks extracted claims against the facts already
// computed from the conversation and reports contradictions.
package verify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dkoval/ctxpress/internal/model"
)

// Verify runs the category verifiers over claims and returns the
// contradictions found. Claims are updated in place: mention denials always
// get a definite verdict, while vote-count claims only ever produce a
// contradiction and keep Verified unset. Contradictions reference claims
// by index, so the claims slice must stay ordered for the lifetime of the
// report.
func Verify(claims []model.Claim, mentions []model.Mention, tallies map[string]map[string]int) []model.Contradiction {
	var contradictions []model.Contradiction
	for i := range claims {
		switch claims[i].Category {
		case model.ClaimMentionDenial:
			if c := verifyMentionDenial(&claims[i], i, mentions); c != nil {
				contradictions = append(contradictions, *c)
			}
		case model.ClaimVoteCount:
			if c := verifyVoteCount(&claims[i], i, tallies); c != nil {
				contradictions = append(contradictions, *c)
			}
		default:
			// presence_claim and response_claim have no verifier; they
			// remain unverified permanently.
		}
	}
	return contradictions
}

// verifyMentionDenial checks "I was never mentioned" against the mention
// record strictly before the claim's message.
func verifyMentionDenial(claim *model.Claim, id int, mentions []model.Mention) *model.Contradiction {
	mentioned := false
	for _, m := range mentions {
		if strings.EqualFold(m.Mentioned, claim.Claimant) && m.MessageID < claim.MessageID {
			mentioned = true
			break
		}
	}

	if !mentioned {
		claim.Verified = boolPtr(true)
		claim.Note += " [VERIFIED]"
		return nil
	}

	claim.Verified = boolPtr(false)
	claim.Note += " [CONTRADICTION DETECTED]"
	return &model.Contradiction{
		ClaimID:  id,
		Fact:     fmt.Sprintf("%s WAS mentioned before this claim", claim.Claimant),
		Type:     model.ClaimMentionDenial,
		Severity: model.SeverityHigh,
		Evidence: fmt.Sprintf("Found @%s mention(s) in earlier messages", claim.Claimant),
	}
}

var firstIntRe = regexp.MustCompile(`\d+`)

// verifyVoteCount compares the first integer in the claim text against the
// total across all tally buckets. The comparison uses the final total, not
// the tally as of the claim's position, so a count that was right when
// stated can still be flagged. Verified is left unset in every branch.
func verifyVoteCount(claim *model.Claim, id int, tallies map[string]map[string]int) *model.Contradiction {
	lit := firstIntRe.FindString(claim.Text)
	if lit == "" {
		return nil
	}
	claimed, err := strconv.Atoi(lit)
	if err != nil {
		return nil
	}

	total := 0
	for _, choices := range tallies {
		for _, n := range choices {
			total += n
		}
	}

	if claimed == total || total == 0 {
		return nil
	}

	return &model.Contradiction{
		ClaimID:  id,
		Fact:     fmt.Sprintf("Actual vote count: %d, claimed: %d", total, claimed),
		Type:     model.ClaimVoteCount,
		Severity: model.SeverityMedium,
		Evidence: fmt.Sprintf("Vote tally shows %d total votes", total),
	}
}

func boolPtr(b bool) *bool { return &b }
