package analyze

import (
	"strings"

	"github.com/dkoval/ctxpress/internal/model"
)

// buildContexts projects the extracted structures onto each known
// participant: index lists into the mention/vote/claim collections plus
// message counts and the first/last message ids (-1 when the participant
// never spoke).
func buildContexts(
	messages []model.Message,
	mentions []model.Mention,
	votes []model.Vote,
	claims []model.Claim,
	participants []string,
) map[string]model.ParticipantContext {
	contexts := make(map[string]model.ParticipantContext, len(participants))

	for _, name := range participants {
		ctx := model.ParticipantContext{
			Name:         name,
			FirstMessage: -1,
			LastMessage:  -1,
		}

		for i, m := range mentions {
			if strings.EqualFold(m.Mentioned, name) {
				ctx.MentionsReceived = append(ctx.MentionsReceived, i)
			}
			if strings.EqualFold(m.Mentioner, name) {
				ctx.MentionsMade = append(ctx.MentionsMade, i)
			}
		}
		for i, v := range votes {
			if strings.EqualFold(v.Voter, name) {
				ctx.VotesCast = append(ctx.VotesCast, i)
			}
		}
		for i, c := range claims {
			if strings.EqualFold(c.Claimant, name) {
				ctx.ClaimsMade = append(ctx.ClaimsMade, i)
			}
		}

		for _, msg := range messages {
			if !strings.EqualFold(msg.Participant, name) {
				continue
			}
			ctx.ParticipationCount++
			if ctx.FirstMessage == -1 {
				ctx.FirstMessage = msg.ID
			}
			ctx.LastMessage = msg.ID
		}

		contexts[name] = ctx
	}
	return contexts
}
