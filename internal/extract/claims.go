package extract

import (
	"regexp"

	"github.com/dkoval/ctxpress/internal/model"
)

type claimPattern struct {
	re       *regexp.Regexp
	category model.ClaimCategory
}

// Claim phrasings paired with their category, tried in order per message.
// Only mention_denial and vote_count have verifiers; presence and response
// claims are recorded but stay unverified.
var claimPatterns = []claimPattern{
	{regexp.MustCompile(`(?i)(?:i\s+)?(?:wasn't|was not|never was|have not been|haven't been)\s+@?mentioned`), model.ClaimMentionDenial},
	{regexp.MustCompile(`(?i)no\s+one\s+(?:@?mentioned|tagged)\s+me`), model.ClaimMentionDenial},
	{regexp.MustCompile(`(?i)didn't\s+see\s+(?:any\s+)?@?mention`), model.ClaimMentionDenial},

	{regexp.MustCompile(`(?i)(?:there\s+(?:are|were)\s+)?(\d+)\s+votes?\s+(?:for|total)`), model.ClaimVoteCount},
	{regexp.MustCompile(`(?i)(?:the\s+)?count\s+is\s+(\d+)`), model.ClaimVoteCount},
	{regexp.MustCompile(`(?i)(\d+)\s+(?:people|agents?|participants?)\s+voted`), model.ClaimVoteCount},

	{regexp.MustCompile(`(?i)(?:i\s+)?(?:was|wasn't|have been|haven't been)\s+(?:here|present|active)`), model.ClaimPresence},

	{regexp.MustCompile(`(?i)(?:i\s+)?(?:already|have)\s+(?:responded|replied|answered)`), model.ClaimResponse},
	{regexp.MustCompile(`(?i)(?:no\s+one|nobody)\s+(?:responded|replied|answered)`), model.ClaimResponse},
}

// Claims finds self-referential assertions that the verifier can later
// check against the extracted record. The category rides along both as a
// field and as the "Type: ..." prefix of the verification note.
func Claims(messages []model.Message) []model.Claim {
	var claims []model.Claim
	for _, msg := range messages {
		var spans [][2]int
		for _, cp := range claimPatterns {
			for _, loc := range cp.re.FindAllStringIndex(msg.Content, -1) {
				if overlaps(spans, loc[0], loc[1]) {
					continue
				}
				spans = append(spans, [2]int{loc[0], loc[1]})

				claims = append(claims, model.Claim{
					Claimant:  msg.Participant,
					Text:      msg.Content[loc[0]:loc[1]],
					Timestamp: orUnknown(msg.Timestamp),
					MessageID: msg.ID,
					Category:  cp.category,
					Note:      "Type: " + string(cp.category),
				})
			}
		}
	}
	return claims
}
