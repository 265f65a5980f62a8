package email

import (
	"fmt"
	"strings"

	"awards-backend/internal/shared"
)

func VoteConfirmationEmail(p shared.VoteConfirmationPayload) EmailRequest {
	var lines strings.Builder
	for _, s := range p.Selections {
		fmt.Fprintf(&lines, "  - %s: %s\n", s.Category, s.Nominee)
	}

	body := fmt.Sprintf(`Hello,

Thank you for voting in the Impact Awards. Your ballot was recorded on %s.

Your selections:
%s
Each email address can vote once, so there is nothing more to do.

Reference: %s
`, p.SubmittedAt.UTC().Format("2 January 2006 15:04 MST"), lines.String(), p.VoteID)

	return EmailRequest{
		To:      []string{p.Email},
		Subject: "Your Impact Awards vote has been recorded",
		Body:    body,
	}
}

func NominationAckEmail(p shared.NominationAckPayload) EmailRequest {
	body := fmt.Sprintf(`Hi %s,

Thank you for nominating %s for %s. Our panel reviews every nomination
before the shortlist is published.

Reference: %s
`, p.NominatorName, p.NomineeName, p.CategoryTitle, p.NominationID)

	return EmailRequest{
		To:      []string{p.NominatorEmail},
		Subject: "We received your nomination",
		Body:    body,
	}
}
