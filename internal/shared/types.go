package shared

import "time"

// Task types
const (
	TypeSendVoteConfirmation = "email:vote_confirmation"
	TypeSendNominationAck    = "email:nomination_ack"
	TypeRefreshTally         = "vote:refresh_tally"
)

// Queues, highest priority first
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// SelectionLine is a human-readable ballot entry for emails
type SelectionLine struct {
	Category string `json:"category"`
	Nominee  string `json:"nominee"`
}

// VoteConfirmationPayload is sent after a ballot is recorded under the email scheme
type VoteConfirmationPayload struct {
	VoteID      string          `json:"voteId"`
	Email       string          `json:"email"`
	Selections  []SelectionLine `json:"selections"`
	SubmittedAt time.Time       `json:"submittedAt"`
}

// NominationAckPayload thanks a nominator for their submission
type NominationAckPayload struct {
	NominationID   string `json:"nominationId"`
	NominatorName  string `json:"nominatorName"`
	NominatorEmail string `json:"nominatorEmail"`
	NomineeName    string `json:"nomineeName"`
	CategoryTitle  string `json:"categoryTitle"`
}

// RefreshTallyPayload is the scheduled tally cache warm-up
type RefreshTallyPayload struct {
	RequestedAt time.Time `json:"requestedAt"`
}
