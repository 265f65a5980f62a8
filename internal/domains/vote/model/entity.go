package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Selections maps category id to nominee id
type Selections map[string]string

// Vote is immutable once recorded
type Vote struct {
	ID             uuid.UUID  `json:"id"`
	VoterIdentity  string     `json:"voter_identity"`
	IdentityScheme string     `json:"identity_scheme"`
	Selections     Selections `json:"selections"`
	CreatedAt      time.Time  `json:"created_at"`
}

// VoteCursor marks a position in the newest-first (created_at, id) ordering
type VoteCursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// CursorOf returns the cursor just past v
func CursorOf(v Vote) *VoteCursor {
	return &VoteCursor{CreatedAt: v.CreatedAt, ID: v.ID}
}

// TallyRow is one (category, nominee) aggregate straight from storage
type TallyRow struct {
	CategoryID string
	NomineeID  string
	Votes      int
}

type NomineeTally struct {
	NomineeID   string          `json:"nominee_id"`
	NomineeName string          `json:"nominee_name"`
	Votes       int             `json:"votes"`
	Share       decimal.Decimal `json:"share"`
}

type CategoryTally struct {
	CategoryID string         `json:"category_id"`
	Title      string         `json:"title"`
	TotalVotes int            `json:"total_votes"`
	Nominees   []NomineeTally `json:"nominees"`
}

// Tally is the per-category results view. It holds counts only, no voter identities.
type Tally struct {
	TotalBallots int             `json:"total_ballots"`
	Categories   []CategoryTally `json:"categories"`
	GeneratedAt  time.Time       `json:"generated_at"`
}
