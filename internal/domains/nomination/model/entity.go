package model

import (
	"time"

	"github.com/google/uuid"
)

type Nomination struct {
	ID             uuid.UUID `json:"id"`
	NomineeName    string    `json:"nominee_name"`
	NomineeOrg     string    `json:"nominee_org"`
	CategoryID     string    `json:"category_id"`
	Reason         string    `json:"reason"`
	NominatorName  string    `json:"nominator_name"`
	NominatorEmail string    `json:"nominator_email"`
	CreatedAt      time.Time `json:"created_at"`
}
