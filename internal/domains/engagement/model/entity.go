package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	catmodel "awards-backend/internal/domains/category/model"
)

type Comment struct {
	ID            uuid.UUID `json:"id"`
	NomineeID     string    `json:"nominee_id"`
	VoterIdentity string    `json:"-"`
	Author        string    `json:"author"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
}

type LikeResult struct {
	NomineeID string `json:"nominee_id"`
	Likes     int    `json:"likes"`
}

// NomineeDetail is the public nominee page
type NomineeDetail struct {
	catmodel.Nominee
	Likes    int       `json:"likes"`
	Comments []Comment `json:"comments"`
}

// MaskIdentity hides most of an identity for public display:
// "ann.lee@example.com" -> "a******@example.com", "user-1234" -> "us*******".
func MaskIdentity(identity string) string {
	if identity == "" {
		return "anonymous"
	}
	if at := strings.LastIndex(identity, "@"); at > 0 {
		local := []rune(identity[:at])
		return string(local[0]) + strings.Repeat("*", len(local)-1) + identity[at:]
	}
	r := []rune(identity)
	keep := 2
	if len(r) <= keep {
		return strings.Repeat("*", len(r))
	}
	return string(r[:keep]) + strings.Repeat("*", len(r)-keep)
}
