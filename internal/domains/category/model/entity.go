package model

import "time"

// Category is an award category. A TBD category is listed but takes no votes.
type Category struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	TBD       bool      `json:"tbd"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Nominee belongs to exactly one category
type Nominee struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Organization string    `json:"organization"`
	Photo        string    `json:"photo"`
	AIHint       string    `json:"ai_hint,omitempty"`
	CategoryID   string    `json:"category_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CategoryWithNominees struct {
	Category
	Nominees []Nominee `json:"nominees"`
}

// Snapshot is the read model served to voters and used to validate ballots
type Snapshot struct {
	Categories []CategoryWithNominees `json:"categories"`
	LoadedAt   time.Time              `json:"loaded_at"`
}

// Votable returns the categories that accept votes
func (s *Snapshot) Votable() []CategoryWithNominees {
	out := make([]CategoryWithNominees, 0, len(s.Categories))
	for _, c := range s.Categories {
		if !c.TBD {
			out = append(out, c)
		}
	}
	return out
}

// FindCategory looks a category up by id
func (s *Snapshot) FindCategory(id string) (*CategoryWithNominees, bool) {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i], true
		}
	}
	return nil, false
}

// NomineeNames maps nominee id to display name across all categories
func (s *Snapshot) NomineeNames() map[string]string {
	names := make(map[string]string)
	for _, c := range s.Categories {
		for _, n := range c.Nominees {
			names[n.ID] = n.Name
		}
	}
	return names
}
