package model

import (
	"sort"
	"strings"

	catmodel "awards-backend/internal/domains/category/model"
)

// Ballot is the lookup table category id -> valid nominee ids for the
// votable (non-TBD) categories of one snapshot.
type Ballot struct {
	nominees map[string]map[string]struct{}
}

func NewBallot(snapshot *catmodel.Snapshot) *Ballot {
	b := &Ballot{nominees: make(map[string]map[string]struct{})}
	if snapshot == nil {
		return b
	}
	for _, c := range snapshot.Votable() {
		set := make(map[string]struct{}, len(c.Nominees))
		for _, n := range c.Nominees {
			if n.CategoryID == c.ID {
				set[n.ID] = struct{}{}
			}
		}
		b.nominees[c.ID] = set
	}
	return b
}

// Accepts reports whether the category takes votes on this ballot
func (b *Ballot) Accepts(categoryID string) bool {
	_, ok := b.nominees[categoryID]
	return ok
}

// Normalize drops keys that are not votable categories and blank values,
// then checks every remaining nominee belongs to its category.
func (b *Ballot) Normalize(submitted map[string]string) (Selections, error) {
	out := make(Selections, len(submitted))
	for categoryID, nomineeID := range submitted {
		if !b.Accepts(categoryID) {
			continue
		}
		nomineeID = strings.TrimSpace(nomineeID)
		if nomineeID == "" {
			continue
		}
		out[categoryID] = nomineeID
	}

	// sorted so the reported error is deterministic
	keys := make([]string, 0, len(out))
	for k := range out {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, categoryID := range keys {
		if _, ok := b.nominees[categoryID][out[categoryID]]; !ok {
			return nil, UnknownNomineeError{CategoryID: categoryID, NomineeID: out[categoryID]}
		}
	}

	if len(out) == 0 {
		return nil, NoSelectionError{}
	}
	return out, nil
}
