package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	catmodel "awards-backend/internal/domains/category/model"
	"awards-backend/internal/domains/vote/model"
)

var hundred = decimal.NewFromInt(100)

// buildTally lays the stored counts over the snapshot so every votable
// nominee appears, including those with no votes. Counts for categories
// or nominees removed since voting are kept and listed after the rest.
func buildTally(snapshot *catmodel.Snapshot, rows []model.TallyRow, totalBallots int, now time.Time) *model.Tally {
	counts := make(map[string]map[string]int)
	for _, row := range rows {
		if counts[row.CategoryID] == nil {
			counts[row.CategoryID] = make(map[string]int)
		}
		counts[row.CategoryID][row.NomineeID] += row.Votes
	}

	tally := &model.Tally{
		TotalBallots: totalBallots,
		Categories:   make([]model.CategoryTally, 0, len(snapshot.Categories)),
		GeneratedAt:  now,
	}
	known := make(map[string]bool)
	names := snapshot.NomineeNames()

	for _, c := range snapshot.Votable() {
		known[c.ID] = true
		perNominee := counts[c.ID]

		ct := model.CategoryTally{CategoryID: c.ID, Title: c.Title}
		listed := make(map[string]bool, len(c.Nominees))
		for _, n := range c.Nominees {
			listed[n.ID] = true
			ct.Nominees = append(ct.Nominees, model.NomineeTally{NomineeID: n.ID, NomineeName: n.Name, Votes: perNominee[n.ID]})
		}
		for nomineeID, v := range perNominee {
			if !listed[nomineeID] {
				ct.Nominees = append(ct.Nominees, model.NomineeTally{NomineeID: nomineeID, NomineeName: displayName(names, nomineeID), Votes: v})
			}
		}
		tally.Categories = append(tally.Categories, finishCategory(ct))
	}

	orphans := make([]string, 0)
	for categoryID := range counts {
		if !known[categoryID] {
			orphans = append(orphans, categoryID)
		}
	}
	sort.Strings(orphans)
	for _, categoryID := range orphans {
		ct := model.CategoryTally{CategoryID: categoryID, Title: categoryID}
		for nomineeID, v := range counts[categoryID] {
			ct.Nominees = append(ct.Nominees, model.NomineeTally{NomineeID: nomineeID, NomineeName: displayName(names, nomineeID), Votes: v})
		}
		tally.Categories = append(tally.Categories, finishCategory(ct))
	}

	return tally
}

// finishCategory totals, computes shares and orders nominees by votes
func finishCategory(ct model.CategoryTally) model.CategoryTally {
	if ct.Nominees == nil {
		ct.Nominees = []model.NomineeTally{}
	}
	for _, n := range ct.Nominees {
		ct.TotalVotes += n.Votes
	}
	for i := range ct.Nominees {
		ct.Nominees[i].Share = share(ct.Nominees[i].Votes, ct.TotalVotes)
	}
	sort.SliceStable(ct.Nominees, func(i, j int) bool {
		if ct.Nominees[i].Votes != ct.Nominees[j].Votes {
			return ct.Nominees[i].Votes > ct.Nominees[j].Votes
		}
		return ct.Nominees[i].NomineeName < ct.Nominees[j].NomineeName
	})
	return ct
}

// share is votes/total as a percentage with two decimal places
func share(votes, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(votes)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
}
