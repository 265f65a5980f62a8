package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	catmodel "awards-backend/internal/domains/category/model"
	"awards-backend/internal/domains/vote/model"
)

const (
	tallySheet  = "Tally"
	votersSheet = "Voters"
)

// ExportResults builds a workbook with the tally and every ballot
func (s *voteService) ExportResults(ctx context.Context) (*excelize.File, error) {
	// Step 1: Fresh tally
	tally, err := s.RefreshTally(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.categories.Snapshot(ctx)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}

	// Step 2: All ballots, keyset-paged so concurrent inserts cannot shift pages
	votes := make([]model.Vote, 0, tally.TotalBallots)
	var cursor *model.VoteCursor
	for {
		page, err := s.repo.ListBefore(ctx, cursor, s.exportPageSize)
		if err != nil {
			return nil, model.NewStorageUnavailableError(err)
		}
		votes = append(votes, page...)
		if len(page) < s.exportPageSize {
			break
		}
		cursor = model.CursorOf(page[len(page)-1])
	}

	// Step 3: Workbook
	f, err := buildResultsWorkbook(tally, votes, snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, nil
}

func buildResultsWorkbook(tally *model.Tally, votes []model.Vote, snapshot *catmodel.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", tallySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(votersSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	// Tally sheet
	if err := writeRow(f, tallySheet, 1, []interface{}{"Category", "Nominee", "Votes", "Share (%)"}); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(tallySheet, "A1", "D1", headerStyle)

	row := 2
	for _, c := range tally.Categories {
		for _, n := range c.Nominees {
			if err := writeRow(f, tallySheet, row, []interface{}{c.Title, n.NomineeName, n.Votes, n.Share.InexactFloat64()}); err != nil {
				return nil, err
			}
			row++
		}
	}

	// Voters sheet: one column per votable category
	categories := snapshot.Votable()
	header := []interface{}{"Voter", "Scheme", "Submitted At"}
	for _, c := range categories {
		header = append(header, c.Title)
	}
	if err := writeRow(f, votersSheet, 1, header); err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(header), 1)
	_ = f.SetCellStyle(votersSheet, "A1", lastHeader, headerStyle)

	names := snapshot.NomineeNames()
	for i, v := range votes {
		values := []interface{}{v.VoterIdentity, v.IdentityScheme, v.CreatedAt.UTC().Format("2006-01-02 15:04:05")}
		for _, c := range categories {
			nomineeID, ok := v.Selections[c.ID]
			if !ok {
				values = append(values, "")
				continue
			}
			values = append(values, displayName(names, nomineeID))
		}
		if err := writeRow(f, votersSheet, i+2, values); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
