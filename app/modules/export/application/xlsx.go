package exportservice

import (
	"fmt"
	"strconv"

	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the exported scorecard.
const SheetName = "Scorecard"

// scorecardRow lays out one row in card order: label, holes 1-9, Out,
// holes 10-18, In, Total.
func scorecardRow(label string, perHole func(hole int) any, totals coursedomain.Totals) []any {
	row := make([]any, 0, coursedomain.HoleCount+4)
	row = append(row, label)
	for h := coursedomain.FrontNine.Start; h < coursedomain.FrontNine.End; h++ {
		row = append(row, perHole(h))
	}
	row = append(row, totals.Front)
	for h := coursedomain.BackNine.Start; h < coursedomain.BackNine.End; h++ {
		row = append(row, perHole(h))
	}
	return append(row, totals.Back, totals.Total)
}

func intAt(values []int) func(int) any {
	return func(h int) any {
		if h < len(values) {
			return values[h]
		}
		return ""
	}
}

// entryAt writes numeric entries as numbers so spreadsheet formulas work on them.
func entryAt(entries []scorecarddomain.Entry) func(int) any {
	return func(h int) any {
		if h >= len(entries) {
			return ""
		}
		if v, ok := entries[h].Value(); ok {
			return v
		}
		return string(entries[h])
	}
}

// RenderXLSX lays the scorecard out as a single worksheet.
func RenderXLSX(card scorecarddomain.Scorecard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := scorecardRow("Hole", func(h int) any { return h + 1 }, coursedomain.Totals{})
	header[coursedomain.NineHoles+1] = "Out"
	header[len(header)-2] = "In"
	header[len(header)-1] = "Total"

	rows := [][]any{
		{card.Course.Name, card.SlotKey},
		header,
		scorecardRow("Yardage", intAt(card.Yardages), card.YardageTotals),
		scorecardRow("Par", intAt(card.Pars), card.ParTotals),
	}
	for _, p := range card.Players {
		label := p.Name
		if label == "" {
			label = "Player " + strconv.Itoa(p.Index+1)
		}
		rows = append(rows, scorecardRow(label, entryAt(p.Scores), p.Totals))
	}
	skinsRow := scorecardRow("Skins", func(h int) any {
		if h < len(card.Skins) {
			return card.Skins[h]
		}
		return ""
	}, coursedomain.Totals{})
	skinsRow[coursedomain.NineHoles+1] = ""
	skinsRow[len(skinsRow)-2] = ""
	skinsRow[len(skinsRow)-1] = ""
	rows = append(rows, skinsRow)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 2, bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", "A", 22); err != nil {
		return nil, fmt.Errorf("failed to size label column: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
