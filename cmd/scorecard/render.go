package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
	"github.com/urfave/cli/v2"
)

func writeJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCard(c *cli.Context, card *scorecarddomain.Scorecard) error {
	if c.Bool("json") {
		return writeJSON(c, card)
	}
	return renderCard(c.App.Writer, card)
}

func renderCourses(w io.Writer, courses []coursedomain.Course) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCITY\tPAR\tYARDS")
	for _, course := range courses {
		s := course.Summarize()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", s.ID, s.Name, s.City, s.Par, s.Yardage)
	}
	return tw.Flush()
}

func renderSlots(w io.Writer, slots []scorecarddomain.Slot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tKEY\tPLAYERS")
	for _, slot := range slots {
		players := "(empty)"
		if slot.Occupied {
			players = strings.Join(slot.Players, ", ")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", slot.Number, slot.Key, players)
	}
	return tw.Flush()
}

// renderCard prints the card as a grid: holes 1-9, Out, holes 10-18, In, Total.
func renderCard(w io.Writer, card *scorecarddomain.Scorecard) error {
	fmt.Fprintf(w, "%s  [%s]\n", card.Course.Name, card.SlotKey)
	if card.SaveWarning != "" {
		fmt.Fprintf(w, "warning: %s\n", card.SaveWarning)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	header := []string{"Hole"}
	for i := range card.Pars {
		header = append(header, strconv.Itoa(i+1))
		if i+1 == coursedomain.NineHoles {
			header = append(header, "Out")
		}
	}
	header = append(header, "In", "Total")
	writeRow(tw, header)

	writeRow(tw, intRow("Yards", card.Yardages, card.YardageTotals))
	writeRow(tw, intRow("Par", card.Pars, card.ParTotals))

	for _, p := range card.Players {
		row := []string{p.Name}
		for i, e := range p.Scores {
			row = append(row, string(e))
			if i+1 == coursedomain.NineHoles {
				row = append(row, strconv.Itoa(p.Totals.Front))
			}
		}
		row = append(row, strconv.Itoa(p.Totals.Back), strconv.Itoa(p.Totals.Total))
		writeRow(tw, row)
	}

	skins := []string{"Skins"}
	for i, s := range card.Skins {
		skins = append(skins, s)
		if i+1 == coursedomain.NineHoles {
			skins = append(skins, "")
		}
	}
	writeRow(tw, skins)
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, p := range card.Players {
		fmt.Fprintf(w, "%s: %d (%s), %d skins\n", p.Name, p.Totals.Total, formatToPar(p.ToPar), p.Skins)
	}
	return nil
}

func intRow(label string, values []int, totals coursedomain.Totals) []string {
	row := []string{label}
	for i, v := range values {
		row = append(row, strconv.Itoa(v))
		if i+1 == coursedomain.NineHoles {
			row = append(row, strconv.Itoa(totals.Front))
		}
	}
	return append(row, strconv.Itoa(totals.Back), strconv.Itoa(totals.Total))
}

func writeRow(w io.Writer, cells []string) {
	fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
}

func formatToPar(n int) string {
	switch {
	case n == 0:
		return "E"
	case n > 0:
		return "+" + strconv.Itoa(n)
	default:
		return strconv.Itoa(n)
	}
}
