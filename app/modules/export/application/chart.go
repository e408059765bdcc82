package exportservice

import (
	"bytes"
	"fmt"

	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette colours the chart.
type Palette struct {
	Background drawing.Color
	Text       drawing.Color
	Lines      []drawing.Color
}

// DefaultPalette is a fairway green theme.
var DefaultPalette = Palette{
	Background: drawing.ColorFromHex("f7f5ef"),
	Text:       drawing.ColorFromHex("1f2d1f"),
	Lines: []drawing.Color{
		drawing.ColorFromHex("2f6b3a"),
		drawing.ColorFromHex("c8963e"),
		drawing.ColorFromHex("3a6ea5"),
		drawing.ColorFromHex("a33b3b"),
	},
}

// CumulativeToPar returns, per hole, the running strokes minus par over the
// holes with a numeric entry. Holes without one carry the previous value.
// The bool is false when no hole has been played.
func CumulativeToPar(pars []int, scores []scorecarddomain.Entry) ([]float64, bool) {
	out := make([]float64, coursedomain.HoleCount)
	running, played := 0, false
	for h := 0; h < coursedomain.HoleCount; h++ {
		if h < len(scores) && h < len(pars) {
			if v, ok := scores[h].Value(); ok {
				running += v - pars[h]
				played = true
			}
		}
		out[h] = float64(running)
	}
	return out, played
}

// RenderChart draws cumulative score against par for every player who has
// played at least one hole.
func RenderChart(card scorecarddomain.Scorecard, palette Palette) ([]byte, error) {
	xValues := make([]float64, coursedomain.HoleCount)
	for h := range xValues {
		xValues[h] = float64(h + 1)
	}

	var (
		series []chart.Series
		lo, hi float64
	)
	for i, p := range card.Players {
		yValues, played := CumulativeToPar(card.Pars, p.Scores)
		if !played {
			continue
		}
		for _, y := range yValues {
			lo, hi = min(lo, y), max(hi, y)
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", p.Index+1)
		}
		color := palette.Lines[i%len(palette.Lines)]
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: xValues,
			YValues: yValues,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotWidth:    3,
				DotColor:    color,
			},
		})
	}

	if len(series) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	graph := chart.Chart{
		Title:  card.Course.Name,
		Width:  800,
		Height: 400,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name:  "Hole",
			Style: chart.Style{FontColor: palette.Text},
			Range: &chart.ContinuousRange{Min: 1, Max: coursedomain.HoleCount},
			ValueFormatter: func(v any) string {
				return fmt.Sprintf("%.0f", v)
			},
		},
		YAxis: chart.YAxis{
			Name:  "To par",
			Style: chart.Style{FontColor: palette.Text},
			// Padded so a level line still has a non-zero range.
			Range: &chart.ContinuousRange{Min: lo - 1, Max: hi + 1},
			ValueFormatter: func(v any) string {
				return fmt.Sprintf("%+.0f", v)
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette Palette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No holes played yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{Style: chart.Style{Hidden: true}},
		YAxis: chart.YAxis{Style: chart.Style{Hidden: true}},
		// The renderer needs at least one visible series with a non-zero range.
		Series: []chart.Series{chart.ContinuousSeries{
			// Zero alpha with non-zero RGB; an all-zero color means "use the default".
			Style: chart.Style{
				StrokeColor: drawing.Color{R: 255, G: 255, B: 255, A: 0},
				DotWidth:    0,
			},
			XValues: []float64{0, 1},
			YValues: []float64{0, 1},
		}},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.Text)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
