package report

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/racesim/internal/sim"
	"github.com/san-kum/racesim/internal/stage"
)

// Series is one vehicle's position curve for a stage.
type Series struct {
	Name      string
	Times     []float64
	Positions []float64
}

// StageSeries collects the curves of every vehicle that ran stage id.
func StageSeries(result *sim.Result, id stage.ID) []Series {
	series := make([]Series, 0, len(result.Vehicles))
	for _, v := range result.Vehicles {
		out := v.Outcome(id)
		if out == nil {
			continue
		}
		series = append(series, Series{
			Name:      v.Vehicle.Name(),
			Times:     out.Curve.Times,
			Positions: out.Curve.Positions,
		})
	}
	return series
}

// resample pads every series with NaN to the longest one and picks width
// evenly spaced columns. Gaps render as blanks.
func resample(series []Series, width int) [][]float64 {
	n := 0
	for _, s := range series {
		n = max(n, len(s.Positions))
	}
	if width <= 0 || width > n {
		width = n
	}

	data := make([][]float64, len(series))
	for k, s := range series {
		row := make([]float64, width)
		for i := range row {
			j := i
			if width > 1 {
				j = int(math.Round(float64(i) * float64(n-1) / float64(width-1)))
			}
			if j < len(s.Positions) {
				row[i] = s.Positions[j]
			} else {
				row[i] = math.NaN()
			}
		}
		data[k] = row
	}
	return data
}

// StageChart plots position against time for one stage, one line per
// vehicle.
func StageChart(result *sim.Result, id stage.ID, width, height int) string {
	series := StageSeries(result, id)
	title := Title.Render(fmt.Sprintf("Stage %s: %s", id, id.Title()))
	if len(series) == 0 {
		return Panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, Subtle.Render("no vehicle reached this stage")))
	}

	span := 0.0
	names := make([]string, len(series))
	colors := make([]asciigraph.AnsiColor, len(series))
	for i, s := range series {
		names[i] = s.Name
		colors[i] = seriesColors[i%len(seriesColors)]
		if len(s.Times) > 0 {
			span = math.Max(span, s.Times[len(s.Times)-1])
		}
	}

	graph := asciigraph.PlotMany(resample(series, width),
		asciigraph.Height(height),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(names...),
		asciigraph.Caption(fmt.Sprintf("position (m) vs time (s), 0 to %.2f s", span)),
	)

	return Panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

// ChartGrid lays the four stage charts out two by two.
func ChartGrid(result *sim.Result, width, height int) string {
	charts := make([]string, len(stage.All))
	for i, id := range stage.All {
		charts[i] = StageChart(result, id, width, height)
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, charts[0], charts[1])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, charts[2], charts[3])
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}
