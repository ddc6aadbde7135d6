package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/racesim/internal/sim"
	"github.com/san-kum/racesim/internal/stage"
)

const (
	pngWidth  = 12 * vg.Inch
	pngHeight = 9 * vg.Inch
)

func stagePlot(result *sim.Result, id stage.ID) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Stage %s: %s", id, id.Title())
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "position (m)"
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	lines := make([]interface{}, 0)
	for _, s := range StageSeries(result, id) {
		pts := make(plotter.XYs, len(s.Times))
		for i := range s.Times {
			pts[i].X = s.Times[i]
			pts[i].Y = s.Positions[i]
		}
		lines = append(lines, s.Name, pts)
	}
	if len(lines) > 0 {
		if err := plotutil.AddLines(p, lines...); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// WritePNG renders the four stage plots as a 2x2 grid into a PNG file.
func WritePNG(path string, result *sim.Result) error {
	plots := [][]*plot.Plot{make([]*plot.Plot, 2), make([]*plot.Plot, 2)}
	for i, id := range stage.All {
		p, err := stagePlot(result, id)
		if err != nil {
			return fmt.Errorf("report: stage %s plot: %w", id, err)
		}
		plots[i/2][i%2] = p
	}

	img := vgimg.NewWith(vgimg.UseWH(pngWidth, pngHeight), vgimg.UseDPI(96))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      2,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("report: create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(bw); err != nil {
		return fmt.Errorf("report: write png: %w", err)
	}
	return bw.Flush()
}
