package report

import (
	"fmt"
	"image/color"
	"log/slog"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PlotDesign saves a scatter plot of the first two parameters of a design.
// Single parameter designs are plotted against the sample index. The image
// format follows the extension of path.
func PlotDesign(path string,
	title string,
	names []string,
	samples *mat.Dense,
	log *slog.Logger) error {
	rows, cols := samples.Dims()
	if len(names) != cols {
		return fmt.Errorf("%d parameter names for %d columns", len(names), cols)
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Color = color.RGBA{B: 255, A: 255}

	points := make(plotter.XYs, rows)
	if cols == 1 {
		p.X.Label.Text = "Sample"
		p.Y.Label.Text = names[0]
		for i := range points {
			points[i].X = float64(i)
			points[i].Y = samples.At(i, 0)
		}
	} else {
		p.X.Label.Text = names[0]
		p.Y.Label.Text = names[1]
		for i := range points {
			points[i].X = samples.At(i, 0)
			points[i].Y = samples.At(i, 1)
		}
	}
	p.Add(plotter.NewGrid())

	scatter, scatterErr := plotter.NewScatter(points)
	if scatterErr != nil {
		return scatterErr
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(3)
	scatter.GlyphStyle.Color = color.RGBA{R: 255, G: 144, A: 255}
	p.Add(scatter)

	log.Debug("Plotting design", "path", path, "samples", rows, "parameters", cols)
	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}
