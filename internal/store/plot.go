package store

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/fieldtrace/internal/flow"
	"github.com/san-kum/fieldtrace/internal/trace"
)

// PlotPNG renders the trajectory in the problem's declared section axes.
func PlotPNG(path, title string, info flow.PlotInfo, result *trace.Result) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = info.XLabel
	p.Y.Label.Text = info.YLabel

	pts := make(plotter.XYs, len(result.States))
	for i, s := range result.States {
		pts[i].X = s[info.XIndex]
		pts[i].Y = s[info.YIndex]
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.Radius = vg.Points(0.8)
	p.Add(scatter)

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
