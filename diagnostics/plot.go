package diagnostics

import (
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotOptions controls the rendered figure.
type PlotOptions struct {
	Title  string
	Width  vg.Length
	Height vg.Length

	// Reference curves are drawn as points on top of the sweep.
	Reference []Series
}

// Plot renders s to path. The format follows the file extension (png,
// svg, pdf, ...).
func Plot(s *Sweep, path string, opts PlotOptions) error {
	p, err := NewPlot(s, opts)
	if err != nil {
		return err
	}
	if opts.Width == 0 {
		opts.Width = 6 * vg.Inch
	}
	if opts.Height == 0 {
		opts.Height = 4 * vg.Inch
	}
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("save plot %s: %w", filepath.Base(path), err)
	}
	return nil
}

// NewPlot builds the figure for s without rendering it.
func NewPlot(s *Sweep, opts PlotOptions) (*plot.Plot, error) {
	if len(s.Series) == 0 {
		return nil, fmt.Errorf("sweep %s has no series", s.Family)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("%s %s", s.Material, strings.ReplaceAll(s.Family, "_", " "))
	}
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel
	p.Legend.Top = true
	if s.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{}
	}

	for i, series := range s.Series {
		pts, err := points(series, s.LogX)
		if err != nil {
			return nil, err
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", series.Name, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i / len(plotutil.DefaultColors))
		p.Add(line)
		p.Legend.Add(series.Name, line)
	}

	for i, ref := range opts.Reference {
		pts, err := points(ref, s.LogX)
		if err != nil {
			return nil, err
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("reference %s: %w", ref.Name, err)
		}
		scatter.Color = plotutil.Color(i)
		scatter.Shape = plotutil.Shape(i)
		p.Add(scatter)
		p.Legend.Add(ref.Name, scatter)
	}
	return p, nil
}

// points converts a series, dropping points a log axis cannot show.
func points(s Series, logX bool) (plotter.XYs, error) {
	if len(s.X) != len(s.Y) {
		return nil, fmt.Errorf("series %s: %d x values for %d y values", s.Name, len(s.X), len(s.Y))
	}
	pts := make(plotter.XYs, 0, len(s.X))
	for i := range s.X {
		if logX && s.X[i] <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: s.X[i], Y: s.Y[i]})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("series %s: no plottable points", s.Name)
	}
	return pts, nil
}
