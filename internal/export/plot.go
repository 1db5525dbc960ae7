package export

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mkumar097/MonteCarloProject/internal/analysis"
)

// ErrUnsupportedFormat is returned for image paths other than .png and .svg.
var ErrUnsupportedFormat = errors.New("export: unsupported image format")

var (
	energyColor = color.RGBA{R: 0x4c, G: 0x9a, B: 0xff, A: 0xff}
	meanColor   = color.RGBA{R: 0xff, G: 0x8c, B: 0x00, A: 0xff}
)

type PlotOptions struct {
	Title string
	// Equilibration marks the start of the running-mean curve.
	Equilibration int
	Width         vg.Length
	Height        vg.Length
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{
		Title:  "Reduced energy per particle",
		Width:  8 * vg.Inch,
		Height: 4 * vg.Inch,
	}
}

// PlotTrajectory renders the energy trajectory and its running mean after
// equilibration to path. The format follows the extension.
func PlotTrajectory(path string, trajectory []float64, opts PlotOptions) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".svg":
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if len(trajectory) == 0 {
		return fmt.Errorf("export: empty trajectory")
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "step"
	p.Y.Label.Text = "E / N"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(stepXYs(trajectory, 0))
	if err != nil {
		return err
	}
	line.Color = energyColor
	line.Width = vg.Points(0.5)
	p.Add(line)
	p.Legend.Add("energy", line)

	if mean := analysis.CumulativeMean(trajectory, opts.Equilibration); len(mean) > 0 {
		meanLine, err := plotter.NewLine(stepXYs(mean, opts.Equilibration))
		if err != nil {
			return err
		}
		meanLine.Color = meanColor
		meanLine.Width = vg.Points(1.5)
		p.Add(meanLine)
		p.Legend.Add("running mean", meanLine)
	}
	p.Legend.Top = true

	return p.Save(opts.Width, opts.Height, path)
}

func stepXYs(values []float64, offset int) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i + offset)
		pts[i].Y = v
	}
	return pts
}
