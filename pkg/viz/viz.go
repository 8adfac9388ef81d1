// Package viz renders the analysis figures as PNG files using gonum/plot.
package viz

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/biagzi/week1-blog/pkg/stats"
)

// Histogram saves a histogram of the values.
func Histogram(values []float64, title, xlabel, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(plotter.Values(values), 16)
	if err != nil {
		return errors.Wrap(err, "viz: histogram")
	}
	h.FillColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	p.Add(h)

	return errors.Wrapf(p.Save(4*vg.Inch, 3*vg.Inch, filename), "viz: saving %s", filename)
}

// Density saves the posterior density of one parameter as a normalized
// histogram line with the 95% credible interval bounds marked.
func Density(draws []float64, title, xlabel, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Density"

	h, err := plotter.NewHist(plotter.Values(draws), 30)
	if err != nil {
		return errors.Wrap(err, "viz: density")
	}
	h.Normalize(1)
	h.FillColor = color.RGBA{R: 188, G: 210, B: 232, A: 255}
	p.Add(h)

	ymax := 0.0
	for _, b := range h.Bins {
		if w := b.Max - b.Min; w > 0 && b.Weight/w > ymax {
			ymax = b.Weight / w
		}
	}
	for _, q := range []float64{0.025, 0.975} {
		bound := stats.Quantile(draws, q)
		ln, err := plotter.NewLine(plotter.XYs{{X: bound, Y: 0}, {X: bound, Y: ymax}})
		if err != nil {
			return errors.Wrap(err, "viz: interval bound")
		}
		ln.Color = color.RGBA{R: 178, G: 34, B: 34, A: 255}
		ln.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(ln)
	}

	return errors.Wrapf(p.Save(4*vg.Inch, 3*vg.Inch, filename), "viz: saving %s", filename)
}

// Trace saves per-chain trace lines for one parameter, one colored line per
// chain. Well-mixed chains overlap into a single fuzzy band.
func Trace(perChain [][]float64, title, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Value"

	// plotutil cycles its default colors, one line per chain.
	lineArgs := make([]interface{}, 0, len(perChain))
	for _, chain := range perChain {
		pts := make(plotter.XYs, len(chain))
		for i, v := range chain {
			pts[i].X = float64(i)
			pts[i].Y = v
		}
		lineArgs = append(lineArgs, pts)
	}
	if err := plotutil.AddLines(p, lineArgs...); err != nil {
		return errors.Wrap(err, "viz: trace lines")
	}

	return errors.Wrapf(p.Save(5*vg.Inch, 3*vg.Inch, filename), "viz: saving %s", filename)
}

// PredictiveOverlay saves the observed response density with a sample of
// simulated replicate densities behind it.
func PredictiveOverlay(observed []float64, simulated [][]float64, title, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Response"
	p.Y.Label.Text = "Density"

	lo, hi := stats.MinMax(observed)
	for _, sim := range simulated {
		l, h := stats.MinMax(sim)
		if l < lo {
			lo = l
		}
		if h > hi {
			hi = h
		}
	}

	const bins = 24
	maxOverlays := 30
	if len(simulated) < maxOverlays {
		maxOverlays = len(simulated)
	}
	for _, sim := range simulated[:maxOverlays] {
		ln, err := plotter.NewLine(binDensity(sim, lo, hi, bins))
		if err != nil {
			return errors.Wrap(err, "viz: replicate line")
		}
		ln.Color = color.RGBA{R: 135, G: 206, B: 250, A: 90}
		p.Add(ln)
	}

	obs, err := plotter.NewLine(binDensity(observed, lo, hi, bins))
	if err != nil {
		return errors.Wrap(err, "viz: observed line")
	}
	obs.Color = color.RGBA{R: 25, G: 25, B: 112, A: 255}
	obs.Width = vg.Points(2)
	p.Add(obs)

	return errors.Wrapf(p.Save(5*vg.Inch, 3*vg.Inch, filename), "viz: saving %s", filename)
}

// binDensity bins values on a shared grid so replicate curves are
// comparable, returning bin-center points of the normalized counts.
func binDensity(values []float64, lo, hi float64, bins int) plotter.XYs {
	width := (hi - lo) / float64(bins)
	if width == 0 {
		width = 1
	}
	counts := make([]float64, bins)
	for _, v := range values {
		b := int((v - lo) / width)
		if b < 0 {
			b = 0
		}
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}
	norm := float64(len(values)) * width
	pts := make(plotter.XYs, bins)
	for b := range counts {
		pts[b].X = lo + (float64(b)+0.5)*width
		pts[b].Y = counts[b] / norm
	}
	return pts
}
