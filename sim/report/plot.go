package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/therapy-sim/therapy-sim/sim"
	"github.com/therapy-sim/therapy-sim/sim/econ"
)

const (
	plotWidth     = 1024
	plotHeight    = 512
	histogramBins = 20
	barWidth      = 24
	barSpacing    = 6
)

var seriesColors = []drawing.Color{chart.ColorBlue, chart.ColorRed, chart.ColorGreen, chart.ColorOrange}

// SurvivalSeries is one labeled survival curve.
type SurvivalSeries struct {
	Name  string
	Curve *sim.SurvivalCurve
}

// stepXY converts curve corners into a polyline that holds each value until
// the next corner.
func stepXY(points []sim.CurvePoint, until float64) (xs, ys []float64) {
	for i, p := range points {
		if i > 0 {
			xs = append(xs, p.Time)
			ys = append(ys, float64(points[i-1].Value))
		}
		xs = append(xs, p.Time)
		ys = append(ys, float64(p.Value))
	}
	if last := points[len(points)-1]; until > last.Time {
		xs = append(xs, until)
		ys = append(ys, float64(last.Value))
	}
	return xs, ys
}

// PlotSurvivalCurves renders the curves as step functions over [0, horizon].
func PlotSurvivalCurves(w io.Writer, horizon float64, curves ...SurvivalSeries) error {
	if len(curves) == 0 {
		return errors.New("no survival curves to plot")
	}
	if horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %f", horizon)
	}
	yMax := 1.0
	series := make([]chart.Series, 0, len(curves))
	for i, c := range curves {
		xs, ys := stepXY(c.Curve.Points(), horizon)
		yMax = math.Max(yMax, float64(c.Curve.Initial()))
		series = append(series, chart.ContinuousSeries{
			Name:    c.Name,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: seriesColors[i%len(seriesColors)], StrokeWidth: 2.0},
		})
	}

	graph := chart.Chart{
		Title:  "Survival curves",
		Width:  plotWidth,
		Height: plotHeight,
		XAxis:  chart.XAxis{Name: "Time (years)", Range: &chart.ContinuousRange{Min: 0, Max: horizon}},
		YAxis:  chart.YAxis{Name: "Patients not infection free", Range: &chart.ContinuousRange{Min: 0, Max: yMax}},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}

// histogram buckets values into at most bins equal-width bins. The last bin
// is closed on the right so the maximum is counted.
func histogram(values []float64, bins int) (edges []float64, counts []int) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if hi == lo {
		return []float64{lo, hi}, []int{len(values)}
	}

	edges = floats.Span(make([]float64, bins+1), lo, hi)
	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	weights := stat.Histogram(nil, dividers, sorted, nil)
	counts = make([]int, len(weights))
	for i, w := range weights {
		counts[i] = int(w)
	}
	return edges, counts
}

// PlotHistogram renders a bar chart of values.
func PlotHistogram(w io.Writer, title string, values []float64, bins int) error {
	if len(values) == 0 {
		return fmt.Errorf("histogram %q: no values", title)
	}
	if bins <= 0 {
		return fmt.Errorf("histogram %q: bins must be positive, got %d", title, bins)
	}
	edges, counts := histogram(values, bins)
	bars := make([]chart.Value, len(counts))
	maxCount := 1
	for i, n := range counts {
		bars[i] = chart.Value{Value: float64(n), Label: fmt.Sprintf("%.0f", edges[i])}
		if n > maxCount {
			maxCount = n
		}
	}

	bc := chart.BarChart{
		Title:      title,
		Width:      len(bars)*(barWidth+barSpacing) + 200,
		Height:     plotHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)}},
		Bars:       bars,
	}
	return bc.Render(chart.PNG, w)
}

// PlotNMB renders the incremental net monetary benefit line and its
// confidence band against willingness-to-pay.
func PlotNMB(w io.Writer, r *econ.CBAResult) error {
	if len(r.Points) < 2 {
		return fmt.Errorf("net monetary benefit plot needs at least 2 WTP values, got %d", len(r.Points))
	}
	wtps := make([]float64, len(r.Points))
	mean := make([]float64, len(r.Points))
	lower := make([]float64, len(r.Points))
	upper := make([]float64, len(r.Points))
	yMin, yMax := 0.0, 0.0
	for i, p := range r.Points {
		wtps[i], mean[i], lower[i], upper[i] = p.WTP, p.Mean, p.Interval.Lower, p.Interval.Upper
		yMin, yMax = math.Min(yMin, p.Interval.Lower), math.Max(yMax, p.Interval.Upper)
	}
	if yMin == yMax {
		yMax = yMin + 1
	}
	band := chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1.0, StrokeDashArray: []float64{5.0, 5.0}}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Incremental NMB of %s vs %s", r.Alt, r.Base),
		Width:  plotWidth,
		Height: plotHeight,
		XAxis:  chart.XAxis{Name: "Willingness-to-pay per unit utility"},
		YAxis:  chart.YAxis{Name: "Net monetary benefit", Range: &chart.ContinuousRange{Min: yMin, Max: yMax}},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "NMB", XValues: wtps, YValues: mean,
				Style: chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2.0}},
			chart.ContinuousSeries{Name: "lower", XValues: wtps, YValues: lower, Style: band},
			chart.ContinuousSeries{Name: "upper", XValues: wtps, YValues: upper, Style: band},
		},
	}
	return graph.Render(chart.PNG, w)
}

// WritePlots writes survival_curves.png, one survival_hist_<therapy>.png per
// cohort and, when cba has enough points, nmb.png into dir.
func WritePlots(dir string, horizon float64, cba *econ.CBAResult, outcomes ...*sim.CohortOutcomes) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating plot dir: %w", err)
	}

	curves := make([]SurvivalSeries, len(outcomes))
	for i, o := range outcomes {
		curves[i] = SurvivalSeries{Name: o.Therapy().String(), Curve: o.SurvivalCurve()}
	}
	if err := writePNG(filepath.Join(dir, "survival_curves.png"), func(w io.Writer) error {
		return PlotSurvivalCurves(w, horizon, curves...)
	}); err != nil {
		return err
	}

	for _, o := range outcomes {
		times := o.SurvivalTimes()
		if len(times) == 0 {
			logrus.Warnf("%s: no patient became infection free; skipping histogram", o.Therapy())
			continue
		}
		name := fmt.Sprintf("survival_hist_%s.png", o.Therapy())
		title := fmt.Sprintf("Time to infection free (%s)", o.Therapy())
		if err := writePNG(filepath.Join(dir, name), func(w io.Writer) error {
			return PlotHistogram(w, title, times, histogramBins)
		}); err != nil {
			return err
		}
	}

	if cba != nil && len(cba.Points) >= 2 {
		if err := writePNG(filepath.Join(dir, "nmb.png"), func(w io.Writer) error {
			return PlotNMB(w, cba)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(path string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	if err := render(f); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	logrus.Infof("wrote %s", path)
	return nil
}
