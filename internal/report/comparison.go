// Package report renders comparative views of sweep result tables.
package report

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/pyrat-bench/internal/sweep"
)

// Constraint pins one swept parameter to a single value (in its rendered
// form) before plotting. Each constraint removes its level from the table's
// index via a cross-section.
type Constraint struct {
	Param string
	Value string
}

// seriesColors cycles across plotted series.
var seriesColors = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
}

// ComparisonPlot draws the named statistic from a sweep table as a
// line-with-markers comparison. Each fixed constraint is applied as a
// cross-section; when lines names a parameter, its distinct values become
// separate series. The plot is drawn on p, or on a fresh plot when p is nil,
// and returned. Exactly one index level must remain to serve as the x axis.
func ComparisonPlot(p *plot.Plot, table *sweep.Table, variable, lines string, constraints ...Constraint) (*plot.Plot, error) {
	series, err := buildSeries(table, variable, lines, constraints)
	if err != nil {
		return nil, err
	}

	xs, nominal := xPositions(series)

	if p == nil {
		p = plot.New()
	}
	p.Title.Text = constraintsTitle(constraints)
	p.Y.Label.Text = variable
	p.Add(plotter.NewGrid())

	for i, s := range series {
		pts := make(plotter.XYs, len(s.Values))
		for j := range s.Values {
			pts[j] = plotter.XY{X: xs[s.Labels[j]], Y: s.Values[j]}
		}

		line, scatter, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("building series %q: %w", s.Label, err)
		}
		c := seriesColors[i%len(seriesColors)]
		line.Color = c
		line.Width = vg.Points(1)
		scatter.GlyphStyle.Color = c
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}

		p.Add(line, scatter)
		if lines != "" {
			p.Legend.Add(lines+"="+s.Label, line, scatter)
		}
	}

	if nominal != nil {
		p.NominalX(nominal...)
	}
	return p, nil
}

// buildSeries slices the table into the series a comparison will draw:
// select the statistic, cross-section each constraint, then either unstack
// the series parameter or keep the single remaining series.
func buildSeries(table *sweep.Table, variable, lines string, constraints []Constraint) ([]sweep.Series, error) {
	sel, err := table.Select(variable)
	if err != nil {
		return nil, err
	}
	for _, c := range constraints {
		sel, err = sel.XS(c.Param, c.Value)
		if err != nil {
			return nil, err
		}
	}

	if lines == "" {
		s := sweep.Series{}
		for i := 0; i < sel.Len(); i++ {
			idx, vals := sel.Row(i)
			s.Labels = append(s.Labels, strings.Join(idx, ","))
			s.Values = append(s.Values, vals[0])
		}
		return []sweep.Series{s}, nil
	}
	return sel.Unstack(lines)
}

// xPositions maps x labels to axis positions. Numeric labels map to their
// values; otherwise labels map to ordinal positions and the returned slice
// carries the nominal tick names in first-appearance order.
func xPositions(series []sweep.Series) (map[string]float64, []string) {
	var order []string
	seen := make(map[string]bool)
	for _, s := range series {
		for _, l := range s.Labels {
			if !seen[l] {
				seen[l] = true
				order = append(order, l)
			}
		}
	}

	numeric := true
	pos := make(map[string]float64, len(order))
	for _, l := range order {
		v, err := strconv.ParseFloat(l, 64)
		if err != nil {
			numeric = false
			break
		}
		pos[l] = v
	}
	if numeric {
		return pos, nil
	}

	for i, l := range order {
		pos[l] = float64(i)
	}
	return pos, order
}

// constraintsTitle renders the fixed constraints as the plot title, e.g.
// "{density: 0.4}".
func constraintsTitle(constraints []Constraint) string {
	parts := make([]string, len(constraints))
	for i, c := range constraints {
		parts[i] = c.Param + ": " + c.Value
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
