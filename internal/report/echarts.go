package report

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/pyrat-bench/internal/sweep"
)

// WriteComparisonHTML renders the same comparison as ComparisonPlot into a
// self-contained interactive HTML line chart. Handy when eyeballing sweeps
// without a matplotlib-style toolchain around.
func WriteComparisonHTML(w io.Writer, table *sweep.Table, variable, lines string, constraints ...Constraint) error {
	series, err := buildSeries(table, variable, lines, constraints)
	if err != nil {
		return err
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "PyRat comparison", Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: variable, Subtitle: constraintsTitle(constraints)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: variable}),
	)

	// All series of one sweep share x labels; the grid is cartesian.
	line.SetXAxis(series[0].Labels)
	for _, s := range series {
		name := s.Label
		switch {
		case name == "":
			name = variable
		case lines != "":
			name = lines + "=" + s.Label
		}

		data := make([]opts.LineData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(name, data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	}

	return line.Render(w)
}
