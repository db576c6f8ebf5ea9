// Command pyrat-sweep runs a grid of PyRat experiments and writes the
// combined results as CSV, PNG, HTML, or a sqlite results database.
//
// Example:
//
//	pyrat-sweep -tests 10 -pieces 1 -widths 5,10,15 -densities 0.2,0.4 \
//	    -rats AIs/lab3_bfs.py,AIs/lab4_dijkstra.py -link-square \
//	    -csv results.csv -plot win_rat.png -variable win_rat -lines rat \
//	    -fix density=0.4
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/pyrat-bench/internal/game"
	"github.com/banshee-data/pyrat-bench/internal/monitoring"
	"github.com/banshee-data/pyrat-bench/internal/report"
	"github.com/banshee-data/pyrat-bench/internal/store"
	"github.com/banshee-data/pyrat-bench/internal/sweep"
)

func main() {
	var (
		interpreter = flag.String("python", game.DefaultInterpreter, "interpreter used to launch the game")
		entryPoint  = flag.String("pyrat", game.DefaultEntryPoint, "game entry point")

		tests  = flag.Int("tests", 0, "trials per run (0 = game default)")
		pieces = flag.Int("pieces", 0, "cheese pieces per maze (0 = game default)")
		fixed  = flag.String("fixed", "", "extra fixed params as name=value,name=value")

		widths    = flag.String("widths", "", "comma-separated maze widths to sweep")
		heights   = flag.String("heights", "", "comma-separated maze heights to sweep")
		densities = flag.String("densities", "", "comma-separated wall densities to sweep")
		rats      = flag.String("rats", "", "comma-separated rat AI script paths to sweep")

		linkSquare = flag.Bool("link-square", false, "mirror width onto height (and vice versa) for square mazes")

		csvOut  = flag.String("csv", "", "write the combined result table to this CSV file")
		plotOut = flag.String("plot", "", "write a comparison plot to this PNG file")
		htmlOut = flag.String("html", "", "write an interactive comparison chart to this HTML file")
		dbOut   = flag.String("db", "", "persist the sweep to this sqlite database")

		variable    = flag.String("variable", "", "statistic to compare (required for -plot and -html)")
		lines       = flag.String("lines", "", "grid parameter whose values become plotted series")
		constraints = flag.String("fix", "", "fixed constraints as param=value,param=value")

		quiet = flag.Bool("quiet", false, "suppress progress logging")
	)
	flag.Parse()

	if *quiet {
		monitoring.SetLogger(nil)
	}

	cfg := sweep.Config{
		Grid:            buildGrid(*widths, *heights, *densities, *rats),
		LinkHeightWidth: *linkSquare,
	}
	if *tests > 0 {
		cfg.FixedParams = append(cfg.FixedParams, game.Setting{Name: "tests", Value: game.Int(*tests)})
	}
	if *pieces > 0 {
		cfg.FixedParams = append(cfg.FixedParams, game.Setting{Name: "pieces", Value: game.Int(*pieces)})
	}
	extra, err := parseSettings(*fixed)
	if err != nil {
		log.Fatalf("parsing -fixed: %v", err)
	}
	cfg.FixedParams = append(cfg.FixedParams, extra...)

	if cfg.Grid.Count() == 0 {
		log.Fatal("no parameter grid given; use -widths, -heights, -densities, or -rats")
	}
	if (*plotOut != "" || *htmlOut != "") && *variable == "" {
		log.Fatal("-plot and -html require -variable")
	}

	var db *store.Store
	if *dbOut != "" {
		db, err = store.Open(*dbOut)
		if err != nil {
			log.Fatalf("opening results database: %v", err)
		}
		defer db.Close()
		cfg.Recorder = db
	}

	runner := sweep.NewRunner(cfg)
	runner.Game().Interpreter = *interpreter
	runner.Game().EntryPoint = *entryPoint

	table, err := runner.Run()
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}
	log.Printf("sweep complete: %d runs, statistics %v", table.Len(), table.Columns())

	if *csvOut != "" {
		if err := writeCSV(table, *csvOut); err != nil {
			log.Fatalf("writing %s: %v", *csvOut, err)
		}
		log.Printf("wrote %s", *csvOut)
	}

	fixes, err := parseConstraints(*constraints)
	if err != nil {
		log.Fatalf("parsing -fix: %v", err)
	}

	if *plotOut != "" {
		p, err := report.ComparisonPlot(nil, table, *variable, *lines, fixes...)
		if err != nil {
			log.Fatalf("building comparison plot: %v", err)
		}
		if err := p.Save(8*vg.Inch, 5*vg.Inch, *plotOut); err != nil {
			log.Fatalf("writing %s: %v", *plotOut, err)
		}
		log.Printf("wrote %s", *plotOut)
	}

	if *htmlOut != "" {
		f, err := os.Create(*htmlOut)
		if err != nil {
			log.Fatalf("creating %s: %v", *htmlOut, err)
		}
		err = report.WriteComparisonHTML(f, table, *variable, *lines, fixes...)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			log.Fatalf("writing %s: %v", *htmlOut, err)
		}
		log.Printf("wrote %s", *htmlOut)
	}
}

// buildGrid assembles the sweep grid from the list flags, in a stable
// parameter order.
func buildGrid(widths, heights, densities, rats string) *sweep.Grid {
	grid := sweep.NewGrid()
	if vs := parseNumberList(widths); len(vs) > 0 {
		grid.Add("width", vs...)
	}
	if vs := parseNumberList(heights); len(vs) > 0 {
		grid.Add("height", vs...)
	}
	if vs := parseNumberList(densities); len(vs) > 0 {
		grid.Add("density", vs...)
	}
	if rats != "" {
		var vs []game.Value
		for _, p := range strings.Split(rats, ",") {
			if p = strings.TrimSpace(p); p != "" {
				vs = append(vs, game.Path(p))
			}
		}
		grid.Add("rat", vs...)
	}
	return grid
}

// parseNumberList parses a comma-separated list, keeping integers integral
// so they render without a decimal point on the command line.
func parseNumberList(s string) []game.Value {
	if s == "" {
		return nil
	}
	var out []game.Value
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if n, err := strconv.Atoi(p); err == nil {
			out = append(out, game.Int(n))
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			log.Fatalf("invalid number %q", p)
		}
		out = append(out, game.Float(f))
	}
	return out
}

// parseSettings parses "name=value,name=value" into typed game settings.
func parseSettings(s string) ([]game.Setting, error) {
	if s == "" {
		return nil, nil
	}
	var out []game.Setting
	for _, pair := range strings.Split(s, ",") {
		name, raw, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", pair)
		}
		out = append(out, game.Setting{Name: name, Value: parseValue(raw)})
	}
	return out, nil
}

// parseValue guesses the option type: bool, int, float, then plain text.
func parseValue(raw string) game.Value {
	switch raw {
	case "true":
		return game.Bool(true)
	case "false":
		return game.Bool(false)
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return game.Int(n)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return game.Float(f)
	}
	return game.String(raw)
}

// parseConstraints parses "param=value,param=value" report constraints.
func parseConstraints(s string) ([]report.Constraint, error) {
	if s == "" {
		return nil, nil
	}
	var out []report.Constraint
	for _, pair := range strings.Split(s, ",") {
		param, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || param == "" {
			return nil, fmt.Errorf("expected param=value, got %q", pair)
		}
		out = append(out, report.Constraint{Param: param, Value: value})
	}
	return out, nil
}

func writeCSV(table *sweep.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := table.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
