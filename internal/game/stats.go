package game

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// statsSkipLines is the number of metadata lines the game writes before the
// column header row of a stats file.
const statsSkipLines = 2

// Stats is the tabular dataset one game run produces: one row per trial, one
// column per measured statistic. Cells are kept in their textual form and
// parsed on demand, since the game mixes numeric and labelling columns.
type Stats struct {
	columns []string
	rows    [][]string
}

// LoadStats reads a stats file written by the game. The first two lines are
// run metadata and are skipped; the next line is the column header; the
// remaining lines are trial rows.
func LoadStats(path string) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stats file: %w", err)
	}
	defer f.Close()
	return ReadStats(f)
}

// ReadStats parses stats data from r using the same layout as LoadStats.
func ReadStats(r io.Reader) (*Stats, error) {
	buf := bufio.NewReader(r)
	for i := 0; i < statsSkipLines; i++ {
		if _, err := buf.ReadString('\n'); err != nil {
			return nil, fmt.Errorf("skipping stats metadata line %d: %w", i+1, err)
		}
	}

	cr := csv.NewReader(buf)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading stats header: %w", err)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading stats row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}

	return &Stats{columns: header, rows: rows}, nil
}

// Columns returns the statistic names in file order.
func (s *Stats) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Len returns the number of trial rows.
func (s *Stats) Len() int { return len(s.rows) }

// Column returns the named column parsed as float64.
func (s *Stats) Column(name string) ([]float64, error) {
	idx := -1
	for i, c := range s.columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("stats column %q not found", name)
	}

	out := make([]float64, len(s.rows))
	for i, row := range s.rows {
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return nil, fmt.Errorf("stats column %q row %d: %w", name, i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// Mean reduces the dataset to one value per column: the arithmetic mean
// across trial rows. Columns with any non-numeric cell are dropped, so the
// summary carries only measured statistics.
func (s *Stats) Mean() *Summary {
	sum := &Summary{}
	for _, name := range s.columns {
		col, err := s.Column(name)
		if err != nil || len(col) == 0 {
			continue
		}
		sum.columns = append(sum.columns, name)
		sum.values = append(sum.values, stat.Mean(col, nil))
	}
	return sum
}

// Summary is the mean-reduced form of a Stats dataset: one value per numeric
// statistic, in column order.
type Summary struct {
	columns []string
	values  []float64
}

// Columns returns the statistic names in column order.
func (s *Summary) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Values returns the mean statistic values, aligned with Columns.
func (s *Summary) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// Value returns the named statistic and whether it is present.
func (s *Summary) Value(name string) (float64, bool) {
	for i, c := range s.columns {
		if c == name {
			return s.values[i], true
		}
	}
	return 0, false
}
