package sweep

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Table is the assembled result of a sweep: one row per parameter
// combination, labelled by the rendered parameter values, with one column
// per mean-reduced statistic. A table is built once and read-only afterwards.
type Table struct {
	indexNames []string
	index      [][]string
	columns    []string
	data       [][]float64
}

// NewTable creates an empty table whose rows will be indexed by the given
// parameter names. Columns are fixed by the first appended row.
func NewTable(indexNames []string) *Table {
	names := make([]string, len(indexNames))
	copy(names, indexNames)
	return &Table{indexNames: names}
}

// AppendRow adds one combination's reduced statistics. The first row fixes
// the table's columns; later rows must carry the same statistics.
func (t *Table) AppendRow(index []string, columns []string, values []float64) error {
	if len(index) != len(t.indexNames) {
		return fmt.Errorf("row index has %d values, table has %d levels", len(index), len(t.indexNames))
	}
	if len(columns) != len(values) {
		return fmt.Errorf("row has %d columns but %d values", len(columns), len(values))
	}
	if t.columns == nil {
		t.columns = make([]string, len(columns))
		copy(t.columns, columns)
	} else if len(columns) != len(t.columns) {
		return fmt.Errorf("row has %d columns, table has %d", len(columns), len(t.columns))
	}

	row := make([]float64, len(t.columns))
	for i, want := range t.columns {
		if columns[i] != want {
			return fmt.Errorf("row column %d is %q, table has %q", i, columns[i], want)
		}
		row[i] = values[i]
	}

	idx := make([]string, len(index))
	copy(idx, index)
	t.index = append(t.index, idx)
	t.data = append(t.data, row)
	return nil
}

// IndexNames returns the index level names in order.
func (t *Table) IndexNames() []string {
	out := make([]string, len(t.indexNames))
	copy(out, t.indexNames)
	return out
}

// Columns returns the statistic names in column order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.index) }

// Row returns the index labels and statistic values of row i.
func (t *Table) Row(i int) (index []string, values []float64) {
	return t.index[i], t.data[i]
}

// Column returns the named statistic across all rows.
func (t *Table) Column(name string) ([]float64, error) {
	col := t.columnIndex(name)
	if col < 0 {
		return nil, fmt.Errorf("statistic %q not in table columns %v", name, t.columns)
	}
	out := make([]float64, len(t.data))
	for i, row := range t.data {
		out[i] = row[col]
	}
	return out, nil
}

// Select returns a single-column view of the table for the named statistic.
func (t *Table) Select(name string) (*Table, error) {
	col := t.columnIndex(name)
	if col < 0 {
		return nil, fmt.Errorf("statistic %q not in table columns %v", name, t.columns)
	}
	out := NewTable(t.indexNames)
	out.columns = []string{name}
	for i, row := range t.data {
		out.index = append(out.index, t.index[i])
		out.data = append(out.data, []float64{row[col]})
	}
	return out, nil
}

// XS takes a cross-section: rows whose label for the named level equals
// value, with that level dropped from the index. Selecting a level that does
// not exist, or a value no row carries, is an error.
func (t *Table) XS(level, value string) (*Table, error) {
	li := t.levelIndex(level)
	if li < 0 {
		return nil, fmt.Errorf("index level %q not in %v", level, t.indexNames)
	}

	names := make([]string, 0, len(t.indexNames)-1)
	names = append(names, t.indexNames[:li]...)
	names = append(names, t.indexNames[li+1:]...)

	out := NewTable(names)
	out.columns = t.Columns()
	for i, idx := range t.index {
		if idx[li] != value {
			continue
		}
		keep := make([]string, 0, len(idx)-1)
		keep = append(keep, idx[:li]...)
		keep = append(keep, idx[li+1:]...)
		out.index = append(out.index, keep)
		out.data = append(out.data, t.data[i])
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("value %q not present in index level %q", value, level)
	}
	return out, nil
}

// Series is one plotted line: a label (the series parameter's value), x tick
// labels from the remaining index, and the statistic values.
type Series struct {
	Label  string
	Labels []string
	Values []float64
}

// Unstack pivots the named index level of a single-column table into
// separate series, one per distinct value of that level, in first-appearance
// order. The x labels of each series are the remaining index levels joined
// with commas.
func (t *Table) Unstack(level string) ([]Series, error) {
	if len(t.columns) != 1 {
		return nil, fmt.Errorf("unstack needs a single-column table, have %d columns", len(t.columns))
	}
	li := t.levelIndex(level)
	if li < 0 {
		return nil, fmt.Errorf("index level %q not in %v", level, t.indexNames)
	}

	var order []string
	byLabel := make(map[string]*Series)
	for i, idx := range t.index {
		label := idx[li]
		s, ok := byLabel[label]
		if !ok {
			s = &Series{Label: label}
			byLabel[label] = s
			order = append(order, label)
		}

		rest := make([]string, 0, len(idx)-1)
		rest = append(rest, idx[:li]...)
		rest = append(rest, idx[li+1:]...)
		s.Labels = append(s.Labels, strings.Join(rest, ","))
		s.Values = append(s.Values, t.data[i][0])
	}

	out := make([]Series, len(order))
	for i, label := range order {
		out[i] = *byLabel[label]
	}
	return out, nil
}

// WriteCSV dumps the table: index levels first, then statistic columns.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append(t.IndexNames(), t.columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, idx := range t.index {
		row := make([]string, 0, len(idx)+len(t.data[i]))
		row = append(row, idx...)
		for _, v := range t.data[i] {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func (t *Table) columnIndex(name string) int {
	for i, c := range t.columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t *Table) levelIndex(name string) int {
	for i, n := range t.indexNames {
		if n == name {
			return i
		}
	}
	return -1
}
