package csvtable

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"folio/internal/util"
)

var (
	ErrEmptyInput    = errors.New("no rows found in csv input")
	ErrRowOutOfRange = errors.New("row index out of range")
	ErrColOutOfRange = errors.New("column index out of range")
)

// Table is the editable grid. the first parsed row
// becomes the header
type Table struct {
	Headers  []string
	Rows     [][]string
	selected *util.Set[int]
}

func NewTable(headers []string, rows [][]string) *Table {
	t := &Table{
		Headers:  append([]string{}, headers...),
		Rows:     make([][]string, 0, len(rows)),
		selected: util.NewSet[int](),
	}
	for _, row := range rows {
		t.Rows = append(t.Rows, append([]string{}, row...))
	}
	t.squareUp()
	return t
}

func Load(text string) (*Table, error) {
	rows := Parse(text)
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	return NewTable(rows[0], rows[1:]), nil
}

// squareUp pads short rows, and names extra columns
// when a row is wider than the header
func (t *Table) squareUp() {
	width := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for len(t.Headers) < width {
		t.Headers = append(t.Headers, fmt.Sprintf("Column %d", len(t.Headers)+1))
	}
	for i, row := range t.Rows {
		for len(row) < width {
			row = append(row, "")
		}
		t.Rows[i] = row
	}
}

func (t *Table) checkRow(i int) error {
	if i < 0 || i >= len(t.Rows) {
		return fmt.Errorf("row %d of %d: %w", i, len(t.Rows), ErrRowOutOfRange)
	}
	return nil
}

func (t *Table) checkCol(i int) error {
	if i < 0 || i >= len(t.Headers) {
		return fmt.Errorf("column %d of %d: %w", i, len(t.Headers), ErrColOutOfRange)
	}
	return nil
}

func (t *Table) AddRow() int {
	t.Rows = append(t.Rows, make([]string, len(t.Headers)))
	return len(t.Rows) - 1
}

func (t *Table) DeleteRow(i int) error {
	if err := t.checkRow(i); err != nil {
		return err
	}
	t.Rows = append(t.Rows[:i], t.Rows[i+1:]...)

	// selection is by index so everything after i moves up
	shifted := util.NewSet[int]()
	for _, s := range t.selected.List() {
		switch {
		case s < i:
			shifted.Add(s)
		case s > i:
			shifted.Add(s - 1)
		}
	}
	t.selected = shifted
	return nil
}

func (t *Table) UpdateCell(row, col int, value string) error {
	if err := t.checkRow(row); err != nil {
		return err
	}
	if err := t.checkCol(col); err != nil {
		return err
	}
	t.Rows[row][col] = value
	return nil
}

func (t *Table) UpdateHeader(col int, value string) error {
	if err := t.checkCol(col); err != nil {
		return err
	}
	t.Headers[col] = value
	return nil
}

func (t *Table) AddColumn(name string) int {
	t.Headers = append(t.Headers, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
	return len(t.Headers) - 1
}

func (t *Table) DeleteColumn(col int) error {
	if err := t.checkCol(col); err != nil {
		return err
	}
	t.Headers = append(t.Headers[:col], t.Headers[col+1:]...)
	for i, row := range t.Rows {
		t.Rows[i] = append(row[:col], row[col+1:]...)
	}
	return nil
}

func (t *Table) ToggleSelect(i int) error {
	if err := t.checkRow(i); err != nil {
		return err
	}
	if t.selected.Contains(i) {
		t.selected.Remove(i)
	} else {
		t.selected.Add(i)
	}
	return nil
}

func (t *Table) Select(indices ...int) error {
	for _, i := range indices {
		if err := t.checkRow(i); err != nil {
			return err
		}
		t.selected.Add(i)
	}
	return nil
}

func (t *Table) SelectAll() {
	for i := range t.Rows {
		t.selected.Add(i)
	}
}

func (t *Table) ClearSelection() {
	t.selected.Clear()
}

func (t *Table) IsSelected(i int) bool {
	return t.selected.Contains(i)
}

func (t *Table) SelectedIndices() []int {
	return t.selected.List()
}

func (t *Table) SelectedCount() int {
	return t.selected.Length()
}

// Filter returns the indices of rows with a cell that
// contains query, ignoring case. an empty query matches
// everything
func (t *Table) Filter(query string) []int {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []int{}
	for i, row := range t.Rows {
		if q == "" {
			out = append(out, i)
			continue
		}
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), q) {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

func less(a, b string) bool {
	fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if errA == nil && errB == nil {
		return fa < fb
	}
	return strings.ToLower(a) < strings.ToLower(b)
}

// SortBy orders rows on one column, numerically when both
// cells are numbers. selected rows stay selected
func (t *Table) SortBy(col int, ascending bool) error {
	if err := t.checkCol(col); err != nil {
		return err
	}

	order := make([]int, len(t.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := t.Rows[order[i]][col], t.Rows[order[j]][col]
		if ascending {
			return less(a, b)
		}
		return less(b, a)
	})

	rows := make([][]string, len(t.Rows))
	selected := util.NewSet[int]()
	for newIdx, oldIdx := range order {
		rows[newIdx] = t.Rows[oldIdx]
		if t.selected.Contains(oldIdx) {
			selected.Add(newIdx)
		}
	}
	t.Rows = rows
	t.selected = selected
	return nil
}

func (t *Table) rowsWhere(keep func(i int) bool) [][]string {
	out := [][]string{}
	for i, row := range t.Rows {
		if keep(i) {
			out = append(out, row)
		}
	}
	return out
}

func (t *Table) ExportAll() (string, string) {
	return ExportAllFilename, Format(t.Headers, t.Rows)
}

func (t *Table) ExportSelected() (string, string) {
	return ExportSelectedFilename, Format(t.Headers, t.rowsWhere(t.selected.Contains))
}

func (t *Table) ExportDeselected() (string, string) {
	return ExportDeselectedFilename, Format(t.Headers, t.rowsWhere(func(i int) bool {
		return !t.selected.Contains(i)
	}))
}
