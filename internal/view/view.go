// Package view holds the catalog rows currently on display.
//
// A Model is rebuilt from the store after every mutation and every search,
// never patched in place. It also carries the transient UI state: which row
// is selected and the active search text.
package view

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/roach88/shelf/internal/book"
)

// Row is one displayed record, every cell as text in book.Columns order.
type Row []string

// ID returns the text of the row's id cell.
func (r Row) ID() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Model is the in-memory reflection of the displayed rows.
type Model struct {
	rows     []Row
	selected int
	search   string
}

// New returns an empty model with no selection.
func New() *Model {
	return &Model{selected: -1}
}

// Load replaces every row with books and clears the selection.
func (m *Model) Load(books []book.Book) {
	rows := make([]Row, len(books))
	for i, b := range books {
		rows[i] = Row(b.Strings())
	}
	m.rows = rows
	m.selected = -1
}

// Len returns the number of displayed rows.
func (m *Model) Len() int {
	return len(m.rows)
}

// Rows returns a copy of the displayed rows.
func (m *Model) Rows() []Row {
	out := make([]Row, len(m.rows))
	for i, r := range m.rows {
		out[i] = append(Row(nil), r...)
	}
	return out
}

// Row returns the displayed row at index i.
func (m *Model) Row(i int) (Row, bool) {
	if i < 0 || i >= len(m.rows) {
		return nil, false
	}
	return append(Row(nil), m.rows[i]...), true
}

// RowID parses the id cell of row i.
func (m *Model) RowID(i int) (int64, error) {
	r, ok := m.Row(i)
	if !ok {
		return 0, fmt.Errorf("row %d out of range (%d rows)", i, len(m.rows))
	}
	id, err := strconv.ParseInt(r.ID(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid id %q: %w", i, r.ID(), err)
	}
	return id, nil
}

// Select marks row i as selected. An out of range index clears the
// selection and returns false.
func (m *Model) Select(i int) bool {
	if i < 0 || i >= len(m.rows) {
		m.selected = -1
		return false
	}
	m.selected = i
	return true
}

// Selected returns the selected row index.
func (m *Model) Selected() (int, bool) {
	return m.selected, m.selected >= 0
}

// ClearSelection drops the selection.
func (m *Model) ClearSelection() {
	m.selected = -1
}

// Search returns the active search text.
func (m *Model) Search() string {
	return m.search
}

// SetSearch records the active search text.
func (m *Model) SetSearch(s string) {
	m.search = s
}

// Render writes the rows as an aligned table, header first, with a ">"
// marker on the selected row and a count line at the end.
func (m *Model) Render(w io.Writer) error {
	var table bytes.Buffer
	tw := tabwriter.NewWriter(&table, 0, 8, 2, ' ', 0)

	headers := make([]string, len(book.Headers))
	for i, h := range book.Headers {
		headers[i] = strings.ToUpper(h)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, r := range m.rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = cellText(c)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// Line -1 is the header.
	bw := bufio.NewWriter(w)
	line := -1
	for text := range bytes.Lines(table.Bytes()) {
		marker := "  "
		if line >= 0 && line == m.selected {
			marker = "> "
		}
		bw.WriteString(marker)
		bw.Write(text)
		line++
	}

	fmt.Fprint(bw, countLine(len(m.rows)))
	if m.search != "" {
		fmt.Fprintf(bw, " matching %q", m.search)
	}
	bw.WriteByte('\n')

	return bw.Flush()
}

func countLine(n int) string {
	if n == 1 {
		return "1 book"
	}
	return fmt.Sprintf("%d books", n)
}

// cellText flattens characters that would break table alignment.
func cellText(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, s)
}
