package format

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// Tabler is implemented by values with a natural tabular form.
type Tabler interface {
	TableHeaders() []string
	TableRows() [][]string
}

// WriteTable renders a Tabler with bold headers and plain cells.
func WriteTable(w io.Writer, t Tabler) error {
	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Wrap = true

	h := color.New(color.Bold, color.Underline)
	headers := t.TableHeaders()
	cells := make([]interface{}, len(headers))
	for i, hd := range headers {
		cells[i] = h.Sprint(hd)
	}
	tbl.AddRow(cells...)

	for _, row := range t.TableRows() {
		cells := make([]interface{}, len(row))
		for i, c := range row {
			cells[i] = c
		}
		tbl.AddRow(cells...)
	}

	_, err := fmt.Fprintln(w, tbl.String())
	return err
}

// Table is a ready-made Tabler for ad hoc listings.
type Table struct {
	Headers []string
	Rows    [][]string
}

func (t Table) TableHeaders() []string { return t.Headers }
func (t Table) TableRows() [][]string  { return t.Rows }
