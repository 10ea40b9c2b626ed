package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/yndnr/keyman/internal/core/domain"
)

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render draws the table as a bordered grid with a rule between rows.
func (t *Table) Render(w io.Writer) error {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Headers)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetRowLine(true)
	tw.AppendBulk(t.Rows)
	tw.Render()
	return nil
}

// KeysTable lays out keys as ID, REVOKED, COMMENT, KEY rows in the given order.
func KeysTable(keys []*domain.Key) *Table {
	fields := domain.Fields()
	t := &Table{Headers: make([]string, 0, len(fields))}
	for _, f := range fields {
		t.Headers = append(t.Headers, string(f))
	}
	for _, k := range keys {
		cells := make([]string, 0, len(fields))
		for _, f := range fields {
			cells = append(cells, fmt.Sprint(k.Get(f)))
		}
		t.AddRow(cells...)
	}
	return t
}

// TableFormatter formats data as a grid.
type TableFormatter struct{}

// Format supports *Table and []*domain.Key; anything else is an error.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case *Table:
		return v.Render(w)
	case []*domain.Key:
		return KeysTable(v).Render(w)
	case *domain.Key:
		return KeysTable([]*domain.Key{v}).Render(w)
	}
	return fmt.Errorf("output: cannot render %T as a table", data)
}
