package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// printer renders command results as a table or as JSON
type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) *printer {
	return &printer{w: w, format: format}
}

func (p *printer) json() bool {
	return p.format == OutputJSON
}

// Table writes rows under header, or value as JSON in json mode
func (p *printer) Table(value interface{}, header table.Row, rows []table.Row) error {
	if p.json() {
		return p.JSON(value)
	}
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(p.w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(p.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
	_, _ = fmt.Fprintf(p.w, "(%d rows)\n", len(rows))
	return nil
}

// Record writes one record as a two column field/value table
func (p *printer) Record(value interface{}, fields []table.Row) error {
	if p.json() {
		return p.JSON(value)
	}

	t := table.NewWriter()
	t.SetOutputMirror(p.w)
	t.SetStyle(table.StyleLight)
	t.AppendRows(fields)
	t.Render()
	return nil
}

// Message writes a confirmation line, or value as JSON in json mode
func (p *printer) Message(value interface{}, format string, args ...interface{}) error {
	if p.json() {
		return p.JSON(value)
	}
	_, err := fmt.Fprintf(p.w, format+"\n", args...)
	return err
}

func (p *printer) JSON(value interface{}) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
