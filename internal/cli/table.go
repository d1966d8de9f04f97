package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column is one table column: its title and whether values are numeric
// (right aligned).
type column struct {
	title   string
	numeric bool
}

var (
	utteranceColumns = []column{{"ID", true}, {"Time", true}, {"Code", false}, {"Annotation", false}}
	ratingColumns    = []column{{"Global", false}, {"Rating", true}}
	codeColumns      = []column{{"Value", true}, {"Code", false}, {"Label", false}}
	globalColumns    = []column{{"Value", true}, {"Global", false}, {"Label", false}, {"Default", true}, {"Range", true}}
)

func utteranceTable(views []utteranceView) string {
	tw := newTable(utteranceColumns)
	for _, u := range views {
		tw.AppendRow(table.Row{u.ID, u.Time, u.Code, u.Annotation})
	}
	return tw.Render()
}

func ratingTable(views []ratingView) string {
	tw := newTable(ratingColumns)
	for _, g := range views {
		tw.AppendRow(table.Row{g.Name, g.Rating})
	}
	return tw.Render()
}

func codeTable(views []codeView) string {
	tw := newTable(codeColumns)
	for _, c := range views {
		tw.AppendRow(table.Row{c.Value, c.Name, c.Label})
	}
	return tw.Render()
}

func globalTable(views []globalView) string {
	tw := newTable(globalColumns)
	for _, g := range views {
		tw.AppendRow(table.Row{g.Value, g.Name, g.Label, g.Default, strconv.Itoa(g.Min) + "-" + strconv.Itoa(g.Max)})
	}
	return tw.Render()
}

func newTable(cols []column) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(cols))
	configs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		header[i] = c.title
		align := text.AlignLeft
		if c.numeric {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)
	return tw
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
