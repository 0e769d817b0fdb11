package main

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// statusColorizer colours status words when out is a terminal.
type statusColorizer struct {
	enabled bool
}

func newStatusColorizer(out io.Writer) statusColorizer {
	file, ok := out.(*os.File)
	if !ok {
		return statusColorizer{}
	}
	fd := file.Fd()
	return statusColorizer{enabled: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

func (c statusColorizer) ok(s string) string {
	return c.paint(s, text.FgGreen)
}

func (c statusColorizer) warn(s string) string {
	return c.paint(s, text.FgYellow)
}

func (c statusColorizer) fail(s string) string {
	return c.paint(s, text.FgRed)
}

func (c statusColorizer) paint(s string, color text.Color) string {
	if !c.enabled {
		return s
	}
	return color.Sprint(s)
}
