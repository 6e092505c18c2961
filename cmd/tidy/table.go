package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
)

// tableDestination decides between the rounded table style for terminals and
// plain tab-separated output for pipes.
func tableDestination(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderTable renders headers and rows either as a rounded table (pretty)
// or as plain tab-separated lines.
func renderTable(headers []string, rows [][]string, pretty bool) string {
	if len(headers) == 0 {
		return ""
	}

	if !pretty {
		var b strings.Builder
		b.WriteString(strings.Join(headers, "\t"))
		for _, row := range rows {
			b.WriteString("\n")
			b.WriteString(strings.Join(row, "\t"))
		}
		return b.String()
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}

// renderKeyValues prints aligned "key: value" lines, the fallback format for
// single-record views.
func renderKeyValues(out io.Writer, pairs [][2]string) {
	width := 0
	for _, pair := range pairs {
		if len(pair[0]) > width {
			width = len(pair[0])
		}
	}
	for _, pair := range pairs {
		fmt.Fprintf(out, "  %-*s %s\n", width+1, pair[0]+":", pair[1])
	}
}
