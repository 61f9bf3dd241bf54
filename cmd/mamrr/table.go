package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mamrr/internal/results"
)

var seriesCaser = cases.Title(language.English)

// renderView lays out a normalized result view for the terminal: one table
// for a flat view, one table per series for a grouped one.
func renderView(view results.View) string {
	if !view.Grouped {
		return renderItems(view.Flat)
	}

	sections := make([]string, 0, len(view.Groups))
	for _, group := range view.Groups {
		heading := seriesCaser.String(group.Series)
		sections = append(sections, fmt.Sprintf("%s (%d items)\n%s", heading, len(group.Items), renderItems(group.Items)))
	}
	return strings.Join(sections, "\n\n")
}

func renderItems(items []results.Item) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{"ID", "Title", "Author", "Series", "Size", "Seeders", "Types"})
	for _, item := range items {
		tw.AppendRow(table.Row{
			strconv.FormatInt(item.ID, 10),
			item.Title,
			item.Author,
			item.Series,
			item.Size,
			strconv.FormatInt(item.Seeders, 10),
			item.FileTypes,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, WidthMax: 48},
		{Number: 3, WidthMax: 24},
		{Number: 4, WidthMax: 24},
		{Number: 6, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
