package main

import (
	"strings"
	"testing"

	"mamrr/internal/results"
)

func TestRenderViewFlat(t *testing.T) {
	view := results.View{
		Flat: []results.Item{
			{ID: 1, Title: "Dune", Author: "Frank Herbert", Size: "21 GB", Seeders: 33, FileTypes: "m4b"},
			{ID: 2, Title: "Dune Messiah", Author: "Frank Herbert", Size: "14 GB", Seeders: 9, FileTypes: "mp3"},
		},
	}

	rendered := renderView(view)
	for _, want := range []string{"ID", "Title", "Seeders", "Dune", "Dune Messiah", "Frank Herbert", "33"} {
		requireContains(t, rendered, want)
	}
}

func TestRenderViewGroupedHeadings(t *testing.T) {
	view := results.View{
		Grouped: true,
		Groups: []results.Group{
			{Series: "discworld", Items: []results.Item{{ID: 5, Title: "Guards! Guards!"}}},
			{Series: "the culture", Items: []results.Item{
				{ID: 6, Title: "Consider Phlebas"},
				{ID: 7, Title: "The Player of Games"},
			}},
		},
	}

	rendered := renderView(view)
	requireContains(t, rendered, "Discworld (1 items)")
	requireContains(t, rendered, "The Culture (2 items)")

	// group order must survive rendering
	if strings.Index(rendered, "Discworld") > strings.Index(rendered, "The Culture") {
		t.Fatalf("expected Discworld section before The Culture:\n%s", rendered)
	}
}

func TestRenderViewEmptyFlat(t *testing.T) {
	rendered := renderView(results.View{})
	requireContains(t, rendered, "ID")
}
