package results

import (
	"fmt"
	"strings"
	"testing"
)

func TestNormalizeFlatPayload(t *testing.T) {
	raw := []byte(`[
		{"id": 101, "title": "Project Hail Mary", "author": "Andy Weir", "seeders": 42, "size": "1.1 GiB", "filetypes": "m4b", "cover": "https://covers.example/101.jpg"},
		{"id": 102, "title": "The Martian", "author": "Andy Weir", "seeders": 17}
	]`)

	view := Normalize(raw)
	if view.Grouped {
		t.Fatal("expected flat view")
	}
	if len(view.Flat) != 2 {
		t.Fatalf("expected 2 items, got %d", len(view.Flat))
	}
	first := view.Flat[0]
	if first.ID != 101 || first.Title != "Project Hail Mary" || first.Seeders != 42 {
		t.Fatalf("first item mismatch: %#v", first)
	}
	if view.Len() != 2 || view.Empty() {
		t.Fatalf("view accounting wrong: len=%d empty=%v", view.Len(), view.Empty())
	}
}

func TestNormalizeGroupedPayloadPreservesKeyOrder(t *testing.T) {
	// Deliberately not alphabetical: received order must survive.
	raw := []byte(`{
		"Wheel of Time": [{"id": 1, "title": "The Eye of the World"}],
		"Discworld": [{"id": 2, "title": "Guards! Guards!"}, {"id": 3, "title": "Mort"}],
		"Culture": [{"id": 4, "title": "Consider Phlebas"}]
	}`)

	view := Normalize(raw)
	if !view.Grouped {
		t.Fatal("expected grouped view")
	}
	wantOrder := []string{"Wheel of Time", "Discworld", "Culture"}
	if len(view.Groups) != len(wantOrder) {
		t.Fatalf("expected %d groups, got %d", len(wantOrder), len(view.Groups))
	}
	for i, want := range wantOrder {
		if view.Groups[i].Series != want {
			t.Fatalf("group %d: got %q want %q", i, view.Groups[i].Series, want)
		}
	}
	if len(view.Groups[1].Items) != 2 {
		t.Fatalf("Discworld items: got %d", len(view.Groups[1].Items))
	}
	if view.Len() != 4 {
		t.Fatalf("total items: got %d want 4", view.Len())
	}
}

func TestNormalizeDegenerateInputs(t *testing.T) {
	cases := map[string]string{
		"null":           `null`,
		"number":         `42`,
		"string":         `"oops"`,
		"boolean":        `true`,
		"empty":          ``,
		"whitespace":     "  \n\t ",
		"invalid json":   `{"unterminated": [`,
		"truncated list": `[{"id": 1}`,
		"empty object":   `{}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			view := Normalize([]byte(raw))
			if view.Grouped {
				t.Fatal("degenerate input must yield the flat shape")
			}
			if !view.Empty() {
				t.Fatalf("expected empty view, got %#v", view)
			}
		})
	}
}

func TestNormalizeSkipsUndecodableMembers(t *testing.T) {
	raw := []byte(`[{"id": 1, "title": "good"}, "not an object", {"id": "also-bad"}, {"id": 2, "title": "also good"}]`)

	view := Normalize(raw)
	if len(view.Flat) != 2 {
		t.Fatalf("expected 2 usable items, got %d", len(view.Flat))
	}
	if view.Flat[0].ID != 1 || view.Flat[1].ID != 2 {
		t.Fatalf("kept wrong items: %#v", view.Flat)
	}
}

func TestNormalizeGroupedSkipsNonSequenceValues(t *testing.T) {
	raw := []byte(`{"Real Series": [{"id": 1}], "metadata": {"page": 1}, "count": 3}`)

	view := Normalize(raw)
	if !view.Grouped {
		t.Fatal("expected grouped view")
	}
	if len(view.Groups) != 1 || view.Groups[0].Series != "Real Series" {
		t.Fatalf("groups: %#v", view.Groups)
	}
}

func TestNormalizeLargeFlatPayload(t *testing.T) {
	var builder strings.Builder
	builder.WriteString("[")
	for i := 0; i < 50; i++ {
		if i > 0 {
			builder.WriteString(",")
		}
		fmt.Fprintf(&builder, `{"id": %d, "title": "Book %d"}`, i+1, i+1)
	}
	builder.WriteString("]")

	view := Normalize([]byte(builder.String()))
	if view.Len() != 50 {
		t.Fatalf("expected 50 items, got %d", view.Len())
	}
}
