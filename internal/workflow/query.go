package workflow

import "strings"

// Field selects which index attribute a search matches against.
type Field string

const (
	FieldTitle    Field = "title"
	FieldAuthor   Field = "author"
	FieldSeries   Field = "series"
	FieldNarrator Field = "narrator"
)

// ParseField coerces arbitrary input to a known field. Unknown values fall
// back to title, matching the backend's own coercion.
func ParseField(value string) Field {
	switch Field(strings.ToLower(strings.TrimSpace(value))) {
	case FieldAuthor:
		return FieldAuthor
	case FieldSeries:
		return FieldSeries
	case FieldNarrator:
		return FieldNarrator
	default:
		return FieldTitle
	}
}

// Fields lists the accepted search fields for help text.
func Fields() []Field {
	return []Field{FieldTitle, FieldAuthor, FieldSeries, FieldNarrator}
}

// Query is a single search submission.
type Query struct {
	Term  string
	Field Field
}
