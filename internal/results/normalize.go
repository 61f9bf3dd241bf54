package results

import (
	"bytes"
	"encoding/json"
)

// Item is a single release from the torrent index. Field names follow the
// backend's JSON contract.
type Item struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Series    string `json:"series"`
	Category  string `json:"category"`
	Size      string `json:"size"`
	Seeders   int64  `json:"seeders"`
	FileTypes string `json:"filetypes"`
	Cover     string `json:"cover"`
}

// Group is a named series with its releases, in received order.
type Group struct {
	Series string
	Items  []Item
}

// View is the normalized search result. Exactly one of Flat or Groups is
// populated at a time; Grouped reports which. The canonical empty view is an
// empty flat view.
type View struct {
	Grouped bool
	Flat    []Item
	Groups  []Group
}

// Empty reports whether the view holds no items.
func (v View) Empty() bool { return v.Len() == 0 }

// Len counts the items across both shapes.
func (v View) Len() int {
	if v.Grouped {
		total := 0
		for _, group := range v.Groups {
			total += len(group.Items)
		}
		return total
	}
	return len(v.Flat)
}

// Normalize inspects the raw search payload and produces a View. An array
// becomes a flat view; an object becomes a series-grouped view with key order
// preserved as received; anything else, including invalid JSON, becomes an
// empty flat view. Individual members that fail to decode are skipped rather
// than failing the whole payload.
func Normalize(raw []byte) View {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return View{}
	}

	switch trimmed[0] {
	case '[':
		return flatView(trimmed)
	case '{':
		return groupedView(trimmed)
	default:
		return View{}
	}
}

func flatView(raw []byte) View {
	var members []json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return View{}
	}
	return View{Flat: decodeItems(members)}
}

// groupedView walks the object token by token so series keep the order the
// backend sent them in; unmarshalling into a map would shuffle it.
func groupedView(raw []byte) View {
	decoder := json.NewDecoder(bytes.NewReader(raw))

	if _, err := decoder.Token(); err != nil { // opening brace
		return View{}
	}

	var groups []Group
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return View{}
		}
		series, ok := keyToken.(string)
		if !ok {
			return View{}
		}

		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return View{}
		}

		var members []json.RawMessage
		if err := json.Unmarshal(value, &members); err != nil {
			// Value is not a sequence; this key carries nothing renderable.
			continue
		}
		groups = append(groups, Group{Series: series, Items: decodeItems(members)})
	}

	if len(groups) == 0 {
		return View{}
	}
	return View{Grouped: true, Groups: groups}
}

func decodeItems(members []json.RawMessage) []Item {
	items := make([]Item, 0, len(members))
	for _, member := range members {
		var item Item
		if err := json.Unmarshal(member, &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}
