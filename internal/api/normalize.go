package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/orderfoodonline/checkout/internal/models"
)

// The backend's option payloads are loosely shaped: ids may be numbers
// or strings, fields may be absent, and cart lines sometimes carry
// their options as a JSON-encoded string instead of a structured value.
// Everything is normalized here, once, into the canonical models; the
// engine never sees a raw payload.

type wireOptionGroup struct {
	ID         json.RawMessage   `json:"id"`
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	IsRequired bool              `json:"is_required"`
	Values     []json.RawMessage `json:"values"`
}

type wireOptionValue struct {
	ID              json.RawMessage `json:"id"`
	Value           string          `json:"value"`
	PriceAdjustment json.RawMessage `json:"price_adjustment"`
}

// ParseOptionGroups decodes the GET /products/{id}/options body into
// canonical option groups. Entries that are not objects are dropped;
// missing fields get defaults: type "multiple", empty values, and
// deterministic positional placeholder ids so repeated fetches produce
// identical selections.
func ParseOptionGroups(data []byte) ([]models.OptionGroup, error) {
	var rawGroups []json.RawMessage
	if err := json.Unmarshal(data, &rawGroups); err != nil {
		return nil, err
	}

	groups := make([]models.OptionGroup, 0, len(rawGroups))
	for i, raw := range rawGroups {
		var wg wireOptionGroup
		if err := json.Unmarshal(raw, &wg); err != nil {
			continue
		}

		g := models.OptionGroup{
			ID:            decodeID(wg.ID),
			Name:          wg.Name,
			SelectionMode: wg.Type,
			Required:      wg.IsRequired,
			Values:        []models.OptionValue{},
		}
		if g.ID == "" {
			g.ID = fmt.Sprintf("group-%d", i)
		}
		if g.Name == "" {
			g.Name = "Option"
		}
		if g.SelectionMode != models.SelectSingle {
			g.SelectionMode = models.SelectMultiple
		}

		for j, rawVal := range wg.Values {
			var wv wireOptionValue
			if err := json.Unmarshal(rawVal, &wv); err != nil {
				continue
			}
			v := models.OptionValue{
				ID:              decodeID(wv.ID),
				Label:           wv.Value,
				PriceAdjustment: parseAdjustment(wv.PriceAdjustment),
			}
			if v.ID == "" {
				v.ID = fmt.Sprintf("val-%d-%d", i, j)
			}
			if v.Label == "" {
				v.Label = g.Name
			}
			g.Values = append(g.Values, v)
		}

		groups = append(groups, g)
	}

	return groups, nil
}

type wireSelectedGroup struct {
	OptionID json.RawMessage     `json:"option_id"`
	Name     string              `json:"name"`
	Type     string              `json:"type"`
	Value    string              `json:"value"`
	Values   []wireSelectedValue `json:"values"`
}

type wireSelectedValue struct {
	ValueID         json.RawMessage `json:"value_id"`
	Value           string          `json:"value"`
	PriceAdjustment json.RawMessage `json:"price_adjustment"`
}

// ParseSelectedOptions normalizes a cart line's options field, which may
// be a structured array, an object map, or a JSON-encoded string of
// either. Anything that fails to parse becomes an empty option list;
// a malformed payload must never break the cart pipeline.
func ParseSelectedOptions(raw json.RawMessage) []models.SelectedGroup {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	// String-encoded options: unwrap and parse the inner document.
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil
		}
		return ParseSelectedOptions(json.RawMessage(inner))
	}

	switch data[0] {
	case '[':
		var wire []wireSelectedGroup
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil
		}
		groups := make([]models.SelectedGroup, 0, len(wire))
		for _, wg := range wire {
			if g, ok := selectedGroup(wg, decodeID(wg.OptionID)); ok {
				groups = append(groups, g)
			}
		}
		return groups
	case '{':
		var wire map[string]wireSelectedGroup
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil
		}
		keys := make([]string, 0, len(wire))
		for k := range wire {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		groups := make([]models.SelectedGroup, 0, len(wire))
		for _, k := range keys {
			if g, ok := selectedGroup(wire[k], k); ok {
				groups = append(groups, g)
			}
		}
		return groups
	default:
		return nil
	}
}

func selectedGroup(wg wireSelectedGroup, fallbackID string) (models.SelectedGroup, bool) {
	g := models.SelectedGroup{
		GroupID:       decodeID(wg.OptionID),
		GroupName:     wg.Name,
		SelectionMode: wg.Type,
	}
	if g.GroupID == "" {
		g.GroupID = fallbackID
	}
	if g.SelectionMode != models.SelectSingle {
		g.SelectionMode = models.SelectMultiple
	}

	for _, wv := range wg.Values {
		if wv.Value == "" {
			continue
		}
		g.Values = append(g.Values, models.SelectedValue{
			ValueID:         decodeID(wv.ValueID),
			Label:           wv.Value,
			PriceAdjustment: parseAdjustment(wv.PriceAdjustment),
		})
	}

	// Groups that carry a single direct value instead of a values array.
	if len(g.Values) == 0 && wg.Value != "" {
		g.Values = append(g.Values, models.SelectedValue{Label: wg.Value})
	}

	return g, len(g.Values) > 0
}

// decodeID accepts a JSON number or string id and returns its canonical
// string form, or "" when absent or unusable.
func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// parseAdjustment accepts a JSON number or numeric string and returns
// the decimal amount, defaulting to 0 when absent or unparseable.
func parseAdjustment(raw json.RawMessage) decimal.Decimal {
	if len(raw) == 0 {
		return decimal.Zero
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return decimal.Zero
		}
		s = n.String()
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
