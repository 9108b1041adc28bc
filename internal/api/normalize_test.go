package api

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/orderfoodonline/checkout/internal/models"
)

func TestParseOptionGroups_Defaults(t *testing.T) {
	body := []byte(`[
		{"id": 1, "name": "Size", "type": "single", "is_required": true, "values": [
			{"id": 10, "value": "Small", "price_adjustment": 0},
			{"id": "11", "value": "Large", "price_adjustment": "5.00"}
		]},
		{"name": "Sauces", "values": [
			{"value": "Ketchup"},
			{"id": 12, "price_adjustment": "garbage"}
		]},
		{"id": 3}
	]`)

	groups, err := ParseOptionGroups(body)
	if err != nil {
		t.Fatalf("ParseOptionGroups() unexpected error: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}

	size := groups[0]
	if size.ID != "1" || size.SelectionMode != models.SelectSingle || !size.Required {
		t.Errorf("unexpected size group: %+v", size)
	}
	if size.Values[1].ID != "11" {
		t.Errorf("string id = %q, want 11", size.Values[1].ID)
	}
	if want, _ := decimal.NewFromString("5.00"); !size.Values[1].PriceAdjustment.Equal(want) {
		t.Errorf("adjustment = %s, want 5.00", size.Values[1].PriceAdjustment)
	}

	sauces := groups[1]
	if sauces.ID != "group-1" {
		t.Errorf("missing group id defaulted to %q, want group-1", sauces.ID)
	}
	if sauces.SelectionMode != models.SelectMultiple {
		t.Errorf("missing type defaulted to %q, want multiple", sauces.SelectionMode)
	}
	if sauces.Values[0].ID != "val-1-0" {
		t.Errorf("missing value id defaulted to %q, want val-1-0", sauces.Values[0].ID)
	}
	// A missing label falls back to the group name.
	if sauces.Values[1].Label != "Sauces" {
		t.Errorf("missing label defaulted to %q, want Sauces", sauces.Values[1].Label)
	}
	if !sauces.Values[1].PriceAdjustment.IsZero() {
		t.Errorf("unparseable adjustment = %s, want 0", sauces.Values[1].PriceAdjustment)
	}

	bare := groups[2]
	if bare.Name != "Option" || len(bare.Values) != 0 {
		t.Errorf("unexpected defaults for bare group: %+v", bare)
	}
}

func TestParseOptionGroups_DropsNonObjects(t *testing.T) {
	body := []byte(`[null, "nope", {"id": "a", "name": "Real", "values": []}]`)
	groups, err := ParseOptionGroups(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 || groups[0].Name != "Real" {
		t.Errorf("groups = %+v, want only Real", groups)
	}
}

func TestParseOptionGroups_PlaceholdersAreStable(t *testing.T) {
	body := []byte(`[{"name": "Sauces", "values": [{"value": "Ketchup"}]}]`)

	first, err := ParseOptionGroups(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ParseOptionGroups(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first[0].ID != second[0].ID || first[0].Values[0].ID != second[0].Values[0].ID {
		t.Errorf("placeholder ids differ across fetches: %+v vs %+v", first[0], second[0])
	}
}

func TestParseOptionGroups_TopLevelMalformed(t *testing.T) {
	if _, err := ParseOptionGroups([]byte(`{"not": "an array"}`)); err == nil {
		t.Error("expected error for non-array body")
	}
}

func TestParseSelectedOptions(t *testing.T) {
	structured := `[{"option_id": 1, "name": "Size", "type": "single",
		"values": [{"value_id": 2, "value": "Medium", "price_adjustment": "2.50"}]}]`

	tests := []struct {
		name string
		raw  string
		want int // selected groups
	}{
		{"structured array", structured, 1},
		{"json-encoded string", mustQuote(structured), 1},
		{"object map", `{"1": {"name": "Size", "values": [{"value_id": 2, "value": "Medium"}]}}`, 1},
		{"object map with direct value", `{"1": {"name": "Size", "value": "Medium"}}`, 1},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
		{"malformed string", `"{broken json"`, 0},
		{"scalar", `42`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSelectedOptions(json.RawMessage(tt.raw))
			if len(got) != tt.want {
				t.Fatalf("groups = %d, want %d (%+v)", len(got), tt.want, got)
			}
			if tt.want == 1 {
				if got[0].Values[0].Label != "Medium" {
					t.Errorf("label = %q, want Medium", got[0].Values[0].Label)
				}
			}
		})
	}
}

func TestParseSelectedOptions_EmptyRaw(t *testing.T) {
	if got := ParseSelectedOptions(nil); got != nil {
		t.Errorf("expected nil for absent options, got %+v", got)
	}
}

func mustQuote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}
	return string(b)
}
