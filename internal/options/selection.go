// Package options implements the option selection and pricing engine:
// the mapping from a product's option-group definitions to a validated
// selection, the derived line price, and the submittable payload.
//
// All operations are synchronous and pure. A Selection is owned by a
// single product screen and is never shared across goroutines.
package options

import (
	"errors"

	"github.com/orderfoodonline/checkout/internal/models"
)

// ErrRequiredSelection signals an attempt to remove the last active value
// of a required group. The selection is left unchanged.
var ErrRequiredSelection = errors.New("at least one selection required in this group")

// Selection maps a group id to its active value ids in activation order.
// Pricing and note composition resolve against group/value declaration
// order, so activation order never affects output.
type Selection map[string][]string

// DefaultSelection seeds the initial selection for a product's groups:
// the first value for single-mode or required groups, empty otherwise.
// This keeps the required-group invariant satisfied from the moment the
// groups are loaded.
func DefaultSelection(groups []models.OptionGroup) Selection {
	sel := make(Selection, len(groups))
	for _, g := range groups {
		if len(g.Values) > 0 && (g.SelectionMode == models.SelectSingle || g.Required) {
			sel[g.ID] = []string{g.Values[0].ID}
		} else {
			sel[g.ID] = nil
		}
	}
	return sel
}

// Toggle applies one user tap on a value and returns the resulting
// selection. The input selection is never mutated.
//
// Unknown group or value ids are a no-op: stale UI state must not crash
// or mutate anything. In single mode the tapped value becomes the only
// active one; there is no toggle-off. In multiple mode the value is
// toggled, except that removing the sole value of a required group is
// rejected with ErrRequiredSelection.
func Toggle(groups []models.OptionGroup, sel Selection, groupID, valueID string) (Selection, error) {
	group := findGroup(groups, groupID)
	if group == nil || group.Value(valueID) == nil {
		return sel, nil
	}

	if group.SelectionMode == models.SelectSingle {
		next := sel.clone()
		next[groupID] = []string{valueID}
		return next, nil
	}

	active := sel[groupID]
	idx := indexOf(active, valueID)

	if idx >= 0 {
		if group.Required && len(active) == 1 {
			return sel, ErrRequiredSelection
		}
		next := sel.clone()
		next[groupID] = append(append([]string{}, active[:idx]...), active[idx+1:]...)
		return next, nil
	}

	next := sel.clone()
	next[groupID] = append(append([]string{}, active...), valueID)
	return next, nil
}

// ValidateRequired checks every required group has at least one active
// value. Groups are checked in declaration order and the first violation
// wins, matching the single-alert UX contract.
func ValidateRequired(groups []models.OptionGroup, sel Selection) (bool, string) {
	for _, g := range groups {
		if g.Required && len(sel[g.ID]) == 0 {
			return false, g.ID
		}
	}
	return true, ""
}

func (s Selection) clone() Selection {
	next := make(Selection, len(s))
	for k, v := range s {
		next[k] = v
	}
	return next
}

func findGroup(groups []models.OptionGroup, id string) *models.OptionGroup {
	for i := range groups {
		if groups[i].ID == id {
			return &groups[i]
		}
	}
	return nil
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
