package options

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/orderfoodonline/checkout/internal/models"
)

// Submission is the validated output of one product configuration:
// the cart request body, the human-readable note, and the line total.
type Submission struct {
	CartPayload  models.AddCartRequest
	ComposedNote string
	LineTotal    decimal.Decimal
}

// BuildSubmission validates the selection against its groups and derives
// the submittable payload. The required-group gate runs first and cannot
// be bypassed: a violation returns ErrRequiredSelection (wrapped with
// the group name) and no payload.
//
// Groups with an empty selection are omitted from the payload entirely.
// The function reads its inputs and nothing else; the selection is not
// mutated and no I/O happens here.
func BuildSubmission(product models.Product, groups []models.OptionGroup, sel Selection, quantity int, userNote string) (*Submission, error) {
	if ok, groupID := ValidateRequired(groups, sel); !ok {
		name := groupID
		if g := findGroup(groups, groupID); g != nil {
			name = g.Name
		}
		return nil, fmt.Errorf("group %q: %w", name, ErrRequiredSelection)
	}

	if quantity < 1 {
		quantity = 1
	}

	var selected []models.SelectedGroup
	for _, g := range groups {
		active := sel[g.ID]
		if len(active) == 0 {
			continue
		}

		sg := models.SelectedGroup{
			GroupID:       g.ID,
			GroupName:     g.Name,
			SelectionMode: g.SelectionMode,
		}
		for _, v := range g.Values {
			if indexOf(active, v.ID) < 0 {
				continue
			}
			sg.Values = append(sg.Values, models.SelectedValue{
				ValueID:         v.ID,
				Label:           v.Label,
				PriceAdjustment: v.PriceAdjustment,
			})
		}
		selected = append(selected, sg)
	}

	return &Submission{
		CartPayload: models.AddCartRequest{
			ProductID: product.ID,
			Quantity:  quantity,
			Options:   selected,
		},
		ComposedNote: ComposeNote(ActiveLabels(groups, sel), userNote),
		LineTotal:    LineTotal(product.BasePrice, Extra(groups, sel), quantity),
	}, nil
}
