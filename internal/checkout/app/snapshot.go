package app

import (
	"context"

	cartdomain "github.com/fadhlan/shoply/internal/cart/domain"
	"github.com/fadhlan/shoply/internal/checkout/domain"
)

// Snapshot is the derived cart/checkout view state handed to the UI.
// It has no storage of its own: it is fully recomputed from the cart
// store and form after every mutation, never merged optimistically.
type Snapshot struct {
	Lines      []cartdomain.Line `json:"lines"`
	Total      int64             `json:"total"`
	Address    string            `json:"address"`
	City       string            `json:"city"`
	PostalCode string            `json:"postal_code"`
	FormValid  bool              `json:"form_valid"`
	Submitting bool              `json:"submitting"`
}

// ViewState recomputes the snapshot from the authoritative stores.
type ViewState struct {
	cart CartReader
}

func NewViewState(cart CartReader) *ViewState {
	return &ViewState{cart: cart}
}

// Refresh reads the owner's cart and combines it with the form into a
// fresh snapshot.
func (v *ViewState) Refresh(ctx context.Context, ownerID string, form *Form) (Snapshot, error) {
	lines, err := v.cart.Items(ctx, ownerID)
	if err != nil {
		return Snapshot{}, err
	}

	address, city, postalCode := form.Fields()
	return Snapshot{
		Lines:      lines,
		Total:      domain.TotalOf(lines),
		Address:    address,
		City:       city,
		PostalCode: postalCode,
		FormValid:  form.Valid(),
		Submitting: form.Submitting(),
	}, nil
}
