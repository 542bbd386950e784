package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/fadhlan/shoply/internal/cart/domain"
)

type fakeCart struct {
	lines map[string][]cartdomain.Line
	err   error
}

func (f fakeCart) Items(_ context.Context, ownerID string) ([]cartdomain.Line, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lines[ownerID], nil
}

func TestViewStateRefresh(t *testing.T) {
	cart := fakeCart{lines: map[string][]cartdomain.Line{
		"owner-1": {
			{ProductID: "p1", UnitPrice: 500, Quantity: 3},
			{ProductID: "p2", UnitPrice: 250, Quantity: 1},
		},
	}}
	view := NewViewState(cart)

	t.Run("total is recomputed from the store", func(t *testing.T) {
		snap, err := view.Refresh(context.Background(), "owner-1", NewForm())
		require.NoError(t, err)

		assert.Len(t, snap.Lines, 2)
		assert.Equal(t, int64(1750), snap.Total)
		assert.False(t, snap.FormValid)
		assert.False(t, snap.Submitting)
	})

	t.Run("empty cart yields zero total", func(t *testing.T) {
		snap, err := view.Refresh(context.Background(), "owner-2", NewForm())
		require.NoError(t, err)

		assert.Empty(t, snap.Lines)
		assert.Zero(t, snap.Total)
	})

	t.Run("form fields and flags are carried", func(t *testing.T) {
		form := validForm()
		require.NoError(t, form.BeginSubmit())

		snap, err := view.Refresh(context.Background(), "owner-1", form)
		require.NoError(t, err)

		assert.Equal(t, "Jl. Sudirman 1", snap.Address)
		assert.Equal(t, "Jakarta", snap.City)
		assert.Equal(t, "123456", snap.PostalCode)
		assert.True(t, snap.FormValid)
		assert.True(t, snap.Submitting)
	})
}
