package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadhlan/shoply/internal/apperr"
	cartdomain "github.com/fadhlan/shoply/internal/cart/domain"
	"github.com/fadhlan/shoply/internal/checkout/domain"
)

type fakeRemote struct {
	mu     sync.Mutex
	orders map[string]domain.Order
	err    error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{orders: make(map[string]domain.Order)}
}

func (f *fakeRemote) Put(_ context.Context, order domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.orders[order.ID] = order
	return nil
}

type fakeMirror struct {
	mu     sync.Mutex
	orders []domain.Order
	err    error
}

func (f *fakeMirror) Insert(_ context.Context, order domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, o := range f.orders {
		if o.ID == order.ID {
			return nil
		}
	}
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeMirror) SelectAll(context.Context) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Order(nil), f.orders...), nil
}

type fakePrices map[string]int64

func (f fakePrices) UnitPrice(_ context.Context, productID string) (int64, error) {
	price, ok := f[productID]
	if !ok {
		return 0, errors.New("unknown product")
	}
	return price, nil
}

func testDraft() domain.Draft {
	lines := []cartdomain.Line{
		{OwnerID: "owner-1", ProductID: "p1", Name: "Keyboard", UnitPrice: 500, Quantity: 3},
	}
	return domain.Draft{
		Address:    "Jl. Sudirman 1",
		City:       "Jakarta",
		PostalCode: "123456",
		Lines:      lines,
		Total:      domain.TotalOf(lines),
		ComputedAt: time.Now(),
	}
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestPlaceOrderSuccess(t *testing.T) {
	remote := newFakeRemote()
	mirror := &fakeMirror{}
	placedAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc := NewService(remote, mirror, discard(), WithClock(func() time.Time { return placedAt }))

	order, err := svc.PlaceOrder(context.Background(), "owner-1", testDraft())
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "owner-1", order.OwnerID)
	assert.Equal(t, int64(1500), order.Total)
	assert.Equal(t, placedAt, order.PlacedAt)

	require.Contains(t, remote.orders, order.ID)
	require.Len(t, mirror.orders, 1)
	assert.Equal(t, order.ID, mirror.orders[0].ID)
}

func TestPlaceOrderTotalIsFrozenSnapshot(t *testing.T) {
	remote := newFakeRemote()
	svc := NewService(remote, &fakeMirror{}, discard())

	draft := testDraft()
	order, err := svc.PlaceOrder(context.Background(), "owner-1", draft)
	require.NoError(t, err)

	// Mutating the draft's lines afterwards must not reach the order.
	draft.Lines[0].Quantity = 99

	stored := remote.orders[order.ID]
	assert.Equal(t, int64(3), stored.Lines[0].Quantity)
	assert.Equal(t, int64(1500), stored.Total)
}

func TestPlaceOrderValidation(t *testing.T) {
	newSvc := func() (*Service, *fakeRemote, *fakeMirror) {
		remote := newFakeRemote()
		mirror := &fakeMirror{}
		return NewService(remote, mirror, discard()), remote, mirror
	}

	cases := []struct {
		name   string
		mutate func(*domain.Draft)
	}{
		{"empty cart", func(d *domain.Draft) { d.Lines = nil }},
		{"blank address", func(d *domain.Draft) { d.Address = "  " }},
		{"blank city", func(d *domain.Draft) { d.City = "" }},
		{"blank postal code", func(d *domain.Draft) { d.PostalCode = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, remote, mirror := newSvc()
			draft := testDraft()
			tc.mutate(&draft)

			_, err := svc.PlaceOrder(context.Background(), "owner-1", draft)
			assert.ErrorIs(t, err, apperr.ErrInvalidOrder)
			assert.Empty(t, remote.orders, "no remote write on invalid draft")
			assert.Empty(t, mirror.orders, "no mirror write on invalid draft")
		})
	}

	t.Run("blank owner", func(t *testing.T) {
		svc, _, _ := newSvc()
		_, err := svc.PlaceOrder(context.Background(), "", testDraft())
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})
}

func TestPlaceOrderRemoteFailure(t *testing.T) {
	remote := newFakeRemote()
	remote.err = errors.New("connection refused")
	mirror := &fakeMirror{}
	svc := NewService(remote, mirror, discard())

	_, err := svc.PlaceOrder(context.Background(), "owner-1", testDraft())
	assert.ErrorIs(t, err, apperr.ErrRemoteWrite)
	assert.Empty(t, mirror.orders, "mirror must never hold an order absent from the remote store")
}

func TestPlaceOrderMirrorFailureIsRepaired(t *testing.T) {
	remote := newFakeRemote()
	mirror := &fakeMirror{err: errors.New("disk is full")}
	svc := NewService(remote, mirror, discard())

	order, err := svc.PlaceOrder(context.Background(), "owner-1", testDraft())
	require.NoError(t, err, "remote success is the commit point")
	require.Contains(t, remote.orders, order.ID)
	assert.Empty(t, mirror.orders)

	// Mirror recovers; the next history read repairs it.
	mirror.mu.Lock()
	mirror.err = nil
	mirror.mu.Unlock()

	orders, err := svc.Orders(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestPlaceOrderPriceDrift(t *testing.T) {
	remote := newFakeRemote()
	svc := NewService(remote, &fakeMirror{}, discard(),
		WithPriceReader(fakePrices{"p1": 600}))

	_, err := svc.PlaceOrder(context.Background(), "owner-1", testDraft())
	assert.ErrorIs(t, err, apperr.ErrInvalidOrder)
	assert.Empty(t, remote.orders)
}

func TestPlaceOrderPriceCheckPasses(t *testing.T) {
	remote := newFakeRemote()
	svc := NewService(remote, &fakeMirror{}, discard(),
		WithPriceReader(fakePrices{"p1": 500}))

	_, err := svc.PlaceOrder(context.Background(), "owner-1", testDraft())
	assert.NoError(t, err)
}

func TestOrdersFiltersByOwner(t *testing.T) {
	remote := newFakeRemote()
	mirror := &fakeMirror{}
	svc := NewService(remote, mirror, discard())

	_, err := svc.PlaceOrder(context.Background(), "owner-1", testDraft())
	require.NoError(t, err)
	_, err = svc.PlaceOrder(context.Background(), "owner-2", testDraft())
	require.NoError(t, err)

	orders, err := svc.Orders(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "owner-1", orders[0].OwnerID)

	_, err = svc.Orders(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}
