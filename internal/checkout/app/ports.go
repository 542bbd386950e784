package app

import (
	"context"

	cartdomain "github.com/fadhlan/shoply/internal/cart/domain"
	"github.com/fadhlan/shoply/internal/checkout/domain"
)

// RemoteOrderStore is the authoritative multi-device order record. Writes
// are keyed by order id, last-write-wins.
type RemoteOrderStore interface {
	Put(ctx context.Context, order domain.Order) error
}

// OrderMirror is the local read-cache of remotely placed orders. Insert
// must be idempotent on order id so saga repair can retry safely.
type OrderMirror interface {
	Insert(ctx context.Context, order domain.Order) error
	SelectAll(ctx context.Context) ([]domain.Order, error)
}

// CartReader is the point-in-time view of an owner's cart the checkout
// needs to build a snapshot.
type CartReader interface {
	Items(ctx context.Context, ownerID string) ([]cartdomain.Line, error)
}

// PriceReader re-checks a line's current catalog price before an order is
// committed. Optional; a nil reader skips the check.
type PriceReader interface {
	UnitPrice(ctx context.Context, productID string) (int64, error)
}
