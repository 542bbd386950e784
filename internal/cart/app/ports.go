package app

import (
	"context"

	"github.com/fadhlan/shoply/internal/cart/domain"
)

// LineStore is the durable per-device cart table. The cart service is
// its only writer.
type LineStore interface {
	InsertIfAbsent(ctx context.Context, line domain.Line) error
	IncrementQuantity(ctx context.Context, ownerID, productID string) error
	DecrementQuantity(ctx context.Context, ownerID, productID string) error
	DeleteLine(ctx context.Context, ownerID, productID string) error
	SelectAll(ctx context.Context, ownerID string) ([]domain.Line, error)
	DeleteAll(ctx context.Context, ownerID string) error
}
