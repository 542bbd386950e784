package domain

import (
	"strings"
	"time"

	cartdomain "github.com/fadhlan/shoply/internal/cart/domain"
)

// Order is a placed order. It embeds a value snapshot of the cart lines
// at placement time, so later cart mutations cannot alter it. Orders are
// created exactly once and never mutated or deleted by the client.
type Order struct {
	ID         string            `json:"id" bson:"_id"`
	OwnerID    string            `json:"owner_id" bson:"owner_id"`
	Lines      []cartdomain.Line `json:"lines" bson:"lines"`
	Address    string            `json:"address" bson:"address"`
	City       string            `json:"city" bson:"city"`
	PostalCode string            `json:"postal_code" bson:"postal_code"`
	Total      int64             `json:"total" bson:"total"`
	PlacedAt   time.Time         `json:"placed_at" bson:"placed_at"`
}

// Draft is the transient, in-memory input to order placement. It is
// discarded after the placement attempt, success or failure.
type Draft struct {
	Address    string
	City       string
	PostalCode string
	Lines      []cartdomain.Line
	Total      int64
	ComputedAt time.Time
}

// Validate reports whether the draft is structurally complete: at least
// one line item and no blank shipping field. No partial order is ever
// persisted.
func (d Draft) Validate() bool {
	return len(d.Lines) > 0 &&
		strings.TrimSpace(d.Address) != "" &&
		strings.TrimSpace(d.City) != "" &&
		strings.TrimSpace(d.PostalCode) != ""
}

// TotalOf computes the sum of unit price times quantity over lines.
func TotalOf(lines []cartdomain.Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.UnitPrice * l.Quantity
	}
	return total
}
