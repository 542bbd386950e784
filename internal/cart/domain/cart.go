package domain

// Line is one product entry in an owner's cart. At most one line exists
// per (OwnerID, ProductID); a line never rests at quantity zero.
type Line struct {
	OwnerID   string `json:"owner_id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	ImageRef  string `json:"image_ref"`
	Quantity  int64  `json:"quantity"`
}

// Direction selects which way UpdateQuantity moves a line.
type Direction int

const (
	Increment Direction = iota
	Decrement
)
