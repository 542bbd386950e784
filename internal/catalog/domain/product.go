package domain

// Product is a catalog entry. Prices are integer minor currency units.
type Product struct {
	ID       string `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Price    int64  `json:"price" bson:"price"`
	ImageRef string `json:"image_ref" bson:"image_ref"`
	Brand    string `json:"brand" bson:"brand"`
	Category string `json:"category" bson:"category"`
}

// SortOrder is the price ordering applied to a search page.
type SortOrder string

const (
	SortNone      SortOrder = ""
	SortLowToHigh SortOrder = "low_to_high"
	SortHighToLow SortOrder = "high_to_low"
)

// Query is one catalog search request. Cursor is the continuation token
// returned by the previous page, empty for the first page.
type Query struct {
	Keyword    string
	Categories []string
	Brands     []string
	MinPrice   *int64
	MaxPrice   *int64
	Sort       SortOrder
	Limit      int
	Cursor     string
}

// Page is one search result page. Cursor is empty when the catalog is
// exhausted.
type Page struct {
	Products []Product `json:"products"`
	Cursor   string    `json:"cursor,omitempty"`
}
