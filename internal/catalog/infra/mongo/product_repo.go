package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fadhlan/shoply/internal/catalog/app"
	"github.com/fadhlan/shoply/internal/catalog/domain"
)

// ProductRepo queries the catalog collection. Documents carry a
// search_keywords array the keyword filter matches against; paging is a
// strictly increasing scan over _id.
type ProductRepo struct {
	collection *mongo.Collection
}

func NewProductRepo(collection *mongo.Collection) *ProductRepo {
	return &ProductRepo{collection: collection}
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Product{}, app.ErrNotFound
		}
		return domain.Product{}, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return p, nil
}

func (r *ProductRepo) Search(ctx context.Context, q domain.Query) (domain.Page, error) {
	filter := bson.M{}

	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		filter["search_keywords"] = strings.ToLower(kw)
	}
	if len(q.Categories) > 0 {
		filter["category"] = bson.M{"$in": q.Categories}
	}
	if len(q.Brands) > 0 {
		filter["brand"] = bson.M{"$in": q.Brands}
	}

	price := bson.M{}
	if q.MinPrice != nil {
		price["$gte"] = *q.MinPrice
	}
	if q.MaxPrice != nil {
		price["$lte"] = *q.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if q.Cursor != "" {
		filter["_id"] = bson.M{"$gt": q.Cursor}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(q.Limit))

	cur, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return domain.Page{}, fmt.Errorf("failed to search products: %w", err)
	}
	defer cur.Close(ctx)

	var products []domain.Product
	if err := cur.All(ctx, &products); err != nil {
		return domain.Page{}, fmt.Errorf("failed to decode products: %w", err)
	}

	page := domain.Page{Products: products}
	// A full page means there may be more; a short page is the end.
	if len(products) == q.Limit {
		page.Cursor = products[len(products)-1].ID
	}

	return page, nil
}

func (r *ProductRepo) Categories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "category")
}

func (r *ProductRepo) Brands(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "brand")
}

func (r *ProductRepo) distinct(ctx context.Context, field string) ([]string, error) {
	raw, err := r.collection.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s values: %w", field, err)
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			values = append(values, s)
		}
	}
	return values, nil
}
