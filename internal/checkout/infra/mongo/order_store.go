package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fadhlan/shoply/internal/checkout/domain"
)

// OrderStore writes placed orders to the authoritative document store,
// keyed by order id with last-write-wins replace semantics. A circuit
// breaker keeps a flapping remote from being hammered; an open breaker
// surfaces like any other remote write failure.
type OrderStore struct {
	collection *mongo.Collection
	breaker    *gobreaker.CircuitBreaker[struct{}]
}

func NewOrderStore(collection *mongo.Collection) *OrderStore {
	return &OrderStore{
		collection: collection,
		breaker: gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
			Name:    "remote-order-store",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (s *OrderStore) Put(ctx context.Context, order domain.Order) error {
	_, err := s.breaker.Execute(func() (struct{}, error) {
		filter := bson.M{"_id": order.ID}
		opts := options.Replace().SetUpsert(true)

		if _, err := s.collection.ReplaceOne(ctx, filter, order, opts); err != nil {
			return struct{}{}, fmt.Errorf("failed to put order %s: %w", order.ID, err)
		}
		return struct{}{}, nil
	})
	return err
}

// Get fetches a single order by id, mainly for diagnostics.
func (s *OrderStore) Get(ctx context.Context, id string) (domain.Order, error) {
	var order domain.Order
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return order, nil
}
