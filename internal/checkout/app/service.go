package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fadhlan/shoply/internal/apperr"
	cartdomain "github.com/fadhlan/shoply/internal/cart/domain"
	"github.com/fadhlan/shoply/internal/checkout/domain"
)

// Service turns "cart + shipping info" into a persisted order. The
// placement is a two-store saga: the remote write is the commit point,
// the local mirror is repaired afterwards if its write fails.
type Service struct {
	remote RemoteOrderStore
	mirror OrderMirror
	prices PriceReader
	log    *slog.Logger

	now           func() time.Time
	maxConcurrent int

	mu      sync.Mutex
	pending []domain.Order
}

type Option func(*Service)

// WithClock overrides the placement timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPriceReader enables a concurrent catalog price re-check before the
// remote write. A price drift fails the draft as invalid.
func WithPriceReader(p PriceReader) Option {
	return func(s *Service) { s.prices = p }
}

func NewService(remote RemoteOrderStore, mirror OrderMirror, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		remote:        remote,
		mirror:        mirror,
		log:           log,
		now:           time.Now,
		maxConcurrent: 10,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder validates the draft, commits it to the remote store, then
// mirrors it locally. The total is recomputed from the draft's line
// items at placement time and frozen on the order. If the remote write
// fails nothing is written locally. If only the mirror write fails the
// order is still durably placed, so the placement is reported as a
// success and the mirror is repaired on the next history read.
func (s *Service) PlaceOrder(ctx context.Context, ownerID string, draft domain.Draft) (domain.Order, error) {
	if strings.TrimSpace(ownerID) == "" {
		return domain.Order{}, apperr.ErrUnauthenticated
	}

	if !draft.Validate() {
		s.log.Warn("order rejected: incomplete draft", slog.String("owner_id", ownerID))
		return domain.Order{}, apperr.ErrInvalidOrder
	}

	if err := s.checkPrices(ctx, draft); err != nil {
		s.log.Warn("order rejected: price check failed", slog.Any("err", err))
		return domain.Order{}, fmt.Errorf("%w: %w", apperr.ErrInvalidOrder, err)
	}

	order := domain.Order{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Lines:      append([]cartdomain.Line(nil), draft.Lines...),
		Address:    draft.Address,
		City:       draft.City,
		PostalCode: draft.PostalCode,
		Total:      domain.TotalOf(draft.Lines),
		PlacedAt:   s.now(),
	}

	if err := s.remote.Put(ctx, order); err != nil {
		s.log.Error("order placement: remote write failed", slog.String("order_id", order.ID), slog.Any("err", err))
		return domain.Order{}, apperr.RemoteWrite(err)
	}
	s.log.Info("order committed remotely", slog.String("order_id", order.ID))

	if err := s.mirror.Insert(ctx, order); err != nil {
		// Remote is the source of truth; keep the order for lazy repair.
		s.log.Warn("order placement: mirror write failed, queued for repair",
			slog.String("order_id", order.ID), slog.Any("err", err))
		s.mu.Lock()
		s.pending = append(s.pending, order)
		s.mu.Unlock()
		return order, nil
	}

	s.log.Info("order mirrored locally", slog.String("order_id", order.ID))
	return order, nil
}

// Orders returns the owner's locally mirrored orders. Any order whose
// mirror write failed at placement time is retried first.
func (s *Service) Orders(ctx context.Context, ownerID string) ([]domain.Order, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, apperr.ErrUnauthenticated
	}

	s.repairMirror(ctx)

	all, err := s.mirror.SelectAll(ctx)
	if err != nil {
		s.log.Error("order history read failed", slog.Any("err", err))
		return nil, apperr.Storage(err)
	}

	orders := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if o.OwnerID == ownerID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (s *Service) repairMirror(ctx context.Context) {
	s.mu.Lock()
	queued := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, order := range queued {
		if err := s.mirror.Insert(ctx, order); err != nil {
			s.log.Warn("mirror repair failed, re-queued",
				slog.String("order_id", order.ID), slog.Any("err", err))
			s.mu.Lock()
			s.pending = append(s.pending, order)
			s.mu.Unlock()
		}
	}
}

func (s *Service) checkPrices(ctx context.Context, draft domain.Draft) error {
	if s.prices == nil {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range draft.Lines {
		line := draft.Lines[idx]
		g.Go(func() error {
			current, err := s.prices.UnitPrice(ctx, line.ProductID)
			if err != nil {
				return fmt.Errorf("failed to price product %s: %w", line.ProductID, err)
			}
			if current != line.UnitPrice {
				return fmt.Errorf("price changed for product %s: %d -> %d", line.ProductID, line.UnitPrice, current)
			}
			return nil
		})
	}

	return g.Wait()
}
