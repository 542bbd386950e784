package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fadhlan/shoply/internal/apperr"
	"github.com/fadhlan/shoply/internal/cart/domain"
)

// Product is the slice of a catalog product the cart cares about.
type Product struct {
	ID        string
	Name      string
	UnitPrice int64
	ImageRef  string
}

// Service owns every cart mutation so the line invariants hold no matter
// who the caller is.
type Service struct {
	store LineStore
	log   *slog.Logger
}

func NewService(store LineStore, log *slog.Logger) *Service {
	return &Service{
		store: store,
		log:   log,
	}
}

// Add inserts a new line with quantity 1, or bumps the quantity if a line
// for (owner, product) already exists. The insert is insert-or-ignore, so
// a concurrent duplicate add converges on the increment path instead of a
// second row.
func (s *Service) Add(ctx context.Context, ownerID string, p Product) error {
	if strings.TrimSpace(ownerID) == "" {
		return apperr.ErrUnauthenticated
	}

	lines, err := s.store.SelectAll(ctx, ownerID)
	if err != nil {
		s.log.Error("cart add: select failed", slog.Any("err", err))
		return apperr.Storage(err)
	}

	for _, line := range lines {
		if line.ProductID == p.ID {
			if err := s.store.IncrementQuantity(ctx, ownerID, p.ID); err != nil {
				s.log.Error("cart add: increment failed", slog.Any("err", err))
				return apperr.Storage(err)
			}
			s.log.Debug("cart add: incremented existing line", slog.String("product_id", p.ID))
			return nil
		}
	}

	line := domain.Line{
		OwnerID:   ownerID,
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.UnitPrice,
		ImageRef:  p.ImageRef,
		Quantity:  1,
	}
	if err := s.store.InsertIfAbsent(ctx, line); err != nil {
		s.log.Error("cart add: insert failed", slog.Any("err", err))
		return apperr.Storage(err)
	}

	s.log.Debug("cart add: new line", slog.String("product_id", p.ID))
	return nil
}

// UpdateQuantity moves a line's quantity by one in the given direction.
// A decrement that reaches zero deletes the line; a decrement on a line
// that does not exist is a deliberate no-op, not an error.
func (s *Service) UpdateQuantity(ctx context.Context, ownerID, productID string, dir domain.Direction) error {
	if strings.TrimSpace(ownerID) == "" {
		return apperr.ErrUnauthenticated
	}

	if dir == domain.Increment {
		if err := s.store.IncrementQuantity(ctx, ownerID, productID); err != nil {
			s.log.Error("cart update: increment failed", slog.Any("err", err))
			return apperr.Storage(err)
		}
		return nil
	}

	if err := s.store.DecrementQuantity(ctx, ownerID, productID); err != nil {
		s.log.Error("cart update: decrement failed", slog.Any("err", err))
		return apperr.Storage(err)
	}

	lines, err := s.store.SelectAll(ctx, ownerID)
	if err != nil {
		s.log.Error("cart update: select failed", slog.Any("err", err))
		return apperr.Storage(err)
	}

	for _, line := range lines {
		if line.ProductID == productID && line.Quantity <= 0 {
			if err := s.store.DeleteLine(ctx, ownerID, productID); err != nil {
				s.log.Error("cart update: delete at zero failed", slog.Any("err", err))
				return apperr.Storage(err)
			}
			s.log.Debug("cart update: removed line at zero quantity", slog.String("product_id", productID))
		}
	}

	return nil
}

// Remove deletes the line unconditionally. Removing an absent line is
// not an error.
func (s *Service) Remove(ctx context.Context, ownerID, productID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return apperr.ErrUnauthenticated
	}

	if err := s.store.DeleteLine(ctx, ownerID, productID); err != nil {
		s.log.Error("cart remove failed", slog.Any("err", err))
		return apperr.Storage(err)
	}
	return nil
}

// Items returns all of the owner's lines in insertion order.
func (s *Service) Items(ctx context.Context, ownerID string) ([]domain.Line, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, apperr.ErrUnauthenticated
	}

	lines, err := s.store.SelectAll(ctx, ownerID)
	if err != nil {
		s.log.Error("cart items failed", slog.Any("err", err))
		return nil, apperr.Storage(err)
	}
	return lines, nil
}

// Clear removes every line the owner has. Used after a successful order
// placement and for explicit cart reset.
func (s *Service) Clear(ctx context.Context, ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return apperr.ErrUnauthenticated
	}

	if err := s.store.DeleteAll(ctx, ownerID); err != nil {
		s.log.Error("cart clear failed", slog.Any("err", err))
		return apperr.Storage(err)
	}
	return nil
}
