package app

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/fadhlan/shoply/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// Search runs one catalog page query. The price sort is applied to the
// returned page, not pushed into the store, so paging stays stable on
// the id cursor.
func (s *Service) Search(ctx context.Context, q domain.Query) (domain.Page, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return domain.Page{}, ErrInvalidInput
	}

	page, err := s.repo.Search(ctx, q)
	if err != nil {
		return domain.Page{}, err
	}

	switch q.Sort {
	case domain.SortLowToHigh:
		sort.SliceStable(page.Products, func(i, j int) bool {
			return page.Products[i].Price < page.Products[j].Price
		})
	case domain.SortHighToLow:
		sort.SliceStable(page.Products, func(i, j int) bool {
			return page.Products[i].Price > page.Products[j].Price
		})
	}

	return page, nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *Service) Brands(ctx context.Context) ([]string, error) {
	return s.repo.Brands(ctx)
}

// UnitPrice satisfies the checkout price re-check port.
func (s *Service) UnitPrice(ctx context.Context, productID string) (int64, error) {
	p, err := s.Get(ctx, productID)
	if err != nil {
		return 0, err
	}
	return p.Price, nil
}
