package app

import (
	"context"

	"github.com/fadhlan/shoply/internal/catalog/domain"
)

type ProductRepo interface {
	Get(ctx context.Context, id string) (domain.Product, error)
	Search(ctx context.Context, q domain.Query) (domain.Page, error)
	Categories(ctx context.Context) ([]string, error)
	Brands(ctx context.Context) ([]string, error)
}
