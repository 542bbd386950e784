package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	cartapp "github.com/fadhlan/shoply/internal/cart/app"
	cartdomain "github.com/fadhlan/shoply/internal/cart/domain"
	catalogapp "github.com/fadhlan/shoply/internal/catalog/app"
	checkoutapp "github.com/fadhlan/shoply/internal/checkout/app"
	"github.com/fadhlan/shoply/internal/identity"
)

type Deps struct {
	Cart     *cartapp.Service
	Checkout *checkoutapp.Service
	Catalog  *catalogapp.Service
	View     *checkoutapp.ViewState
	Forms    *checkoutapp.FormRegistry
	Resolver identity.Resolver
	Log      *slog.Logger
}

// NewRouter wires the core operations onto a chi router. The catalog is
// public; cart, checkout and order history require a resolved owner.
func NewRouter(deps Deps) http.Handler {
	h := &handlers{
		cart:     deps.Cart,
		checkout: deps.Checkout,
		catalog:  deps.Catalog,
		view:     deps.View,
		forms:    deps.Forms,
		log:      deps.Log,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", h.searchProducts)
		r.Get("/products/categories", h.listCategories)
		r.Get("/products/brands", h.listBrands)
		r.Get("/products/{productID}", h.getProduct)

		r.Group(func(r chi.Router) {
			r.Use(requireOwner(deps.Resolver))

			r.Get("/cart", h.getCart)
			r.Post("/cart/items", h.addToCart)
			r.Post("/cart/items/{productID}/increment", h.updateQuantity(cartdomain.Increment))
			r.Post("/cart/items/{productID}/decrement", h.updateQuantity(cartdomain.Decrement))
			r.Delete("/cart/items/{productID}", h.removeFromCart)
			r.Delete("/cart", h.clearCart)

			r.Put("/checkout/form", h.updateForm)
			r.Post("/checkout/order", h.placeOrder)

			r.Get("/orders", h.listOrders)
		})
	})

	return r
}
