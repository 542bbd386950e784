package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	cartapp "github.com/fadhlan/shoply/internal/cart/app"
	cartdomain "github.com/fadhlan/shoply/internal/cart/domain"
	catalogapp "github.com/fadhlan/shoply/internal/catalog/app"
	catalogdomain "github.com/fadhlan/shoply/internal/catalog/domain"
	checkoutapp "github.com/fadhlan/shoply/internal/checkout/app"
	checkoutdomain "github.com/fadhlan/shoply/internal/checkout/domain"
)

type handlers struct {
	cart     *cartapp.Service
	checkout *checkoutapp.Service
	catalog  *catalogapp.Service
	view     *checkoutapp.ViewState
	forms    *checkoutapp.FormRegistry
	log      *slog.Logger
}

// refresh recomputes the view snapshot after a mutation and writes it.
func (h *handlers) refresh(w http.ResponseWriter, r *http.Request, ownerID string) {
	snap, err := h.view.Refresh(r.Context(), ownerID, h.forms.Get(ownerID))
	if err != nil {
		writeError(w, err)
		return
	}
	if snap.Lines == nil {
		snap.Lines = []cartdomain.Line{}
	}
	writeJSON(w, http.StatusOK, snap)
}

// --- cart ---

type addToCartRequest struct {
	ProductID string `json:"product_id"`
}

func (h *handlers) addToCart(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, catalogapp.ErrInvalidInput)
		return
	}

	product, err := h.catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, err)
		return
	}

	err = h.cart.Add(r.Context(), ownerID, cartapp.Product{
		ID:        product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		ImageRef:  product.ImageRef,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.refresh(w, r, ownerID)
}

func (h *handlers) updateQuantity(dir cartdomain.Direction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFrom(r)
		if err != nil {
			writeError(w, err)
			return
		}

		productID := chi.URLParam(r, "productID")
		if err := h.cart.UpdateQuantity(r.Context(), ownerID, productID, dir); err != nil {
			writeError(w, err)
			return
		}

		h.refresh(w, r, ownerID)
	}
}

func (h *handlers) removeFromCart(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.cart.Remove(r.Context(), ownerID, chi.URLParam(r, "productID")); err != nil {
		writeError(w, err)
		return
	}

	h.refresh(w, r, ownerID)
}

func (h *handlers) clearCart(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.cart.Clear(r.Context(), ownerID); err != nil {
		writeError(w, err)
		return
	}

	h.refresh(w, r, ownerID)
}

func (h *handlers) getCart(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.refresh(w, r, ownerID)
}

// --- checkout form ---

type formRequest struct {
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
}

func (h *handlers) updateForm(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req formRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, catalogapp.ErrInvalidInput)
		return
	}

	form := h.forms.Get(ownerID)
	if req.Address != nil {
		form.SetAddress(*req.Address)
	}
	if req.City != nil {
		form.SetCity(*req.City)
	}
	if req.PostalCode != nil {
		if !form.SetPostalCode(*req.PostalCode) {
			h.log.Warn("postal code rejected: too long", slog.String("owner_id", ownerID))
		}
	}

	h.refresh(w, r, ownerID)
}

// --- order placement ---

type placeOrderResponse struct {
	Order    checkoutdomain.Order `json:"order"`
	Snapshot checkoutapp.Snapshot `json:"snapshot"`
}

// placeOrder runs the explicit two-call sequence: place the order, then
// clear the cart and reset the form. A cart-clear failure after a
// successful placement does not void the order; the cart reconciles on
// the next read.
func (h *handlers) placeOrder(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	form := h.forms.Get(ownerID)
	if err := form.BeginSubmit(); err != nil {
		writeError(w, err)
		return
	}

	lines, err := h.cart.Items(r.Context(), ownerID)
	if err != nil {
		form.EndSubmit()
		writeError(w, err)
		return
	}

	address, city, postalCode := form.Fields()
	draft := checkoutdomain.Draft{
		Address:    address,
		City:       city,
		PostalCode: postalCode,
		Lines:      lines,
		Total:      checkoutdomain.TotalOf(lines),
		ComputedAt: time.Now(),
	}

	order, err := h.checkout.PlaceOrder(r.Context(), ownerID, draft)
	if err != nil {
		form.EndSubmit()
		writeError(w, err)
		return
	}

	if err := h.cart.Clear(r.Context(), ownerID); err != nil {
		h.log.Warn("cart clear failed after placement", slog.String("order_id", order.ID), slog.Any("err", err))
	}
	form.Reset()

	snap, err := h.view.Refresh(r.Context(), ownerID, form)
	if err != nil {
		// The order stands; report it with an empty snapshot.
		h.log.Warn("snapshot refresh failed after placement", slog.Any("err", err))
		snap = checkoutapp.Snapshot{}
	}
	if snap.Lines == nil {
		snap.Lines = []cartdomain.Line{}
	}

	writeJSON(w, http.StatusCreated, placeOrderResponse{Order: order, Snapshot: snap})
}

func (h *handlers) listOrders(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	orders, err := h.checkout.Orders(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	if orders == nil {
		orders = []checkoutdomain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// --- catalog ---

func (h *handlers) searchProducts(w http.ResponseWriter, r *http.Request) {
	q := catalogdomain.Query{
		Keyword: r.URL.Query().Get("q"),
		Cursor:  r.URL.Query().Get("cursor"),
		Sort:    catalogdomain.SortOrder(r.URL.Query().Get("sort")),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Limit = n
		}
	}
	if v := r.URL.Query().Get("categories"); v != "" {
		q.Categories = strings.Split(v, ",")
	}
	if v := r.URL.Query().Get("brands"); v != "" {
		q.Brands = strings.Split(v, ",")
	}
	if v := r.URL.Query().Get("min_price"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			q.MinPrice = &n
		}
	}
	if v := r.URL.Query().Get("max_price"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			q.MaxPrice = &n
		}
	}

	page, err := h.catalog.Search(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	if page.Products == nil {
		page.Products = []catalogdomain.Product{}
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *handlers) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handlers) listCategories(w http.ResponseWriter, r *http.Request) {
	values, err := h.catalog.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

func (h *handlers) listBrands(w http.ResponseWriter, r *http.Request) {
	values, err := h.catalog.Brands(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}
