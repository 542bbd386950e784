package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fadhlan/shoply/internal/apperr"
	catalogapp "github.com/fadhlan/shoply/internal/catalog/app"
	checkoutapp "github.com/fadhlan/shoply/internal/checkout/app"
)

func TestStatusFromError(t *testing.T) {
	t.Run("Unauthenticated -> 401", func(t *testing.T) {
		gotStatus, gotCode := statusFromError(apperr.ErrUnauthenticated)
		if gotStatus != http.StatusUnauthorized || gotCode != "UNAUTHENTICATED" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("InvalidOrder -> 400", func(t *testing.T) {
		gotStatus, gotCode := statusFromError(apperr.ErrInvalidOrder)
		if gotStatus != http.StatusBadRequest || gotCode != "INVALID_ORDER" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("wrapped InvalidOrder keeps its class", func(t *testing.T) {
		err := fmt.Errorf("%w: price changed", apperr.ErrInvalidOrder)
		gotStatus, gotCode := statusFromError(err)
		if gotStatus != http.StatusBadRequest || gotCode != "INVALID_ORDER" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("SubmitInFlight -> 409", func(t *testing.T) {
		gotStatus, gotCode := statusFromError(checkoutapp.ErrSubmitInFlight)
		if gotStatus != http.StatusConflict || gotCode != "SUBMIT_IN_FLIGHT" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("RemoteWrite -> 502", func(t *testing.T) {
		gotStatus, gotCode := statusFromError(apperr.RemoteWrite(errors.New("down")))
		if gotStatus != http.StatusBadGateway || gotCode != "REMOTE_WRITE_FAILURE" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("Storage -> 500", func(t *testing.T) {
		gotStatus, gotCode := statusFromError(apperr.Storage(errors.New("disk")))
		if gotStatus != http.StatusInternalServerError || gotCode != "STORAGE_FAILURE" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("NotFound -> 404", func(t *testing.T) {
		gotStatus, gotCode := statusFromError(catalogapp.ErrNotFound)
		if gotStatus != http.StatusNotFound || gotCode != "NOT_FOUND" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("unclassified -> 500 INTERNAL", func(t *testing.T) {
		gotStatus, gotCode := statusFromError(errors.New("boom"))
		if gotStatus != http.StatusInternalServerError || gotCode != "INTERNAL" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})
}
