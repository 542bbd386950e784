package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/fadhlan/shoply/internal/apperr"
	"github.com/fadhlan/shoply/internal/identity"
)

type ctxKey int

const ownerKey ctxKey = iota

// requireOwner resolves the bearer token once per request and threads
// the owner id through the request context. Everything below the
// transport works on explicit owner ids.
func requireOwner(resolver identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			ownerID, err := resolver.CurrentUser(r.Context(), token)
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ownerKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ownerFrom(r *http.Request) (string, error) {
	ownerID, ok := r.Context().Value(ownerKey).(string)
	if !ok || ownerID == "" {
		return "", apperr.ErrUnauthenticated
	}
	return ownerID, nil
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
