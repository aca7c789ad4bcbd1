package middleware

import (
	"context"
	"net/http"

	"github.com/ledgerhouse/minibank-server/internal/logger"
	"github.com/ledgerhouse/minibank-server/internal/model"
)

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying the resolved identity. A nil
// identity marks the request as anonymous.
func WithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the identity resolved for this request, or
// nil for anonymous callers.
func IdentityFromContext(ctx context.Context) *model.Identity {
	identity, _ := ctx.Value(identityKey).(*model.Identity)
	return identity
}

// TransportFromRequest adapts an HTTP request into the transport shapes the
// session resolver understands: the parsed cookie jar, the raw Cookie
// header, and a header accessor.
func TransportFromRequest(r *http.Request) model.RequestTransport {
	cookies := map[string]string{}
	for _, c := range r.Cookies() {
		cookies[c.Name] = c.Value
	}
	return model.RequestTransport{
		Cookies:         cookies,
		RawCookieHeader: r.Header.Get("Cookie"),
		HeaderGet:       r.Header.Get,
	}
}

// IdentityResolver resolves a request transport to an identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, transport model.RequestTransport) (*model.Identity, error)
}

// Identity resolves the session once per request and threads the result
// through the request context.
type Identity struct {
	resolver IdentityResolver
	logger   *logger.Logger
}

func NewIdentity(resolver IdentityResolver, logger *logger.Logger) *Identity {
	return &Identity{resolver: resolver, logger: logger}
}

func (m *Identity) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.resolver.Resolve(r.Context(), TransportFromRequest(r))
		if err != nil {
			m.logger.Error("Identity middleware: resolution failed", "error", err.Error())
			http.Error(w, `{"error":{"code":"internal_error","message":"internal server error"}}`, http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// RequireAuth rejects anonymous requests with 401. It must run after the
// Identity middleware.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromContext(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":"unauthorized","message":"authentication required"}}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
