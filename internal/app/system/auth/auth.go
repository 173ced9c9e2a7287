package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/verdantapp/verdant/internal/app/system/httpjson"
)

// Caller is the resolved identity injected into the request context by
// the bearer-token middleware. Only the id and kind travel with the
// request; handlers load the full user/admin document fresh per request
// so role changes take effect immediately.
type Caller struct {
	ID   string
	Kind string // KindUser | KindAdmin
}

type ctxKey string

const callerKey ctxKey = "caller"

// CurrentCaller returns the caller and a found flag.
func CurrentCaller(r *http.Request) (Caller, bool) {
	c, ok := r.Context().Value(callerKey).(Caller)
	return c, ok
}

// WithTestCaller injects a caller into the request context. Test helper.
func WithTestCaller(r *http.Request, c Caller) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), callerKey, c))
}

// LoadCaller parses the Authorization bearer token if present and puts
// the caller identity into context. Requests without a token, or with a
// token that fails verification, continue anonymously; route groups
// that need identity add RequireSignedIn on top.
func (m *Manager) LoadCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := m.Verify(raw)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), callerKey, Caller{ID: claims.Subject, Kind: claims.Kind})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSignedIn rejects requests without a caller in context with the
// 401 envelope.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentCaller(r); !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "Please login and try again")
			return
		}
		next.ServeHTTP(w, r)
	})
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
