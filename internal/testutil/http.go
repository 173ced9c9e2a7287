package testutil

import (
	"net/http"
	"net/http/httptest"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/verdantapp/verdant/internal/app/system/auth"
)

// AsUser injects a user identity into the request context, bypassing
// the bearer-token middleware.
func AsUser(r *http.Request, id primitive.ObjectID) *http.Request {
	return auth.WithTestCaller(r, auth.Caller{ID: id.Hex(), Kind: auth.KindUser})
}

// AsAdmin injects an admin identity into the request context.
func AsAdmin(r *http.Request, id primitive.ObjectID) *http.Request {
	return auth.WithTestCaller(r, auth.Caller{ID: id.Hex(), Kind: auth.KindAdmin})
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}
