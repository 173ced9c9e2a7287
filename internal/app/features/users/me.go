// internal/app/features/users/me.go
package users

import (
	"net/http"

	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
)

// ServeMe handles GET /api/v1/user/me. The document is loaded fresh so
// the response reflects any changes made since the token was issued.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "user me")
	defer cancel()

	user, err := h.currentUser(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while fetching the profile", err)
		return
	}
	if user == nil {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Profile retrieved successfully", user)
}
