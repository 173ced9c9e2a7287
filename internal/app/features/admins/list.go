// internal/app/features/admins/list.go
package admins

import (
	"net/http"

	adminstore "github.com/verdantapp/verdant/internal/app/store/admins"
	userstore "github.com/verdantapp/verdant/internal/app/store/users"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
)

// ServeListAdmins handles GET /api/v1/admin/all. Passwords are excluded
// at the query projection, not just at serialization.
func (h *Handler) ServeListAdmins(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin list")
	defer cancel()

	caller, err := h.currentAdmin(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while listing admins", err)
		return
	}
	if caller == nil {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	admins, err := adminstore.New(h.DB).List(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while listing admins", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Admins retrieved successfully", admins)
}

// ServeListUsers handles GET /api/v1/admin/users.
func (h *Handler) ServeListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "user list")
	defer cancel()

	caller, err := h.currentAdmin(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while listing users", err)
		return
	}
	if caller == nil {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	users, err := userstore.New(h.DB).List(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while listing users", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Users retrieved successfully", users)
}
