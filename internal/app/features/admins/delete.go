// internal/app/features/admins/delete.go
package admins

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/verdantapp/verdant/internal/app/policy/adminpolicy"
	adminstore "github.com/verdantapp/verdant/internal/app/store/admins"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
)

// ServeDelete handles DELETE /api/v1/admin/delete/{id}. The target is
// loaded read-only first and the permission check runs before anything
// is removed, so a denied request touches nothing.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin delete")
	defer cancel()

	targetID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid admin id")
		return
	}

	store := adminstore.New(h.DB)

	target, err := store.GetByID(ctx, targetID)
	if err == mongo.ErrNoDocuments {
		httpjson.WriteError(w, http.StatusNotFound, "Admin not found")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while deleting the admin", err)
		return
	}

	caller, err := h.currentAdmin(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while deleting the admin", err)
		return
	}
	if !adminpolicy.CanDeleteAdmin(caller, target) {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	n, err := store.Delete(ctx, targetID)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while deleting the admin", err)
		return
	}
	if n == 0 {
		httpjson.WriteError(w, http.StatusNotFound, "Admin not found")
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Admin deleted successfully", nil)
}
