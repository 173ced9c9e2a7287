// internal/app/features/admins/update.go
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

type updateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ServeUpdate handles PUT /api/v1/admin/update/{id}. A superAdmin
// target may only be modified by a superAdmin caller.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin update")
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
		h.ErrLog.Internal(w, r, "An error occurred while updating the admin", err)
		return
	}

	caller, err := h.currentAdmin(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while updating the admin", err)
		return
	}
	if !adminpolicy.CanModifyAdmin(caller, target) {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	var req updateRequest
	if err := httpjson.DecodeBody(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := store.UpdateProfile(ctx, targetID, req.Name, req.Email)
	switch err {
	case nil:
	case adminstore.ErrDuplicateEmail:
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return
	default:
		h.ErrLog.Internal(w, r, "An error occurred while updating the admin", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Admin updated successfully", updated)
}
