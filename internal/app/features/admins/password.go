// internal/app/features/admins/password.go
package admins

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/verdantapp/verdant/internal/app/policy/adminpolicy"
	adminstore "github.com/verdantapp/verdant/internal/app/store/admins"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
)

type passwordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ServePassword handles PUT /api/v1/admin/password/{id}. The old
// password is verified against the target's stored hash before the new
// one is set.
func (h *Handler) ServePassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin password change")
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
		h.ErrLog.Internal(w, r, "An error occurred while changing the password", err)
		return
	}

	caller, err := h.currentAdmin(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while changing the password", err)
		return
	}
	if !adminpolicy.CanModifyAdmin(caller, target) {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	var req passwordRequest
	if err := httpjson.DecodeBody(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "Old and new passwords are required")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(target.Password), []byte(req.OldPassword)) != nil {
		httpjson.WriteError(w, http.StatusUnauthorized, "Old password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while changing the password", err)
		return
	}
	if err := store.UpdatePassword(ctx, targetID, string(hash)); err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while changing the password", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Password updated successfully", nil)
}
