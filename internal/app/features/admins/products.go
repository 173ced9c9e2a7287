// internal/app/features/admins/products.go
package admins

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/verdantapp/verdant/internal/app/policy/adminpolicy"
	productstore "github.com/verdantapp/verdant/internal/app/store/products"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
)

// ServeDeleteProduct handles DELETE /api/v1/admin/delete/product/{id}.
// superAdmin only.
func (h *Handler) ServeDeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "product delete")
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	caller, err := h.currentAdmin(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while deleting the product", err)
		return
	}
	if !adminpolicy.CanModerate(caller) {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	n, err := productstore.New(h.DB).Delete(ctx, productID)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while deleting the product", err)
		return
	}
	if n == 0 {
		httpjson.WriteError(w, http.StatusNotFound, "Product not found")
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Product deleted successfully", nil)
}

// ServeActivateProduct handles PUT /api/v1/admin/product/activate/{id}.
func (h *Handler) ServeActivateProduct(w http.ResponseWriter, r *http.Request) {
	h.setProductActive(w, r, true, "Product activated successfully")
}

// ServeDeactivateProduct handles PUT /api/v1/admin/product/deactivate/{id}.
func (h *Handler) ServeDeactivateProduct(w http.ResponseWriter, r *http.Request) {
	h.setProductActive(w, r, false, "Product deactivated successfully")
}

// setProductActive requires a signed-in caller (via the route group)
// but no particular role; any admin account may flip the flag.
func (h *Handler) setProductActive(w http.ResponseWriter, r *http.Request, active bool, message string) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "product moderation")
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	p, err := productstore.New(h.DB).SetActive(ctx, productID, active)
	if err == mongo.ErrNoDocuments {
		httpjson.WriteError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while updating the product", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, message, p)
}
