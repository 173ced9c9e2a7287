// internal/app/features/admins/create.go
package admins

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/verdantapp/verdant/internal/app/policy/adminpolicy"
	adminstore "github.com/verdantapp/verdant/internal/app/store/admins"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
	"github.com/verdantapp/verdant/internal/domain/models"
)

// bcryptCost matches the cost used across the application for both
// admin and user passwords.
const bcryptCost = 12

type createRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ServeCreate handles POST /api/v1/admin/create. Only a superAdmin may
// create admin accounts; a denied caller produces no write at all.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin create")
	defer cancel()

	caller, err := h.currentAdmin(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while creating the admin", err)
		return
	}
	if !adminpolicy.CanCreateAdmin(caller) {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	var req createRequest
	if err := httpjson.DecodeBody(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "Name, email, password and role are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while creating the admin", err)
		return
	}

	created, err := adminstore.New(h.DB).Create(ctx, models.Admin{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     req.Role,
	})
	switch err {
	case nil:
	case adminstore.ErrDuplicateEmail, adminstore.ErrInvalidRole:
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return
	default:
		h.ErrLog.Internal(w, r, "An error occurred while creating the admin", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Admin created successfully", map[string]any{
		"name":  created.Name,
		"email": created.Email,
		"role":  created.Role,
	})
}
