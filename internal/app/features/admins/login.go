// internal/app/features/admins/login.go
package admins

import (
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	adminstore "github.com/verdantapp/verdant/internal/app/store/admins"
	"github.com/verdantapp/verdant/internal/app/system/auth"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
)

// msgBadLogin is deliberately identical for an unknown email and a
// wrong password so the response never reveals which one failed.
const msgBadLogin = "Invalid email or password"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeLogin handles POST /api/v1/admin/login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "admin login")
	defer cancel()

	var req loginRequest
	if err := httpjson.DecodeBody(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	adm, err := adminstore.New(h.DB).GetByEmail(ctx, req.Email)
	if err == mongo.ErrNoDocuments {
		httpjson.WriteError(w, http.StatusUnauthorized, msgBadLogin)
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while logging in", err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(adm.Password), []byte(req.Password)) != nil {
		httpjson.WriteError(w, http.StatusUnauthorized, msgBadLogin)
		return
	}

	token, err := h.Tokens.Issue(adm.ID.Hex(), auth.KindAdmin)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while logging in", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Login successful", map[string]any{
		"userId": adm.ID.Hex(),
		"name":   adm.Name,
		"email":  adm.Email,
		"token":  token,
	})
}
