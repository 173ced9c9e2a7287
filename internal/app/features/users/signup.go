// internal/app/features/users/signup.go
package users

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	userstore "github.com/verdantapp/verdant/internal/app/store/users"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
	"github.com/verdantapp/verdant/internal/app/system/txn"
	"github.com/verdantapp/verdant/internal/domain/models"
)

// bcryptCost matches the cost used across the application for both
// admin and user passwords.
const bcryptCost = 12

// referralAward is the point credit a referrer earns per signup that
// carries their code.
const referralAward = 50

type signupRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Contact      string `json:"contact"`
	ReferrerCode string `json:"referrerCode"`
}

// newReferralCode derives a short shareable code. The referral.code
// unique index catches the (vanishingly rare) collision at insert.
func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// ServeSignup handles POST /api/v1/user/signup. When the payload
// carries a valid referrer code, the signup and the referrer credit
// commit together.
func (h *Handler) ServeSignup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "user signup")
	defer cancel()

	var req signupRequest
	if err := httpjson.DecodeBody(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Contact == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "Name, email, password and contact are required")
		return
	}

	store := userstore.New(h.DB)

	var referrer *models.User
	if req.ReferrerCode != "" {
		u, err := store.GetByReferralCode(ctx, req.ReferrerCode)
		if err != nil && err != mongo.ErrNoDocuments {
			h.ErrLog.Internal(w, r, "An error occurred while signing up", err)
			return
		}
		// An unknown code is ignored rather than failing the signup.
		referrer = u
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while signing up", err)
		return
	}

	var created models.User
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		var err error
		created, err = store.Create(ctx, models.User{
			Name:     req.Name,
			Email:    req.Email,
			Password: string(hash),
			Contact:  req.Contact,
			Referral: models.Referral{Code: newReferralCode()},
		})
		if err != nil {
			return err
		}
		if referrer != nil {
			return store.CreditReferral(ctx, referrer.ID, created.ID, referralAward)
		}
		return nil
	})
	switch err {
	case nil:
	case userstore.ErrDuplicate:
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return
	default:
		h.ErrLog.Internal(w, r, "An error occurred while signing up", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusCreated, "User created successfully", created)
}
