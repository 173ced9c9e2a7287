// internal/app/features/users/connect.go
package users

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	userstore "github.com/verdantapp/verdant/internal/app/store/users"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
	"github.com/verdantapp/verdant/internal/app/system/txn"
)

// ServeConnect handles POST /api/v1/user/connect/{id}: queue a pending
// connection request on the target user. One pending request per sender.
func (h *Handler) ServeConnect(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "user connect")
	defer cancel()

	user, err := h.currentUser(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while sending the request", err)
		return
	}
	if user == nil {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	targetID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	if targetID == user.ID {
		httpjson.WriteError(w, http.StatusBadRequest, "You cannot connect with yourself")
		return
	}

	err = userstore.New(h.DB).AddConnectionRequest(ctx, targetID, user.ID)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		httpjson.WriteError(w, http.StatusNotFound, "User not found")
		return
	case userstore.ErrRequestExists:
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return
	default:
		h.ErrLog.Internal(w, r, "An error occurred while sending the request", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Connection request sent", nil)
}

// ServeApproveConnect handles PUT /api/v1/user/connect/approve/{id}:
// approve the pending request from user {id}. The status flip and both
// connections writes commit together, keeping the relationship
// symmetric.
func (h *Handler) ServeApproveConnect(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "user connect approve")
	defer cancel()

	user, err := h.currentUser(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while approving the request", err)
		return
	}
	if user == nil {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	fromID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	store := userstore.New(h.DB)

	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if err := store.ApproveConnectionRequest(ctx, user.ID, fromID); err != nil {
			return err
		}
		if err := store.AddConnection(ctx, user.ID, fromID); err != nil {
			return err
		}
		return store.AddConnection(ctx, fromID, user.ID)
	})
	if err == mongo.ErrNoDocuments {
		httpjson.WriteError(w, http.StatusNotFound, "No pending request from this user")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while approving the request", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Connection request approved", nil)
}
