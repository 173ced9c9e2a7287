// internal/app/features/admins/squaddelete.go
package admins

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/verdantapp/verdant/internal/app/policy/adminpolicy"
	squadstore "github.com/verdantapp/verdant/internal/app/store/squads"
	userstore "github.com/verdantapp/verdant/internal/app/store/users"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
	"github.com/verdantapp/verdant/internal/app/system/txn"
)

// ServeDeleteSquad handles DELETE /api/v1/admin/delete/squad/{id}.
// superAdmin only. The cascade runs inside a transaction: the squad id
// is pulled from every member's squads array, the squad's own member
// lists are cleared, then the document is removed. Ordered so that a
// partial failure without transaction support never leaves a user
// pointing at a squad that no longer exists.
func (h *Handler) ServeDeleteSquad(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "squad delete")
	defer cancel()

	squadID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	caller, err := h.currentAdmin(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while deleting the squad", err)
		return
	}
	if !adminpolicy.CanModerate(caller) {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	squads := squadstore.New(h.DB)
	users := userstore.New(h.DB)

	if _, err := squads.GetByID(ctx, squadID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
			return
		}
		h.ErrLog.Internal(w, r, "An error occurred while deleting the squad", err)
		return
	}

	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if err := users.PullSquadFromAll(ctx, squadID); err != nil {
			return err
		}
		if err := squads.ClearMembers(ctx, squadID); err != nil {
			return err
		}
		_, err := squads.Delete(ctx, squadID)
		return err
	})
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while deleting the squad", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Squad deleted successfully", nil)
}
