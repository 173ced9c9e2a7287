// internal/app/features/users/feed.go
package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	poststore "github.com/verdantapp/verdant/internal/app/store/posts"
	userstore "github.com/verdantapp/verdant/internal/app/store/users"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
)

// ServeFeedHide handles PUT /api/v1/user/feed/hide/{id}: add a post to
// the caller's feed exclusion set. Hidden posts disappear from the post
// listing.
func (h *Handler) ServeFeedHide(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "feed hide")
	defer cancel()

	user, err := h.currentUser(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while hiding the post", err)
		return
	}
	if user == nil {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	if _, err := poststore.New(h.DB).GetByID(ctx, postID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.WriteError(w, http.StatusNotFound, "Post not found")
			return
		}
		h.ErrLog.Internal(w, r, "An error occurred while hiding the post", err)
		return
	}

	if err := userstore.New(h.DB).HideFromFeed(ctx, user.ID, postID); err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while hiding the post", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Post hidden from feed", nil)
}
