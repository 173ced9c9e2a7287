// internal/app/features/posts/list.go
package posts

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	poststore "github.com/verdantapp/verdant/internal/app/store/posts"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
)

// ServeList handles GET /api/v1/post/find/all. Posts the caller has
// hidden (feed.excluded) are filtered out at the query.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "post list")
	defer cancel()

	user, err := h.currentUser(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while listing posts", err)
		return
	}
	if user == nil {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	posts, err := poststore.New(h.DB).ListExcluding(ctx, user.Feed.Excluded)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while listing posts", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Posts retrieved successfully", posts)
}

// ServeGet handles GET /api/v1/post/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "post get")
	defer cancel()

	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	post, err := poststore.New(h.DB).GetByID(ctx, postID)
	if err == mongo.ErrNoDocuments {
		httpjson.WriteError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while fetching the post", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Post retrieved successfully", post)
}
