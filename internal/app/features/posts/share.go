// internal/app/features/posts/share.go
package posts

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	poststore "github.com/verdantapp/verdant/internal/app/store/posts"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
)

// ServeShare handles POST /api/v1/post/share/{id}. No authentication;
// the share counter increments server-side and the response carries the
// public view link.
func (h *Handler) ServeShare(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "post share")
	defer cancel()

	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	post, err := poststore.New(h.DB).IncShares(ctx, postID)
	if err == mongo.ErrNoDocuments {
		httpjson.WriteError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while sharing the post", err)
		return
	}

	link := strings.TrimSuffix(h.BaseURL, "/") + "/api/v1/post/share/view/" + post.ID.Hex()
	httpjson.WriteSuccess(w, http.StatusOK, "Share link generated successfully", map[string]any{
		"id":   post.ID.Hex(),
		"link": link,
	})
}

// ServeShareView handles GET /api/v1/post/share/view/{id}. Public.
func (h *Handler) ServeShareView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "post share view")
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
