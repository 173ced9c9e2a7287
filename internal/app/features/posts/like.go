// internal/app/features/posts/like.go
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

// ServeLike handles PUT /api/v1/post/like/{id}. Liking twice undoes
// the like; the set mutation happens server-side so concurrent toggles
// never lose updates.
func (h *Handler) ServeLike(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "post like")
	defer cancel()

	user, err := h.currentUser(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while liking the post", err)
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

	posts := poststore.New(h.DB)

	if _, err := posts.GetByID(ctx, postID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.WriteError(w, http.StatusNotFound, "Post not found")
			return
		}
		h.ErrLog.Internal(w, r, "An error occurred while liking the post", err)
		return
	}

	likes, liked, err := posts.ToggleLike(ctx, postID, user.ID)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while liking the post", err)
		return
	}

	msg := "Post liked successfully"
	if !liked {
		msg = "Post unliked successfully"
	}
	httpjson.WriteSuccess(w, http.StatusOK, msg, map[string]any{
		"postId": postID.Hex(),
		"likes":  likes,
	})
}
