// internal/app/features/posts/save.go
package posts

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	poststore "github.com/verdantapp/verdant/internal/app/store/posts"
	userstore "github.com/verdantapp/verdant/internal/app/store/users"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
	"github.com/verdantapp/verdant/internal/app/system/txn"
)

// ServeSave handles POST /api/v1/post/save/{id}. Saving is a toggle
// and the pair of writes (post.saves and user.saves) runs inside a
// transaction so one side is never updated without the other.
func (h *Handler) ServeSave(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "post save")
	defer cancel()

	user, err := h.currentUser(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while saving the post", err)
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
	users := userstore.New(h.DB)

	post, err := posts.GetByID(ctx, postID)
	if err == mongo.ErrNoDocuments {
		httpjson.WriteError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while saving the post", err)
		return
	}

	saved := containsID(post.Saves, user.ID)

	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if saved {
			if err := posts.RemoveSave(ctx, postID, user.ID); err != nil {
				return err
			}
			return users.RemoveSave(ctx, user.ID, postID)
		}
		if err := posts.AddSave(ctx, postID, user.ID); err != nil {
			return err
		}
		return users.AddSave(ctx, user.ID, postID)
	})
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while saving the post", err)
		return
	}

	after, err := posts.GetByID(ctx, postID)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while saving the post", err)
		return
	}

	msg := "Post saved successfully"
	if saved {
		msg = "Post unsaved successfully"
	}
	httpjson.WriteSuccess(w, http.StatusOK, msg, map[string]any{
		"postId": postID.Hex(),
		"saves":  len(after.Saves),
	})
}
