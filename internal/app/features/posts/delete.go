// internal/app/features/posts/delete.go
package posts

import (
	"context"
	"net/http"

	commentstore "github.com/verdantapp/verdant/internal/app/store/comments"
	poststore "github.com/verdantapp/verdant/internal/app/store/posts"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
	"github.com/verdantapp/verdant/internal/app/system/txn"
)

// ServeDelete handles DELETE /api/v1/post/delete/{id}. The same
// creator-and-moderator policy as update applies. The post's comments
// are removed with it so no orphaned comment documents remain.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "post delete")
	defer cancel()
	r = r.WithContext(ctx)

	user, err := h.currentUser(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while deleting the post", err)
		return
	}
	if user == nil {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	post, ok := h.loadPostForManage(w, r, user, "deleting the post")
	if !ok {
		return
	}

	posts := poststore.New(h.DB)
	comments := commentstore.New(h.DB)

	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		for _, cid := range post.Comments {
			if _, err := comments.Delete(ctx, cid); err != nil {
				return err
			}
		}
		_, err := posts.Delete(ctx, post.ID)
		return err
	})
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while deleting the post", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Post deleted successfully", nil)
}
