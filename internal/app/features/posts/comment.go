// internal/app/features/posts/comment.go
package posts

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/verdantapp/verdant/internal/app/policy/postpolicy"
	commentstore "github.com/verdantapp/verdant/internal/app/store/comments"
	poststore "github.com/verdantapp/verdant/internal/app/store/posts"
	"github.com/verdantapp/verdant/internal/app/system/htmlsanitize"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
	"github.com/verdantapp/verdant/internal/app/system/txn"
	"github.com/verdantapp/verdant/internal/domain/models"
)

type commentRequest struct {
	Content string `json:"content"`
}

// ServeComment handles PUT /api/v1/post/comment/{id}. The comment
// insert and the backlink push onto the post run in one transaction.
func (h *Handler) ServeComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "comment create")
	defer cancel()

	user, err := h.currentUser(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while adding the comment", err)
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
	comments := commentstore.New(h.DB)

	if _, err := posts.GetByID(ctx, postID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.WriteError(w, http.StatusNotFound, "Post not found")
			return
		}
		h.ErrLog.Internal(w, r, "An error occurred while adding the comment", err)
		return
	}

	var req commentRequest
	if err := httpjson.DecodeBody(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "Content is required")
		return
	}

	var created models.Comment
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		var err error
		created, err = comments.Create(ctx, models.Comment{
			Content: htmlsanitize.Sanitize(req.Content),
			Creator: user.ID,
			Post:    postID,
		})
		if err != nil {
			return err
		}
		return posts.AddComment(ctx, postID, created.ID)
	})
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while adding the comment", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Comment added successfully", created)
}

// ServeDeleteComment handles DELETE /api/v1/post/comment/delete/{id}.
// Only the comment's creator may delete it. The backlink pull and the
// comment removal run in one transaction, ordered so a partial failure
// leaves a dangling post reference rather than a ghost comment.
func (h *Handler) ServeDeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "comment delete")
	defer cancel()

	user, err := h.currentUser(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while deleting the comment", err)
		return
	}
	if user == nil {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	commentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid comment id")
		return
	}

	posts := poststore.New(h.DB)
	comments := commentstore.New(h.DB)

	comment, err := comments.GetByID(ctx, commentID)
	if err == mongo.ErrNoDocuments {
		httpjson.WriteError(w, http.StatusNotFound, "Comment not found")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while deleting the comment", err)
		return
	}

	if !postpolicy.CanDeleteComment(comment, user.ID) {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if err := posts.RemoveComment(ctx, comment.Post, commentID); err != nil {
			return err
		}
		_, err := comments.Delete(ctx, commentID)
		return err
	})
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while deleting the comment", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Comment deleted successfully", nil)
}

// ServeListComments handles GET /api/v1/post/comment/all/{id}.
func (h *Handler) ServeListComments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "comment list")
	defer cancel()

	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	list, err := commentstore.New(h.DB).ListByPost(ctx, postID)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while listing comments", err)
		return
	}

	if len(list) == 0 {
		httpjson.WriteSuccess(w, http.StatusOK, "No comments found for this post", nil)
		return
	}
	httpjson.WriteSuccess(w, http.StatusOK, "Comments retrieved successfully", list)
}
