// internal/app/features/posts/update.go
package posts

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/verdantapp/verdant/internal/app/policy/postpolicy"
	poststore "github.com/verdantapp/verdant/internal/app/store/posts"
	squadstore "github.com/verdantapp/verdant/internal/app/store/squads"
	"github.com/verdantapp/verdant/internal/app/system/htmlsanitize"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/timeouts"
	"github.com/verdantapp/verdant/internal/domain/models"
)

type updateRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

func decodeUpdate(r *http.Request) (updateRequest, error) {
	var req updateRequest

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return req, err
		}
		req.Title = r.FormValue("title")
		req.Content = r.FormValue("content")
		req.Category = r.FormValue("category")
		if tags := r.FormValue("tags"); tags != "" {
			for _, t := range strings.Split(tags, ",") {
				if t = strings.TrimSpace(t); t != "" {
					req.Tags = append(req.Tags, t)
				}
			}
		}
		return req, nil
	}

	err := httpjson.DecodeBody(r, &req)
	return req, err
}

// loadPostForManage resolves the post and its squad and checks the
// management policy (caller must be the creator and a squad moderator).
// Writes the error response itself and returns ok=false on any failure.
func (h *Handler) loadPostForManage(w http.ResponseWriter, r *http.Request, user *models.User, action string) (*models.Post, bool) {
	ctx := r.Context()

	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid post id")
		return nil, false
	}

	post, err := poststore.New(h.DB).GetByID(ctx, postID)
	if err == mongo.ErrNoDocuments {
		httpjson.WriteError(w, http.StatusNotFound, "Post not found")
		return nil, false
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while "+action, err)
		return nil, false
	}

	squad, err := squadstore.New(h.DB).GetByID(ctx, post.Squad)
	if err != nil && err != mongo.ErrNoDocuments {
		h.ErrLog.Internal(w, r, "An error occurred while "+action, err)
		return nil, false
	}

	if !postpolicy.CanManagePost(squad, post, user.ID) {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return nil, false
	}
	return post, true
}

// ServeUpdate handles PUT /api/v1/post/update/{id}.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "post update")
	defer cancel()
	r = r.WithContext(ctx)

	user, err := h.currentUser(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while updating the post", err)
		return
	}
	if user == nil {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	post, ok := h.loadPostForManage(w, r, user, "updating the post")
	if !ok {
		return
	}

	req, err := decodeUpdate(r)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := poststore.New(h.DB).Update(ctx, post.ID, poststore.PostUpdate{
		Title:    htmlsanitize.Sanitize(req.Title),
		Content:  htmlsanitize.Sanitize(req.Content),
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while updating the post", err)
		return
	}

	if _, err := h.Uploads.SaveImage(ctx, r, "image", h.DB.Collection("posts"), "image", post.ID); err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while uploading the image", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusOK, "Post updated successfully", updated)
}
