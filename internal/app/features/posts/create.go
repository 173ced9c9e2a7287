// internal/app/features/posts/create.go
package posts

import (
	"net/http"
	"strings"

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

type createRequest struct {
	SquadID  string   `json:"squadId"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// decodeCreate reads the create payload from either a JSON body or a
// multipart form. Multipart is used when the client attaches an image;
// tags arrive comma-separated in that case.
func decodeCreate(r *http.Request) (createRequest, error) {
	var req createRequest

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return req, err
		}
		req.SquadID = r.FormValue("squadId")
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

// ServeCreate handles POST /api/v1/post/create. The caller must be a
// member of the target squad; if the squad has moderators, only they
// may post.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "post create")
	defer cancel()

	user, err := h.currentUser(ctx, r)
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while creating the post", err)
		return
	}
	if user == nil {
		httpjson.WriteError(w, http.StatusUnauthorized, msgNotAllowed)
		return
	}

	req, err := decodeCreate(r)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SquadID == "" || req.Title == "" || req.Content == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "SquadId, title and content are required")
		return
	}

	squadID, err := primitive.ObjectIDFromHex(req.SquadID)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid squad id")
		return
	}

	squad, err := squadstore.New(h.DB).GetByID(ctx, squadID)
	if err == mongo.ErrNoDocuments {
		httpjson.WriteError(w, http.StatusBadRequest, "Invalid squad id")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while creating the post", err)
		return
	}

	if !postpolicy.CanPost(squad, user.ID) {
		httpjson.WriteError(w, http.StatusBadRequest, "You are not allowed to post in this squad")
		return
	}

	post, err := poststore.New(h.DB).Create(ctx, models.Post{
		Title:    htmlsanitize.Sanitize(req.Title),
		Content:  htmlsanitize.Sanitize(req.Content),
		Creator:  user.ID,
		Squad:    squadID,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while creating the post", err)
		return
	}

	if _, err := h.Uploads.SaveImage(ctx, r, "image", h.DB.Collection("posts"), "image", post.ID); err != nil {
		h.ErrLog.Internal(w, r, "An error occurred while uploading the image", err)
		return
	}

	httpjson.WriteSuccess(w, http.StatusCreated, "Post created successfully", map[string]any{
		"id":   post.ID.Hex(),
		"name": post.Title,
	})
}
