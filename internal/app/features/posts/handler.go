// internal/app/features/posts/handler.go
package posts

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/verdantapp/verdant/internal/app/store/users"
	"github.com/verdantapp/verdant/internal/app/system/auth"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/uploads"
	"github.com/verdantapp/verdant/internal/domain/models"
)

const msgNotAllowed = "You are not allowed to perform this action"

type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	ErrLog  *httpjson.ErrorLogger
	Uploads *uploads.Uploader

	// BaseURL is the public origin used to build share links.
	BaseURL string
}

// NewHandler constructs a posts feature handler.
func NewHandler(db *mongo.Database, errLog *httpjson.ErrorLogger, logger *zap.Logger, up *uploads.Uploader, baseURL string) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		ErrLog:  errLog,
		Uploads: up,
		BaseURL: baseURL,
	}
}

// currentUser loads the calling user's record fresh from the database.
// Returns nil when the request carries no user identity or the record
// no longer exists.
func (h *Handler) currentUser(ctx context.Context, r *http.Request) (*models.User, error) {
	caller, ok := auth.CurrentCaller(r)
	if !ok || caller.Kind != auth.KindUser {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(caller.ID)
	if err != nil {
		return nil, nil
	}
	u, err := userstore.New(h.DB).GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
