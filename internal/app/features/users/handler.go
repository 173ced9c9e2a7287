// internal/app/features/users/handler.go
package users

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/verdantapp/verdant/internal/app/store/users"
	"github.com/verdantapp/verdant/internal/app/system/auth"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/domain/models"
)

const msgNotAllowed = "You are not allowed to perform this action"

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *httpjson.ErrorLogger
	Tokens *auth.Manager
}

// NewHandler constructs a users feature handler.
func NewHandler(db *mongo.Database, errLog *httpjson.ErrorLogger, logger *zap.Logger, tokens *auth.Manager) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
		Tokens: tokens,
	}
}

// currentUser loads the calling user's record fresh from the database.
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
