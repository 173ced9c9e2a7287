// internal/app/features/admins/handler.go
package admins

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	adminstore "github.com/verdantapp/verdant/internal/app/store/admins"
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

// NewHandler constructs an admin feature handler bound to the given
// Mongo database, logger and token manager.
func NewHandler(db *mongo.Database, errLog *httpjson.ErrorLogger, logger *zap.Logger, tokens *auth.Manager) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
		Tokens: tokens,
	}
}

// currentAdmin loads the calling admin's record fresh from the database.
// Returns nil when the request carries no admin identity or the record
// no longer exists, so a deleted or demoted admin loses access on their
// next request.
func (h *Handler) currentAdmin(ctx context.Context, r *http.Request) (*models.Admin, error) {
	caller, ok := auth.CurrentCaller(r)
	if !ok || caller.Kind != auth.KindAdmin {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(caller.ID)
	if err != nil {
		return nil, nil
	}
	adm, err := adminstore.New(h.DB).GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return adm, nil
}
