// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	adminsfeature "github.com/verdantapp/verdant/internal/app/features/admins"
	healthfeature "github.com/verdantapp/verdant/internal/app/features/health"
	postsfeature "github.com/verdantapp/verdant/internal/app/features/posts"
	usersfeature "github.com/verdantapp/verdant/internal/app/features/users"
	"github.com/verdantapp/verdant/internal/app/system/auth"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/app/system/uploads"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. The router mounts the API feature routers
// under /api/v1, the health endpoint, and the static file server for
// uploaded images.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.VerdantMongoDatabase

	tokens := auth.NewManager(appCfg.JWTSecret, appCfg.TokenTTL)
	errLog := httpjson.NewErrorLogger(logger)
	uploader := uploads.New(appCfg.UploadDir, appCfg.UploadURLPrefix, logger)

	r := chi.NewRouter()

	// Global auth middleware: resolves the bearer token into a caller
	// identity if one is present. Route groups that need identity add
	// RequireSignedIn on top.
	r.Use(tokens.LoadCaller)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.VerdantMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded images with pre-compressed file support
	r.Handle(appCfg.UploadURLPrefix+"/*", fileserver.Handler(appCfg.UploadURLPrefix, appCfg.UploadDir))

	adminHandler := adminsfeature.NewHandler(db, errLog, logger, tokens)
	r.Mount("/api/v1/admin", adminsfeature.Routes(adminHandler))

	userHandler := usersfeature.NewHandler(db, errLog, logger, tokens)
	r.Mount("/api/v1/user", usersfeature.Routes(userHandler))

	postHandler := postsfeature.NewHandler(db, errLog, logger, uploader, appCfg.BaseURL)
	r.Mount("/api/v1/post", postsfeature.Routes(postHandler))

	return r, nil
}
