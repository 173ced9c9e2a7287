// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	adminstore "github.com/verdantapp/verdant/internal/app/store/admins"
	"github.com/verdantapp/verdant/internal/domain/models"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
//
// Verdant seeds a superAdmin account from config when none exists, so a
// fresh deployment has a way into the admin surface. An existing
// superAdmin (any email) disables the seeding entirely.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SuperAdminEmail == "" {
		return nil
	}

	store := adminstore.New(deps.VerdantMongoDatabase)

	n, err := store.CountSuperAdmins(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(appCfg.SuperAdminPassword), 12)
	if err != nil {
		return err
	}

	_, err = store.Create(ctx, models.Admin{
		Name:     "Super Admin",
		Email:    appCfg.SuperAdminEmail,
		Password: string(hash),
		Role:     models.RoleSuperAdmin,
	})
	if err == adminstore.ErrDuplicateEmail {
		// A regular admin already owns the email; leave it alone.
		logger.Warn("superadmin seed skipped, email already in use",
			zap.String("email", appCfg.SuperAdminEmail))
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("seeded superAdmin account", zap.String("email", appCfg.SuperAdminEmail))
	return nil
}
