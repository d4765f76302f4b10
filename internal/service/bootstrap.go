package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tohally/academy-web/internal/config"
	util "github.com/tohally/academy-web/pkg/util"
)

// EnsureAdmin creates the bootstrap administrator account from the
// environment on startup. Missing credentials and an already existing
// account are both logged and skipped, never fatal.
func EnsureAdmin(ctx context.Context, auth *AuthService, cfg config.AdminConfig, logger *zap.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set; skipping admin bootstrap")
		return nil
	}

	user, err := auth.CreateAdmin(ctx, cfg.Name, cfg.Email, cfg.Password)
	if err != nil {
		var domainErr *util.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "CONFLICT" {
			logger.Info("admin account already exists", zap.String("correo", cfg.Email))
			return nil
		}
		return err
	}

	logger.Info("admin account created", zap.Int64("id", user.ID), zap.String("correo", user.Email))
	return nil
}
