package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/okunev/fishlog/internal/core/port"
)

// AuthResult is the structured outcome of a login or register action.
// Expected failure modes (bad credentials, duplicate email) are reported
// here rather than raised.
type AuthResult struct {
	Success bool
	Error   string
}

// Login signs the user in via the auth gateway. Gateway failure codes are
// mapped to localized user-facing messages.
func (s *AppState) Login(ctx context.Context, email, password string) AuthResult {
	_, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		s.log.Warn("login failed", zap.Error(err))
		return AuthResult{Error: s.authErrorMessage(err, "auth.login_failed")}
	}
	return AuthResult{Success: true}
}

// Register creates an account via the auth gateway. Gateway failure codes
// are mapped to localized user-facing messages.
func (s *AppState) Register(ctx context.Context, name, email, password string) AuthResult {
	_, err := s.gateway.Register(ctx, email, password, name)
	if err != nil {
		s.log.Warn("registration failed", zap.Error(err))
		return AuthResult{Error: s.authErrorMessage(err, "auth.register_failed")}
	}
	return AuthResult{Success: true}
}

// Logout signs the user out. Domain collections are cleared by the nil
// session event the gateway emits.
func (s *AppState) Logout(ctx context.Context) error {
	if err := s.gateway.Logout(ctx); err != nil {
		s.log.Error("logout failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *AppState) authErrorMessage(err error, fallbackKey string) string {
	switch {
	case errors.Is(err, port.ErrInvalidCredentials):
		return s.tr("auth.invalid_credentials")
	case errors.Is(err, port.ErrEmailInUse):
		return s.tr("auth.email_in_use")
	case errors.Is(err, port.ErrInvalidEmail):
		return s.tr("auth.invalid_email")
	case errors.Is(err, port.ErrWeakPassword):
		return s.tr("auth.weak_password")
	case errors.Is(err, port.ErrTooManyAttempts):
		return s.tr("auth.too_many_attempts")
	case errors.Is(err, port.ErrGatewayMisconfigured):
		return s.tr("auth.misconfigured")
	default:
		return s.tr(fallbackKey)
	}
}
