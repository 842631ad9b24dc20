// Package authgw implements the auth gateway contract with a local account
// store: argon2id password hashing, strength checks for new passwords, login
// throttling, and session-change notification fan-out.
package authgw

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okunev/fishlog/internal/core/domain"
	"github.com/okunev/fishlog/internal/core/port"
	"github.com/okunev/fishlog/internal/infra/logger"
	"github.com/okunev/fishlog/internal/infra/security"
	"github.com/okunev/fishlog/internal/repository"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Config tunes gateway behaviour.
type Config struct {
	LoginWindow      time.Duration
	LoginMaxAttempts int
}

// Gateway is a local implementation of port.AuthGateway.
type Gateway struct {
	cfg       Config
	users     port.UserRepository
	settings  port.SettingsRepository
	profiles  port.ProfileRepository
	rate      port.RateLimitStore
	validator *security.PasswordValidator
	events    port.EventPublisher
	log       *zap.Logger

	mu          sync.Mutex
	current     *port.AuthUser
	subscribers map[int]port.SessionCallback
	nextSubID   int
}

// New constructs a Gateway. The user repository is mandatory; rate limiting
// and event publishing are optional.
func New(
	cfg Config,
	users port.UserRepository,
	settings port.SettingsRepository,
	profiles port.ProfileRepository,
	rate port.RateLimitStore,
	validator *security.PasswordValidator,
	events port.EventPublisher,
	log *zap.Logger,
) *Gateway {
	if validator == nil {
		validator = security.DefaultPasswordValidator()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.LoginWindow <= 0 {
		cfg.LoginWindow = 15 * time.Minute
	}
	if cfg.LoginMaxAttempts <= 0 {
		cfg.LoginMaxAttempts = 10
	}
	return &Gateway{
		cfg:         cfg,
		users:       users,
		settings:    settings,
		profiles:    profiles,
		rate:        rate,
		validator:   validator,
		events:      events,
		log:         log,
		subscribers: make(map[int]port.SessionCallback),
	}
}

// Register creates an account, seeds the profile and default settings, and
// signs the new user in.
func (g *Gateway) Register(ctx context.Context, email, password, displayName string) (*port.AuthUser, error) {
	if g.users == nil {
		return nil, port.ErrGatewayMisconfigured
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegex.MatchString(email) {
		return nil, port.ErrInvalidEmail
	}

	if err := g.validator.Validate(password); err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrWeakPassword, err)
	}

	if existing, err := g.users.GetByEmail(ctx, email); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	} else if existing != nil {
		return nil, port.ErrEmailInUse
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		RegisteredAt: now,
	}

	if err := g.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if g.profiles != nil {
		update := domain.ProfileUpdate{Name: &displayName, Email: &email}
		if err := g.profiles.Upsert(ctx, user.ID, update); err != nil {
			g.log.Warn("seed profile failed", zap.String("user_id", user.ID), zap.Error(err))
		}
	}
	if g.settings != nil {
		if err := g.settings.Upsert(ctx, user.ID, domain.SettingsUpdate{}); err != nil {
			g.log.Warn("seed default settings failed", zap.String("user_id", user.ID), zap.Error(err))
		}
	}

	if g.events != nil {
		event := domain.UserRegisteredEvent{
			EventID:      uuid.NewString(),
			UserID:       user.ID,
			Email:        email,
			DisplayName:  displayName,
			RegisteredAt: now,
		}
		if err := g.events.PublishUserRegistered(ctx, event); err != nil {
			g.log.Warn("publish user registered failed", zap.Error(err))
		}
	}

	g.log.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("email", logger.MaskEmail(email)),
	)

	authUser := &port.AuthUser{
		ID:          user.ID,
		Email:       email,
		DisplayName: displayName,
	}
	g.setSession(authUser)

	return authUser, nil
}

// Login validates credentials against the account store, subject to throttling.
func (g *Gateway) Login(ctx context.Context, email, password string) (*port.AuthUser, error) {
	if g.users == nil {
		return nil, port.ErrGatewayMisconfigured
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegex.MatchString(email) {
		return nil, port.ErrInvalidEmail
	}

	if err := g.checkThrottle(ctx, email); err != nil {
		return nil, err
	}

	user, err := g.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			g.recordFailure(ctx, email)
			return nil, port.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		g.recordFailure(ctx, email)
		return nil, port.ErrInvalidCredentials
	}

	if err := g.users.TouchLastLogin(ctx, user.ID); err != nil {
		g.log.Warn("touch last login failed", zap.String("user_id", user.ID), zap.Error(err))
	}
	if g.rate != nil {
		if err := g.rate.Reset(ctx, email); err != nil {
			g.log.Warn("reset rate limit failed", zap.Error(err))
		}
	}

	g.log.Info("user logged in",
		zap.String("user_id", user.ID),
		zap.String("email", logger.MaskEmail(email)),
	)

	authUser := &port.AuthUser{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
	}
	g.setSession(authUser)

	return authUser, nil
}

// Logout clears the current session and notifies subscribers.
func (g *Gateway) Logout(_ context.Context) error {
	g.setSession(nil)
	return nil
}

// OnSessionChange registers a callback. It fires once immediately with the
// current session and again on every subsequent sign-in or sign-out.
func (g *Gateway) OnSessionChange(cb port.SessionCallback) port.Unsubscribe {
	g.mu.Lock()
	id := g.nextSubID
	g.nextSubID++
	g.subscribers[id] = cb
	current := g.current
	g.mu.Unlock()

	cb(current)

	return func() {
		g.mu.Lock()
		delete(g.subscribers, id)
		g.mu.Unlock()
	}
}

func (g *Gateway) setSession(user *port.AuthUser) {
	g.mu.Lock()
	g.current = user
	callbacks := make([]port.SessionCallback, 0, len(g.subscribers))
	for _, cb := range g.subscribers {
		callbacks = append(callbacks, cb)
	}
	g.mu.Unlock()

	for _, cb := range callbacks {
		cb(user)
	}
}

func (g *Gateway) checkThrottle(ctx context.Context, email string) error {
	if g.rate == nil {
		return nil
	}

	now := time.Now().UTC()
	if err := g.rate.TrimWindow(ctx, email, g.cfg.LoginWindow, now); err != nil {
		g.log.Warn("trim rate limit window failed", zap.Error(err))
		return nil
	}

	count, err := g.rate.CountAttempts(ctx, email, g.cfg.LoginWindow, now)
	if err != nil {
		g.log.Warn("count login attempts failed", zap.Error(err))
		return nil
	}
	if count >= g.cfg.LoginMaxAttempts {
		return port.ErrTooManyAttempts
	}
	return nil
}

func (g *Gateway) recordFailure(ctx context.Context, email string) {
	if g.rate == nil {
		return
	}
	if err := g.rate.RecordAttempt(ctx, email, time.Now().UTC()); err != nil {
		g.log.Warn("record login attempt failed", zap.Error(err))
	}
}
