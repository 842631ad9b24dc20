package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/okunev/fishlog/internal/core/port"
	"github.com/okunev/fishlog/internal/i18n"
	"github.com/okunev/fishlog/internal/infra/logger"
	"github.com/okunev/fishlog/internal/infra/security"
	"github.com/okunev/fishlog/internal/transport/http/middleware"
	"github.com/okunev/fishlog/internal/usecase"
)

// AuthHandler exposes registration, login, and logout endpoints.
type AuthHandler struct {
	gateway  port.AuthGateway
	tokens   *security.TokenManager
	registry *usecase.Registry
	log      *zap.Logger
}

// NewAuthHandler builds an auth handler over the shared gateway and state registry.
func NewAuthHandler(gateway port.AuthGateway, tokens *security.TokenManager, registry *usecase.Registry, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{gateway: gateway, tokens: tokens, registry: registry, log: log}
}

// RegisterRoutes attaches the public auth endpoints to the group. Login
// middlewares (rate limiting) apply to the login route only.
func (h *AuthHandler) RegisterRoutes(group *gin.RouterGroup, loginMiddlewares ...gin.HandlerFunc) {
	group.POST("/register", h.Register)

	loginHandlers := append([]gin.HandlerFunc{}, loginMiddlewares...)
	loginHandlers = append(loginHandlers, h.Login)
	group.POST("/login", loginHandlers...)
}

// Register creates a new account and opens a session for it.
func (h *AuthHandler) Register(c *gin.Context) {
	var req AuthRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "name, email, and password are required"))
		return
	}

	user, err := h.gateway.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.log.Warn("registration rejected",
			zap.String("email", logger.MaskEmail(req.Email)),
			zap.Error(err))
		RespondWithMappedError(c, err, authErrorCases(), http.StatusInternalServerError, authMessage("auth.register_failed"))
		return
	}

	h.respondWithSession(c, http.StatusCreated, user)
}

// Login verifies credentials and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "email and password are required"))
		return
	}

	user, err := h.gateway.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Warn("login rejected",
			zap.String("email", logger.MaskEmail(req.Email)),
			zap.Error(err))
		RespondWithMappedError(c, err, authErrorCases(), http.StatusInternalServerError, authMessage("auth.login_failed"))
		return
	}

	h.respondWithSession(c, http.StatusOK, user)
}

// Logout releases the caller's state container and ends the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	h.registry.Release(userID)
	c.JSON(http.StatusOK, MessageResponse{Message: "signed out"})
}

func (h *AuthHandler) respondWithSession(c *gin.Context, status int, user *port.AuthUser) {
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error("issue access token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to open session"))
		return
	}

	// Warm the per-user state container so the first authenticated
	// request reads loaded collections.
	h.registry.StateFor(user)

	c.JSON(status, AuthSessionResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.tokens.TTL().Seconds()),
		User: UserSummary{
			ID:     user.ID,
			Email:  user.Email,
			Name:   user.DisplayName,
			Avatar: user.Avatar,
		},
	})
}

func authErrorCases() []ErrorCase {
	return []ErrorCase{
		{Err: port.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: authMessage("auth.invalid_credentials")},
		{Err: port.ErrEmailInUse, Status: http.StatusConflict, Message: authMessage("auth.email_in_use")},
		{Err: port.ErrInvalidEmail, Status: http.StatusBadRequest, Message: authMessage("auth.invalid_email")},
		{Err: port.ErrWeakPassword, Status: http.StatusBadRequest, Message: authMessage("auth.weak_password")},
		{Err: port.ErrTooManyAttempts, Status: http.StatusTooManyRequests, Message: authMessage("auth.too_many_attempts")},
		{Err: port.ErrGatewayMisconfigured, Status: http.StatusServiceUnavailable, Message: authMessage("auth.misconfigured")},
	}
}

// authMessage resolves an auth failure message in the product's default language.
func authMessage(key string) string {
	return i18n.Get(i18n.DefaultLang, key)
}
