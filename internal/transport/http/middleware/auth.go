package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/okunev/fishlog/internal/infra/security"
)

// ErrorResponse mirrors the handlers package error body so middleware
// rejections look the same on the wire.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

func newErrorResponse(c *gin.Context, message string) ErrorResponse {
	return ErrorResponse{Error: message, TraceID: GetTraceID(c)}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The second return explains the rejection when extraction fails.
func bearerToken(header string) (string, string) {
	if header == "" {
		return "", "missing authorization header"
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", "invalid authorization format: expected 'Bearer <token>'"
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", "missing access token"
	}
	return token, ""
}

// RequireAuth validates the bearer token and stores its subject under
// UserIDKey for the handlers.
func RequireAuth(tokens *security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, reason := bearerToken(c.GetHeader("Authorization"))
		if reason != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, newErrorResponse(c, reason))
			return
		}

		userID, err := tokens.Validate(token)
		switch {
		case errors.Is(err, security.ErrExpiredToken):
			c.AbortWithStatusJSON(http.StatusUnauthorized, newErrorResponse(c, "access token expired"))
			return
		case errors.Is(err, security.ErrInvalidToken):
			c.AbortWithStatusJSON(http.StatusUnauthorized, newErrorResponse(c, "invalid access token"))
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusInternalServerError, newErrorResponse(c, "authentication failed"))
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetAuthenticatedUserID returns the subject stored by RequireAuth.
func GetAuthenticatedUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok && id != ""
}
