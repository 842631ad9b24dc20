package logger

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestIDKey stores the request identifier on a context.Context.
type RequestIDKey struct{}

var (
	lg   *zap.Logger
	once sync.Once
)

// New returns the process-wide zap.Logger. Production gets JSON output,
// everything else a colored console encoder.
func New(env string) (*zap.Logger, error) {
	var err error
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		if env != "production" {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		lg, err = cfg.Build()
	})
	return lg, err
}

// WithContext attaches request-scoped fields to the logger.
func WithContext(ctx context.Context) *zap.Logger {
	if lg == nil {
		fallback, _ := zap.NewDevelopment()
		return fallback
	}
	if ctx == nil {
		return lg
	}
	id, _ := ctx.Value(RequestIDKey{}).(string)
	return lg.With(zap.String("request_id", id))
}

// MaskEmail hides the local part of an address except its first characters:
// ivan.petrov@example.com -> iva***@example.com.
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}
	local, domain, found := strings.Cut(email, "@")
	if !found {
		return "***"
	}
	keep := len(local)
	if keep > 3 {
		keep = 3
	}
	if keep == 0 {
		return "***@" + domain
	}
	return local[:keep] + "***@" + domain
}

// MaskIP keeps the first two IPv4 octets or the first four IPv6 groups.
func MaskIP(ip string) string {
	switch {
	case ip == "":
		return ""
	case strings.Contains(ip, "."):
		parts := strings.Split(ip, ".")
		if len(parts) == 4 {
			return parts[0] + "." + parts[1] + ".*.*"
		}
	case strings.Contains(ip, ":"):
		parts := strings.Split(ip, ":")
		if len(parts) >= 4 {
			return strings.Join(parts[:4], ":") + ":*:*:*:*"
		}
	}
	return "***"
}
