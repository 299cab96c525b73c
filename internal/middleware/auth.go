package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/almanarhr/recruit-api/internal/config"
	"github.com/almanarhr/recruit-api/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UsernameContextKey is the context key for the authenticated admin username.
	UsernameContextKey contextKey = "username"

	// AuthHeaderName is the HTTP header carrying the bearer token.
	AuthHeaderName = "Authorization"

	bearerPrefix = "Bearer "
)

// Claims is the JWT claim set issued to admins at login.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminAuthMiddleware gates admin routes behind a JWT bearer token.
type AdminAuthMiddleware struct {
	cfg    config.AuthConfig
	logger *zap.Logger
}

// NewAdminAuthMiddleware creates a new authentication middleware.
func NewAdminAuthMiddleware(cfg config.AuthConfig, logger *zap.Logger) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{cfg: cfg, logger: logger}
}

// Handler wraps an http.Handler with bearer token authentication.
func (a *AdminAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.cfg.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		if !a.isProtected(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token := extractBearer(r)
		if token == "" {
			a.unauthorized(w, "missing bearer token")
			return
		}

		claims, err := a.parseToken(token)
		if err != nil {
			a.logger.Warn("invalid token attempt",
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			a.unauthorized(w, "invalid or expired token")
			return
		}

		if claims.Role != models.RoleAdmin {
			a.forbidden(w)
			return
		}

		ctx := context.WithValue(r.Context(), UsernameContextKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isProtected checks whether the path requires an admin token.
func (a *AdminAuthMiddleware) isProtected(path string) bool {
	for _, prefix := range a.cfg.ProtectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// parseToken validates the token signature and expiry and returns its claims.
func (a *AdminAuthMiddleware) parseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(a.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// extractBearer pulls the token out of the Authorization header.
func extractBearer(r *http.Request) string {
	header := r.Header.Get(AuthHeaderName)
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
}

// unauthorized sends a 401 response.
func (a *AdminAuthMiddleware) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}

// forbidden sends a 403 response.
func (a *AdminAuthMiddleware) forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"success":false,"message":"admin role required"}`))
}

// GetUsername retrieves the authenticated username from the request context.
func GetUsername(ctx context.Context) string {
	if name, ok := ctx.Value(UsernameContextKey).(string); ok {
		return name
	}
	return ""
}
