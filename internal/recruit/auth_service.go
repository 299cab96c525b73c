package recruit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/almanarhr/recruit-api/internal/config"
	"github.com/almanarhr/recruit-api/internal/middleware"
	"github.com/almanarhr/recruit-api/internal/models"
	"github.com/almanarhr/recruit-api/internal/storage"
)

// ErrInvalidCredentials is returned for a wrong username or password.
// Callers must not distinguish the two.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService issues admin JWTs and manages the bootstrap admin account.
type AuthService struct {
	admins storage.AdminRepo
	cfg    config.AuthConfig
	logger *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(admins storage.AdminRepo, cfg config.AuthConfig, logger *zap.Logger) *AuthService {
	return &AuthService{admins: admins, cfg: cfg, logger: logger}
}

// LoginResult carries the signed token returned to the admin frontend.
type LoginResult struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login verifies the credentials and returns a signed HS256 token with the
// account's role claim.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("failed login attempt", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.cfg.TokenTTL)
	claims := middleware.Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: expiresAt,
	}, nil
}

// EnsureAdmin seeds the bootstrap admin account from configuration when it
// does not already exist. A no-op when no admin password is configured.
func (s *AuthService) EnsureAdmin(ctx context.Context) error {
	if s.cfg.AdminUsername == "" || s.cfg.AdminPassword == "" {
		return nil
	}

	existing, err := s.admins.GetByUsername(ctx, s.cfg.AdminUsername)
	if err != nil {
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &models.AdminUser{
		ID:           uuid.NewString(),
		Username:     s.cfg.AdminUsername,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.admins.Upsert(ctx, user); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	s.logger.Info("seeded bootstrap admin account", zap.String("username", user.Username))
	return nil
}
