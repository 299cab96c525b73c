package recruit

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/almanarhr/recruit-api/internal/config"
	"github.com/almanarhr/recruit-api/internal/middleware"
	"github.com/almanarhr/recruit-api/internal/models"
	"github.com/almanarhr/recruit-api/internal/storage"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	cfg := config.AuthConfig{
		Enabled:       true,
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
		AdminUsername: "admin",
		AdminPassword: "hunter2",
	}
	svc := NewAuthService(storage.NewInMemoryAdminRepo(), cfg, zap.NewNop())
	require.NoError(t, svc.EnsureAdmin(context.Background()))
	return svc
}

func TestLoginIssuesAdminToken(t *testing.T) {
	svc := newAuthFixture(t)

	result, err := svc.Login(context.Background(), "admin", "hunter2")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "admin", result.Username)
	assert.Equal(t, models.RoleAdmin, result.Role)
	assert.NotEmpty(t, result.Token)

	claims := &middleware.Claims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown user yields the same error as wrong password.
	_, err = svc.Login(ctx, "nobody", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewInMemoryAdminRepo()
	cfg := config.AuthConfig{
		Enabled:       true,
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
		AdminUsername: "admin",
		AdminPassword: "hunter2",
	}
	svc := NewAuthService(repo, cfg, zap.NewNop())

	require.NoError(t, svc.EnsureAdmin(ctx))
	first, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, first)

	// A second call does not replace the existing account.
	require.NoError(t, svc.EnsureAdmin(ctx))
	second, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.PasswordHash, second.PasswordHash)
}

func TestEnsureAdminSkipsWithoutPassword(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewInMemoryAdminRepo()
	svc := NewAuthService(repo, config.AuthConfig{AdminUsername: "admin"}, zap.NewNop())

	require.NoError(t, svc.EnsureAdmin(ctx))
	user, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Nil(t, user)
}
