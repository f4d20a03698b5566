package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketshop/backend/internal/models"
	"github.com/pocketshop/backend/internal/repo"
	"github.com/pocketshop/backend/internal/tokens"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Repo:          repo.NewGormRepo(newTestDB(t)),
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		role     string
	}{
		{name: "empty username", username: "", password: "secret", role: models.RoleCustomer},
		{name: "empty password", username: "user", password: "", role: models.RoleCustomer},
		{name: "unknown role", username: "user", password: "secret", role: "admin"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.password, tt.role)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret", models.RoleVendor)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other", models.RoleCustomer)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_LoginAndCurrentUser(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, "bob", "secret", models.RoleVendor)
	require.NoError(t, err)

	res, err := svc.Login(ctx, "bob", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)

	claims, err := tokens.AccessClaimsFromToken(res.AccessToken, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, models.RoleVendor, claims.Role)
	assert.Equal(t, account.ID, claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, res.AccessExp, claims.ExpiresAt.Time, time.Second)

	current, err := svc.CurrentUser(ctx, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, account.ID, current.ID)
	assert.Equal(t, models.RoleVendor, current.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "carol", "secret", models.RoleCustomer)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "carol", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_SignOutRevokesRefresh(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "dave", "secret", models.RoleCustomer)
	require.NoError(t, err)
	res, err := svc.Login(ctx, "dave", "secret")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, res.RefreshToken))

	_, err = svc.Refresh(ctx, res.RefreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}
