package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pocketshop/backend/internal/hash"
	"github.com/pocketshop/backend/internal/logging"
	"github.com/pocketshop/backend/internal/models"
	"github.com/pocketshop/backend/internal/repo"
	"github.com/pocketshop/backend/internal/tokens"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

type LoginResult struct {
	Account      models.Account
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

// Register creates an account with one of the two mutually exclusive roles.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*models.Account, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" {
		return nil, fmt.Errorf("%w: username required", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password required", ErrValidation)
	}
	if role != models.RoleVendor && role != models.RoleCustomer {
		return nil, fmt.Errorf("%w: role must be vendor or customer", ErrValidation)
	}

	if _, err := s.Repo.AccountByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	account := models.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: pwHash,
		Role:         role,
	}
	if err := s.Repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	account, err := s.Repo.AccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		l.Warn("login_failed", "error", err)
		return nil, err
	}
	if !hash.CheckPassword(account.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	accessExp := time.Now().Add(accessTTL)
	accessToken, err := tokens.NewAccessToken(s.JWTSecret, account.Role, account.ID, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(refreshTTL)
	refreshToken, jti, err := tokens.NewRefreshToken(s.RefreshSecret, account.ID, refreshExp)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SaveRefreshToken(ctx, jti, account.ID, refreshExp); err != nil {
		return nil, err
	}

	return &LoginResult{
		Account:      *account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

// CurrentUser resolves the session's account from its access token; the role
// on the account decides the operation set once, at session start.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*models.Account, error) {
	claims, err := tokens.AccessClaimsFromToken(accessToken, s.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid access token", ErrValidation)
	}
	account, err := s.Repo.AccountByID(ctx, claims.Subject)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return account, nil
}

func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return fmt.Errorf("%w: invalid refresh token", ErrValidation)
	}
	return mapNotFound(s.Repo.RevokeRefreshToken(ctx, claims.ID))
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrValidation)
	}
	usable, err := s.Repo.RefreshTokenUsable(ctx, claims.ID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !usable {
		return nil, fmt.Errorf("%w: token expired or revoked", ErrValidation)
	}

	account, err := s.Repo.AccountByID(ctx, claims.Subject)
	if err != nil {
		return nil, mapNotFound(err)
	}

	accessExp := time.Now().Add(accessTTL)
	accessToken, err := tokens.NewAccessToken(s.JWTSecret, account.Role, account.ID, accessExp)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Account:     *account,
		AccessToken: accessToken,
		AccessExp:   accessExp,
	}, nil
}
