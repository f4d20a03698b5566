package repo

import (
	"context"
	"time"

	"github.com/pocketshop/backend/internal/models"
)

func (r *GormRepo) CreateAccount(ctx context.Context, account models.Account) error {
	return r.DB.WithContext(ctx).Create(&account).Error
}

func (r *GormRepo) AccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	if err := r.DB.WithContext(ctx).First(&account, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *GormRepo) AccountByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	if err := r.DB.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *GormRepo) SaveRefreshToken(ctx context.Context, jti, accountID string, expiresAt time.Time) error {
	token := models.RefreshToken{JTI: jti, AccountID: accountID, ExpiresAt: expiresAt.Unix()}
	return r.DB.WithContext(ctx).Create(&token).Error
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, jti string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("jti = ?", jti).
		Update("revoked", true).Error
}

func (r *GormRepo) RefreshTokenUsable(ctx context.Context, jti string) (bool, error) {
	var token models.RefreshToken
	if err := r.DB.WithContext(ctx).First(&token, "jti = ?", jti).Error; err != nil {
		return false, err
	}
	return !token.Revoked && token.ExpiresAt > time.Now().Unix(), nil
}
