package repository

import (
	"time"

	"gorm.io/gorm"

	"taskforce/internal/models"
)

// GormRevokedTokenRepository is a GORM implementation of RevokedTokenRepository
type GormRevokedTokenRepository struct {
	db *gorm.DB
}

// NewRevokedTokenRepository creates a new RevokedTokenRepository
func NewRevokedTokenRepository(db *gorm.DB) RevokedTokenRepository {
	return &GormRevokedTokenRepository{db: db}
}

// Revoke inserts a token into the revocation set
func (r *GormRevokedTokenRepository) Revoke(tokenString string, expiresAt time.Time) error {
	revoked := models.RevokedToken{
		Token:     tokenString,
		RevokedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	return r.db.Create(&revoked).Error
}

// IsRevoked reports whether a token is in the revocation set
func (r *GormRevokedTokenRepository) IsRevoked(tokenString string) (bool, error) {
	var count int64
	err := r.db.Model(&models.RevokedToken{}).
		Where("token = ?", tokenString).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteExpired prunes revocation rows whose token has expired anyway
func (r *GormRevokedTokenRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", now).Delete(&models.RevokedToken{})
	return result.RowsAffected, result.Error
}
