package repository

import (
	"context"
	"time"

	"smartpos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevokedTokenRepository persists logged-out token hashes. Rows become
// useless once the token itself has expired; DeleteExpired reclaims them.
type RevokedTokenRepository interface {
	Add(ctx context.Context, tokenHash string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type revokedTokenRepo struct{ db *gorm.DB }

func NewRevokedTokenRepository(db *gorm.DB) RevokedTokenRepository {
	return &revokedTokenRepo{db: db}
}

func (r *revokedTokenRepo) Add(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	row := model.RevokedToken{TokenHash: tokenHash, ExpiresAt: expiresAt}
	// Revoking twice (double logout) is a no-op.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

func (r *revokedTokenRepo) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RevokedToken{}).
		Where("token_hash = ?", tokenHash).Count(&count).Error
	return count > 0, err
}

func (r *revokedTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).Delete(&model.RevokedToken{})
	return res.RowsAffected, res.Error
}
