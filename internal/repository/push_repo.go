package repository

import (
	"context"

	"smartpos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PushSubscriptionRepository interface {
	// Upsert keys on endpoint: the same device re-subscribing updates its
	// keys and ownership instead of creating a duplicate row.
	Upsert(ctx context.Context, sub *model.PushSubscription) error
	ListByBusiness(ctx context.Context, businessID uint) ([]model.PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, endpoint string) error
}

type pushRepo struct{ db *gorm.DB }

func NewPushSubscriptionRepository(db *gorm.DB) PushSubscriptionRepository {
	return &pushRepo{db: db}
}

func (r *pushRepo) Upsert(ctx context.Context, sub *model.PushSubscription) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "business_id", "p256dh", "auth"}),
	}).Create(sub).Error
}

func (r *pushRepo) ListByBusiness(ctx context.Context, businessID uint) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := r.db.WithContext(ctx).Where("business_id = ?", businessID).Find(&subs).Error
	return subs, err
}

func (r *pushRepo) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	return r.db.WithContext(ctx).Where("endpoint = ?", endpoint).
		Delete(&model.PushSubscription{}).Error
}
