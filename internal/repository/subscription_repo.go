package repository

import (
	"context"

	"smartpos/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	CreateTx(tx *gorm.DB, s *model.Subscription) error
	FindByBusinessID(ctx context.Context, businessID uint) (*model.Subscription, error)
	Update(ctx context.Context, s *model.Subscription) error
}

type subscriptionRepo struct{ db *gorm.DB }

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) CreateTx(tx *gorm.DB, s *model.Subscription) error {
	return tx.Create(s).Error
}

func (r *subscriptionRepo) FindByBusinessID(ctx context.Context, businessID uint) (*model.Subscription, error) {
	var s model.Subscription
	err := r.db.WithContext(ctx).Where("business_id = ?", businessID).First(&s).Error
	return &s, err
}

func (r *subscriptionRepo) Update(ctx context.Context, s *model.Subscription) error {
	return r.db.WithContext(ctx).Save(s).Error
}
