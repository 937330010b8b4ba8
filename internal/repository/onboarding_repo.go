package repository

import (
	"context"

	"smartpos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OnboardingRepository interface {
	// RecordEvent inserts the (business, event) row; the unique constraint
	// plus ON CONFLICT DO NOTHING make repeated calls no-ops.
	RecordEvent(ctx context.Context, businessID uint, event string) error
	HasEvent(ctx context.Context, businessID uint, event string) (bool, error)
}

type onboardingRepo struct{ db *gorm.DB }

func NewOnboardingRepository(db *gorm.DB) OnboardingRepository {
	return &onboardingRepo{db: db}
}

func (r *onboardingRepo) RecordEvent(ctx context.Context, businessID uint, event string) error {
	ev := model.OnboardingEvent{BusinessID: businessID, Event: event}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ev).Error
}

func (r *onboardingRepo) HasEvent(ctx context.Context, businessID uint, event string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OnboardingEvent{}).
		Where("business_id = ? AND event = ?", businessID, event).Count(&count).Error
	return count > 0, err
}
