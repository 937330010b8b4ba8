package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartpos/internal/dto"
	"smartpos/internal/model"
	"smartpos/internal/repository"

	"gorm.io/gorm"
)

const renewalDays = 30

// SubscriptionService owns the login-time eligibility gate and the
// superadmin billing operations.
type SubscriptionService interface {
	// CheckEligibility decides whether a business may log in. It has a
	// write-through side effect: a trial/active subscription whose end_date
	// has passed is persisted as expired before the login is blocked.
	CheckEligibility(ctx context.Context, businessID uint) error

	ListClients(ctx context.Context) ([]dto.ClientSummary, error)
	Activate(ctx context.Context, businessID uint) (*dto.SubscriptionActionResponse, error)
	Renew(ctx context.Context, businessID uint) (*dto.SubscriptionActionResponse, error)
	Suspend(ctx context.Context, businessID uint) (*dto.SubscriptionActionResponse, error)
	Reactivate(ctx context.Context, businessID uint) (*dto.SubscriptionActionResponse, error)
}

type subscriptionService struct {
	repo     repository.SubscriptionRepository
	bizRepo  repository.BusinessRepository
	userRepo repository.UserRepository
}

func NewSubscriptionService(
	repo repository.SubscriptionRepository,
	bizRepo repository.BusinessRepository,
	userRepo repository.UserRepository,
) SubscriptionService {
	return &subscriptionService{repo: repo, bizRepo: bizRepo, userRepo: userRepo}
}

func (s *subscriptionService) CheckEligibility(ctx context.Context, businessID uint) error {
	sub, err := s.repo.FindByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &SubscriptionBlockedError{Reason: "missing subscription"}
		}
		return err
	}

	switch sub.Status {
	case model.SubscriptionSuspended:
		return &SubscriptionBlockedError{Reason: "suspended"}
	case model.SubscriptionTrial, model.SubscriptionActive:
		if sub.EndDate.Before(time.Now()) {
			sub.Status = model.SubscriptionExpired
			if err := s.repo.Update(ctx, sub); err != nil {
				return err
			}
			return &SubscriptionBlockedError{Reason: "expired"}
		}
		return nil
	case model.SubscriptionExpired:
		return &SubscriptionBlockedError{Reason: "expired"}
	default:
		return &SubscriptionBlockedError{Reason: "suspended"}
	}
}

func (s *subscriptionService) ListClients(ctx context.Context) ([]dto.ClientSummary, error) {
	businesses, err := s.bizRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]dto.ClientSummary, 0, len(businesses))
	for _, biz := range businesses {
		row := dto.ClientSummary{
			BusinessID:         biz.ID,
			BusinessCode:       biz.BusinessCode,
			BusinessName:       biz.BusinessName,
			Phone:              biz.Phone,
			SubscriptionStatus: "none",
		}
		if sub := biz.Subscription; sub != nil {
			row.SubscriptionStatus = string(sub.Status)
			row.IsActive = sub.IsActive()
			daysLeft := int(sub.EndDate.Sub(now).Hours() / 24)
			row.DaysLeft = &daysLeft
		}
		if owner, err := s.userRepo.FindOwner(ctx, biz.ID); err == nil {
			row.OwnerLastLogin = owner.LastLogin
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *subscriptionService) Activate(ctx context.Context, businessID uint) (*dto.SubscriptionActionResponse, error) {
	return s.mutate(ctx, businessID, "subscription activated for 30 days", func(sub *model.Subscription) {
		now := time.Now()
		sub.Status = model.SubscriptionActive
		sub.StartDate = now
		sub.EndDate = now.AddDate(0, 0, renewalDays)
	})
}

func (s *subscriptionService) Renew(ctx context.Context, businessID uint) (*dto.SubscriptionActionResponse, error) {
	return s.mutate(ctx, businessID, "subscription renewed +30 days", func(sub *model.Subscription) {
		sub.Status = model.SubscriptionActive
		sub.EndDate = sub.EndDate.AddDate(0, 0, renewalDays)
	})
}

func (s *subscriptionService) Suspend(ctx context.Context, businessID uint) (*dto.SubscriptionActionResponse, error) {
	return s.mutate(ctx, businessID, "business suspended", func(sub *model.Subscription) {
		sub.Status = model.SubscriptionSuspended
	})
}

func (s *subscriptionService) Reactivate(ctx context.Context, businessID uint) (*dto.SubscriptionActionResponse, error) {
	return s.mutate(ctx, businessID, "business reactivated", func(sub *model.Subscription) {
		sub.Status = model.SubscriptionActive
	})
}

func (s *subscriptionService) mutate(ctx context.Context, businessID uint, msg string, apply func(*model.Subscription)) (*dto.SubscriptionActionResponse, error) {
	sub, err := s.repo.FindByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("subscription for business %d: %w", businessID, ErrNotFound)
		}
		return nil, err
	}

	apply(sub)
	sub.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}

	return &dto.SubscriptionActionResponse{
		BusinessID: businessID,
		Status:     string(sub.Status),
		EndDate:    sub.EndDate,
		Message:    msg,
	}, nil
}
