package service

import (
	"context"

	"smartpos/internal/dto"
	"smartpos/internal/model"
	"smartpos/internal/repository"
)

type OnboardingService interface {
	// RecordEvent is idempotent: repeats are no-ops, not errors.
	RecordEvent(ctx context.Context, businessID uint, event string) error
	Status(ctx context.Context, businessID uint) (*dto.OnboardingStatusResponse, error)
}

type onboardingService struct {
	events   repository.OnboardingRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
}

func NewOnboardingService(
	events repository.OnboardingRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
) OnboardingService {
	return &onboardingService{events: events, products: products, orders: orders}
}

func (s *onboardingService) RecordEvent(ctx context.Context, businessID uint, event string) error {
	return s.events.RecordEvent(ctx, businessID, event)
}

// Status derives each step from the logged event OR from a stronger reality
// signal. The fallbacks exist so tenants that predate event logging are not
// stuck at 0% despite having products and sales.
func (s *onboardingService) Status(ctx context.Context, businessID uint) (*dto.OnboardingStatusResponse, error) {
	productCount, err := s.products.CountByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	hasProduct := productCount > 0

	hasRealSale, err := s.orders.HasRealSale(ctx, businessID)
	if err != nil {
		return nil, err
	}

	viewedStock, err := s.events.HasEvent(ctx, businessID, model.EventViewStock)
	if err != nil {
		return nil, err
	}
	viewedReport, err := s.events.HasEvent(ctx, businessID, model.EventViewReport)
	if err != nil {
		return nil, err
	}

	steps := dto.OnboardingSteps{
		AddProduct:  hasProduct,
		UpdateStock: viewedStock || hasProduct,
		SellProduct: hasRealSale,
		ViewReport:  viewedReport || hasRealSale,
	}

	completed := 0
	for _, done := range []bool{steps.AddProduct, steps.UpdateStock, steps.SellProduct, steps.ViewReport} {
		if done {
			completed++
		}
	}

	return &dto.OnboardingStatusResponse{
		Steps:    steps,
		Progress: completed * 100 / 4,
	}, nil
}
