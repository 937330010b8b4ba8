package service

import (
	"context"
	"fmt"
	"time"

	"smartpos/internal/dto"
	"smartpos/internal/model"
	"smartpos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	// RecordSale creates an order with its line items in one transaction:
	// all lines succeed and stock is decremented consistently, or nothing
	// persists. fromOnboarding marks requests originating from the
	// onboarding walkthrough (?source=onboarding).
	RecordSale(ctx context.Context, businessID uint, req dto.RecordSaleRequest, fromOnboarding bool) (*dto.RecordSaleResponse, error)
	// ListSalesLines flattens Order x Sale x Product for the business,
	// newest first, demo rows included.
	ListSalesLines(ctx context.Context, businessID uint) ([]dto.SalesItemRow, error)
}

type saleService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
}

func NewSaleService(orders repository.OrderRepository, products repository.ProductRepository) SaleService {
	return &saleService{orders: orders, products: products}
}

// ── RecordSale ────────────────────────────────────────────────────────────────
// Two-phase write inside one transaction:
//   1. Demo purge (real sales only): previously recorded demo orders and
//      lines are scaffolding, deleted the moment genuine activity occurs.
//   2. Allocate the order code from the sequence.
//   3. Per line: resolve product by (name, business), then either the demo
//      branch (no stock check, no decrement) or the real branch (price
//      floor, conditional atomic decrement).
//   4. Insert order header + lines together.

func (s *saleService) RecordSale(ctx context.Context, businessID uint, req dto.RecordSaleRequest, fromOnboarding bool) (*dto.RecordSaleResponse, error) {
	// A sale is a demo only while the business has never sold for real.
	demo := false
	if fromOnboarding {
		hasReal, err := s.orders.HasRealSale(ctx, businessID)
		if err != nil {
			return nil, err
		}
		demo = !hasReal
	}

	var resp *dto.RecordSaleResponse
	txErr := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if !demo {
			if err := s.orders.PurgeDemoTx(tx, businessID); err != nil {
				return err
			}
		}

		num, err := s.orders.NextOrderNumber(ctx, tx)
		if err != nil {
			return err
		}
		code := fmt.Sprintf("ORD-%05d", num)

		totalAmount := decimal.Zero
		totalProfit := decimal.Zero
		lines := make([]model.Sale, 0, len(req.Items))
		respLines := make([]dto.SaleLineResponse, 0, len(req.Items))

		for _, item := range req.Items {
			p, err := s.products.FindByNameTx(tx, businessID, item.ProductName)
			if err != nil {
				return fmt.Errorf("product %q: %w", item.ProductName, ErrNotFound)
			}

			qty := decimal.NewFromInt(int64(item.Quantity))
			lineTotal := item.SellingPrice.Mul(qty)

			if !demo {
				// Boundary inclusive: selling at exactly buying price passes.
				if p.BuyingPrice != nil && item.SellingPrice.LessThan(*p.BuyingPrice) {
					return fmt.Errorf("product %q: %w", p.Name, ErrPriceFloorViolation)
				}
				affected, err := s.products.DecrementStockTx(tx, businessID, p.ID, item.Quantity)
				if err != nil {
					return err
				}
				if affected == 0 {
					return fmt.Errorf("product %q: %w", p.Name, ErrInsufficientStock)
				}
			}

			buying := decimal.Zero
			if p.BuyingPrice != nil {
				buying = *p.BuyingPrice
			}
			totalAmount = totalAmount.Add(lineTotal)
			totalProfit = totalProfit.Add(item.SellingPrice.Sub(buying).Mul(qty))

			lines = append(lines, model.Sale{
				BusinessID: businessID,
				ProductID:  p.ID,
				Quantity:   item.Quantity,
				TotalPrice: lineTotal,
				IsDemo:     demo,
			})
			respLines = append(respLines, dto.SaleLineResponse{
				ProductName:  p.Name,
				QuantitySold: item.Quantity,
				TotalPrice:   lineTotal,
			})
		}

		order := &model.Order{
			OrderCode:   code,
			BusinessID:  businessID,
			ClientName:  req.ClientName,
			SalesPerson: req.SalesPerson,
			TotalAmount: totalAmount,
			IsDemo:      demo,
			Lines:       lines,
		}
		if err := s.orders.CreateTx(tx, order); err != nil {
			return err
		}

		resp = &dto.RecordSaleResponse{
			OrderCode:   code,
			TotalAmount: totalAmount,
			TotalProfit: totalProfit,
			IsDemo:      demo,
			Lines:       respLines,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return resp, nil
}

func (s *saleService) ListSalesLines(ctx context.Context, businessID uint) ([]dto.SalesItemRow, error) {
	lines, err := s.orders.ListLines(ctx, businessID)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.SalesItemRow, 0, len(lines))
	for _, line := range lines {
		row := dto.SalesItemRow{
			Quantity:   line.Quantity,
			TotalPrice: line.TotalPrice,
			IsDemo:     line.IsDemo,
			CreatedAt:  line.CreatedAt.Format(time.RFC3339),
		}
		if line.Product != nil {
			row.ProductName = line.Product.Name
		}
		if line.Order != nil {
			row.OrderCode = line.Order.OrderCode
			row.ClientName = line.Order.ClientName
			row.SalesPerson = line.Order.SalesPerson
		}
		rows = append(rows, row)
	}
	return rows, nil
}
