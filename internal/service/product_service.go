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

type ProductService interface {
	Add(ctx context.Context, businessID uint, req dto.AddProductRequest) (*dto.ProductResponse, error)
	// UpdateStock applies a partial patch; only supplied fields change.
	UpdateStock(ctx context.Context, businessID, productID uint, req dto.UpdateStockRequest) (*dto.ProductResponse, error)
	List(ctx context.Context, businessID uint) ([]dto.ProductResponse, error)
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Add(ctx context.Context, businessID uint, req dto.AddProductRequest) (*dto.ProductResponse, error) {
	exists, err := s.repo.ExistsByName(ctx, businessID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("product %q %w", req.Name, ErrConflict)
	}

	// Price floor: boundary inclusive, price == buying_price is fine.
	if req.BuyingPrice != nil && req.Price.LessThan(*req.BuyingPrice) {
		return nil, fmt.Errorf("product %q: %w", req.Name, ErrInvalidPrice)
	}

	p := &model.Product{
		BusinessID:  businessID,
		Name:        req.Name,
		Price:       req.Price,
		BuyingPrice: req.BuyingPrice,
		Quantity:    req.Quantity,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) UpdateStock(ctx context.Context, businessID, productID uint, req dto.UpdateStockRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, businessID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Cross-tenant ids fail identically — no tenant enumeration.
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, err
	}

	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.BuyingPrice != nil {
		p.BuyingPrice = req.BuyingPrice
	}

	if p.BuyingPrice != nil && p.Price.LessThan(*p.BuyingPrice) {
		return nil, fmt.Errorf("product %q: %w", p.Name, ErrInvalidPrice)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, businessID uint) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx, businessID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}
	return out, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		BuyingPrice: p.BuyingPrice,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
