package repository

import (
	"context"

	"smartpos/internal/model"

	"gorm.io/gorm"
)

// ProductRepository scopes every query by business_id: a product id from
// another tenant behaves exactly like a missing product.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, businessID, id uint) (*model.Product, error)
	FindByNameTx(tx *gorm.DB, businessID uint, name string) (*model.Product, error)
	ExistsByName(ctx context.Context, businessID uint, name string) (bool, error)
	List(ctx context.Context, businessID uint) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	CountByBusiness(ctx context.Context, businessID uint) (int64, error)

	// DecrementStockTx performs the conditional atomic decrement
	// "quantity = quantity - n WHERE quantity >= n" and returns the number
	// of affected rows; zero means insufficient stock.
	DecrementStockTx(tx *gorm.DB, businessID, id uint, qty int) (int64, error)

	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, businessID, id uint) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).First(&p).Error
	return &p, err
}

func (r *productRepo) FindByNameTx(tx *gorm.DB, businessID uint, name string) (*model.Product, error) {
	var p model.Product
	err := tx.Where("name = ? AND business_id = ?", name, businessID).First(&p).Error
	return &p, err
}

func (r *productRepo) ExistsByName(ctx context.Context, businessID uint, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("name = ? AND business_id = ?", name, businessID).Count(&count).Error
	return count > 0, err
}

func (r *productRepo) List(ctx context.Context, businessID uint) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) CountByBusiness(ctx context.Context, businessID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("business_id = ?", businessID).Count(&count).Error
	return count, err
}

func (r *productRepo) DecrementStockTx(tx *gorm.DB, businessID, id uint, qty int) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND business_id = ? AND quantity >= ?", id, businessID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	return res.RowsAffected, res.Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
