package repository

import (
	"context"

	"smartpos/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateTx(tx *gorm.DB, o *model.Order) error
	// NextOrderNumber pulls from a PostgreSQL sequence so concurrent order
	// transactions can never allocate the same code.
	NextOrderNumber(ctx context.Context, tx *gorm.DB) (int64, error)
	HasRealSale(ctx context.Context, businessID uint) (bool, error)
	HasDemoSale(ctx context.Context, businessID uint) (bool, error)
	// PurgeDemoTx deletes all demo line items and their parent demo orders
	// for a business.
	PurgeDemoTx(tx *gorm.DB, businessID uint) error
	// ListLines returns the flattened sales report rows, newest first,
	// with order and product preloaded.
	ListLines(ctx context.Context, businessID uint) ([]model.Sale, error)

	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Create(o).Error
}

func (r *orderRepo) NextOrderNumber(ctx context.Context, tx *gorm.DB) (int64, error) {
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('order_code_seq')").Scan(&num).Error
	return num, err
}

func (r *orderRepo) HasRealSale(ctx context.Context, businessID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("business_id = ? AND is_demo = false", businessID).Count(&count).Error
	return count > 0, err
}

func (r *orderRepo) HasDemoSale(ctx context.Context, businessID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("business_id = ? AND is_demo = true", businessID).Count(&count).Error
	return count > 0, err
}

func (r *orderRepo) PurgeDemoTx(tx *gorm.DB, businessID uint) error {
	if err := tx.Where("business_id = ? AND is_demo = true", businessID).
		Delete(&model.Sale{}).Error; err != nil {
		return err
	}
	return tx.Where("business_id = ? AND is_demo = true", businessID).
		Delete(&model.Order{}).Error
}

func (r *orderRepo) ListLines(ctx context.Context, businessID uint) ([]model.Sale, error) {
	var lines []model.Sale
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Preload("Product").Preload("Order").
		Order("created_at DESC, id DESC").
		Find(&lines).Error
	return lines, err
}
