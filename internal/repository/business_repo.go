package repository

import (
	"context"

	"smartpos/internal/model"

	"gorm.io/gorm"
)

// BusinessRepository defines data access for tenants. Services depend on
// this interface, not on the concrete GORM implementation, enabling clean
// unit testing via in-memory stubs.
type BusinessRepository interface {
	CreateTx(tx *gorm.DB, b *model.Business) error
	FindByID(ctx context.Context, id uint) (*model.Business, error)
	FindByEmail(ctx context.Context, email string) (*model.Business, error)
	// UpdateCodeTx stamps the derived business_code after the row exists.
	UpdateCodeTx(tx *gorm.DB, id uint, code string) error
	ListAll(ctx context.Context) ([]model.Business, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type businessRepo struct{ db *gorm.DB }

func NewBusinessRepository(db *gorm.DB) BusinessRepository { return &businessRepo{db: db} }

func (r *businessRepo) CreateTx(tx *gorm.DB, b *model.Business) error {
	return tx.Create(b).Error
}

func (r *businessRepo) FindByID(ctx context.Context, id uint) (*model.Business, error) {
	var b model.Business
	err := r.db.WithContext(ctx).First(&b, id).Error
	return &b, err
}

func (r *businessRepo) FindByEmail(ctx context.Context, email string) (*model.Business, error) {
	var b model.Business
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&b).Error
	return &b, err
}

func (r *businessRepo) UpdateCodeTx(tx *gorm.DB, id uint, code string) error {
	return tx.Model(&model.Business{}).Where("id = ?", id).Update("business_code", code).Error
}

func (r *businessRepo) ListAll(ctx context.Context) ([]model.Business, error) {
	var businesses []model.Business
	err := r.db.WithContext(ctx).Preload("Subscription").Order("id ASC").Find(&businesses).Error
	return businesses, err
}

func (r *businessRepo) DB() *gorm.DB { return r.db }
