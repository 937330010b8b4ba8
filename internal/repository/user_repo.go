package repository

import (
	"context"
	"time"

	"smartpos/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	CreateTx(tx *gorm.DB, u *model.User) error
	Create(ctx context.Context, u *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	// FindOwner returns the first admin user of a business (the account
	// created at registration).
	FindOwner(ctx context.Context, businessID uint) (*model.User, error)
	SuperadminExists(ctx context.Context) (bool, error)
	StampLastLogin(ctx context.Context, id uint, at time.Time) error
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) CreateTx(tx *gorm.DB, u *model.User) error {
	return tx.Create(u).Error
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	return &u, err
}

func (r *userRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *userRepo) FindOwner(ctx context.Context, businessID uint) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND role = ?", businessID, model.RoleAdmin).
		Order("id ASC").First(&u).Error
	return &u, err
}

func (r *userRepo) SuperadminExists(ctx context.Context) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ?", model.RoleSuperadmin).Count(&count).Error
	return count > 0, err
}

func (r *userRepo) StampLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("last_login", at).Error
}
