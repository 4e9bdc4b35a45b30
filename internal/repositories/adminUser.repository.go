package repositories

import (
	"context"
	"errors"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"

	"gorm.io/gorm"
)

type AdminUserRepository interface {
	Create(ctx context.Context, admin *AdminUser) error
	GetByID(ctx context.Context, id string) (*AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*AdminUser, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type adminUserRepository struct {
	db  database.DB
	log logger.Logger
}

func NewAdminUser(db database.DB) AdminUserRepository {
	return &adminUserRepository{
		db:  db,
		log: logger.New("adminUserRepository"),
	}
}

func (r *adminUserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *adminUserRepository) Create(ctx context.Context, admin *AdminUser) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(admin).Error; err != nil {
		return log.Err("failed to create admin user", err, "username", admin.Username)
	}

	return nil
}

func (r *adminUserRepository) GetByID(ctx context.Context, id string) (*AdminUser, error) {
	log := r.log.Function("GetByID")

	var admin AdminUser
	if err := r.getDB(ctx).First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, log.Err("failed to get admin user by id", err, "id", id)
	}

	return &admin, nil
}

func (r *adminUserRepository) GetByUsername(ctx context.Context, username string) (*AdminUser, error) {
	log := r.log.Function("GetByUsername")

	var admin AdminUser
	if err := r.getDB(ctx).First(&admin, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, log.Err("failed to get admin user by username", err, "username", username)
	}

	return &admin, nil
}

func (r *adminUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	log := r.log.Function("UpdatePassword")

	result := r.getDB(ctx).Model(&AdminUser{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return log.Err("failed to update admin password", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}

	return nil
}
