package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/andres-gutierrezri/kitty-project/domain"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByUUID(ctx context.Context, uuid string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "uuid = ?", uuid).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetAllUsers(ctx context.Context) (*[]domain.User, error) {
	var users []domain.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return &users, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) DeleteUser(ctx context.Context, uuid string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Child rows first: history, reviews, favorites. Orders stay for
		// bookkeeping but lose their owner reference on purge.
		if err := tx.Delete(&domain.LoginHistory{}, "user_uuid = ?", uuid).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Review{}, "user_uuid = ?", uuid).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Favorite{}, "user_uuid = ?", uuid).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.User{}, "uuid = ?", uuid).Error
	})
}

func (r *userRepository) GetUsersDueForDeletion(ctx context.Context, now time.Time) (*[]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("pending_deletion = ? AND scheduled_deletion_at <= ?", true, now).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return &users, nil
}

func (r *userRepository) RecordLogin(ctx context.Context, entry *domain.LoginHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *userRepository) GetLoginHistory(ctx context.Context, userUUID string, limit int) (*[]domain.LoginHistory, error) {
	var history []domain.LoginHistory
	err := r.db.WithContext(ctx).
		Where("user_uuid = ?", userUUID).
		Order("login_time DESC").
		Limit(limit).
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return &history, nil
}
