package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sevendays/diary-core/internal/model"
)

type DiaryRepository interface {
	// Найти дневник по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Diary, error)
	// Найти дневник владельца.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Diary, error)
}

type GormDiaryRepository struct {
	db *gorm.DB
}

func NewGormDiaryRepository(db *gorm.DB) *GormDiaryRepository {
	return &GormDiaryRepository{db: db}
}

func (r *GormDiaryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Diary, error) {
	var d model.Diary
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *GormDiaryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Diary, error) {
	var d model.Diary
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}
