package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sevendays/diary-core/internal/model"
)

type RuleRepository interface {
	// Правило дневника; gorm.ErrRecordNotFound, если его нет.
	GetByDiaryID(ctx context.Context, diaryID uuid.UUID) (*model.AvailabilityRule, error)
	// Создать правило.
	Create(ctx context.Context, rule *model.AvailabilityRule) error
	// Сохранить все поля правила.
	Save(ctx context.Context, rule *model.AvailabilityRule) error
}

type GormRuleRepository struct {
	db *gorm.DB
}

func NewGormRuleRepository(db *gorm.DB) *GormRuleRepository {
	return &GormRuleRepository{db: db}
}

func (r *GormRuleRepository) GetByDiaryID(ctx context.Context, diaryID uuid.UUID) (*model.AvailabilityRule, error) {
	var rule model.AvailabilityRule
	if err := r.db.WithContext(ctx).Where("diary_id = ?", diaryID).First(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *GormRuleRepository) Create(ctx context.Context, rule *model.AvailabilityRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *GormRuleRepository) Save(ctx context.Context, rule *model.AvailabilityRule) error {
	// Save вместо Updates: nil-поля отложенной смены тоже должны записаться.
	return r.db.WithContext(ctx).Save(rule).Error
}
