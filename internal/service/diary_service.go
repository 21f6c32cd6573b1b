package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sevendays/diary-core/internal/model"
	"github.com/sevendays/diary-core/internal/repository"
	"github.com/sevendays/diary-core/internal/schedule"
)

// DiaryService — создание дневника. Дневник появляется сразу с правилом
// доступности по умолчанию, поэтому запись идёт одной транзакцией.
type DiaryService struct {
	db      *gorm.DB
	diaries repository.DiaryRepository
	users   repository.UserRepository
	events  repository.EventRepository
}

func NewDiaryService(db *gorm.DB, diaries repository.DiaryRepository, users repository.UserRepository, events repository.EventRepository) *DiaryService {
	return &DiaryService{db: db, diaries: diaries, users: users, events: events}
}

// DiaryParams — параметры нового дневника.
type DiaryParams struct {
	Title       string
	Description string
}

// Create создаёт дневник владельца вместе с правилом по умолчанию.
// Только владелец может завести дневник, и не больше одного.
func (s *DiaryService) Create(ctx context.Context, ownerID uuid.UUID, p DiaryParams, now time.Time) (*model.Diary, error) {
	user, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if !user.Owner() {
		return nil, ErrNotOwner
	}

	if _, err := s.diaries.GetByUserID(ctx, user.ID); err == nil {
		return nil, ErrDiaryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if errs := validateDiaryParams(p); errs.Any() {
		return nil, &ValidationError{Fields: errs}
	}

	diary := &model.Diary{
		ID:          uuid.New(),
		UserID:      user.ID,
		Title:       p.Title,
		Description: p.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	rule := model.NewDefaultRule(diary.ID, user.ID)
	rule.ID = uuid.New()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(diary).Error; err != nil {
			return err
		}
		return tx.Create(rule).Error
	})
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		ID:        uuid.New(),
		EventType: model.EventTypeDiaryCreated,
		UserID:    &user.ID,
		DiaryID:   &diary.ID,
	}
	if err := s.events.Record(ctx, event); err != nil {
		logEventError(model.EventTypeDiaryCreated, err)
	}

	return diary, nil
}

// Get возвращает дневник по ID.
func (s *DiaryService) Get(ctx context.Context, diaryID uuid.UUID) (*model.Diary, error) {
	diary, err := s.diaries.GetByID(ctx, diaryID)
	if err != nil {
		return nil, notFound(err, ErrDiaryNotFound)
	}
	return diary, nil
}

const (
	diaryDescriptionMinLen = 10
	diaryDescriptionMaxLen = 1000
)

func validateDiaryParams(p DiaryParams) schedule.ValidationErrors {
	errs := schedule.ValidationErrors{}
	if p.Title == "" {
		errs.Add("title", "can't be blank")
	}
	switch {
	case p.Description == "":
		errs.Add("description", "can't be blank")
	case len(p.Description) < diaryDescriptionMinLen || len(p.Description) > diaryDescriptionMaxLen:
		errs.Add("description", fmt.Sprintf("must be between %d and %d characters", diaryDescriptionMinLen, diaryDescriptionMaxLen))
	}
	return errs
}
