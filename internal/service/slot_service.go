package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sevendays/diary-core/internal/repository"
	"github.com/sevendays/diary-core/internal/schedule"
)

// SlotService считает свободные слоты дневника на дату.
type SlotService struct {
	diaries  repository.DiaryRepository
	rules    repository.RuleRepository
	bookings repository.BookingRepository
}

func NewSlotService(
	diaries repository.DiaryRepository,
	rules repository.RuleRepository,
	bookings repository.BookingRepository,
) *SlotService {
	return &SlotService{diaries: diaries, rules: rules, bookings: bookings}
}

// AvailableSlots возвращает свободные слоты на date. Дневник без правила
// (или дата вне правила) даёт пустой список, а не ошибку.
func (s *SlotService) AvailableSlots(ctx context.Context, diaryID uuid.UUID, date, now time.Time) ([]schedule.Slot, error) {
	diary, err := s.diaries.GetByID(ctx, diaryID)
	if err != nil {
		return nil, notFound(err, ErrDiaryNotFound)
	}

	rule, err := s.rules.GetByDiaryID(ctx, diary.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		rule = nil // нет правила — нет слотов
	}

	day := schedule.DateOnly(date)

	active, err := s.bookings.ListActiveByDate(ctx, diary.ID, day)
	if err != nil {
		return nil, err
	}

	booked := make([]schedule.BookedInterval, 0, len(active))
	for i := range active {
		booked = append(booked, active[i].Interval())
	}

	var window *schedule.Rule
	if rule != nil {
		w := rule.Window()
		window = &w
	}

	return schedule.AvailableSlots(window, day, booked, now), nil
}

// AvailableSlotsPage — то же, но страницей: длинные окна с короткими
// сессиями дают десятки слотов.
func (s *SlotService) AvailableSlotsPage(ctx context.Context, diaryID uuid.UUID, date, now time.Time, page, pageSize int) (schedule.Page[schedule.Slot], error) {
	slots, err := s.AvailableSlots(ctx, diaryID, date, now)
	if err != nil {
		return schedule.Page[schedule.Slot]{}, err
	}
	return schedule.Paginate(slots, page, pageSize), nil
}
