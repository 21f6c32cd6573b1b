package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sevendays/diary-core/internal/model"
	"github.com/sevendays/diary-core/internal/repository"
	"github.com/sevendays/diary-core/internal/schedule"
)

// Смена длительности вступает в силу через сутки, чтобы уже
// разосланные клиентам слоты не менялись под ногами.
const durationChangeDelay = 24 * time.Hour

// RuleService — правило доступности дневника: обновление и сброс к дефолтам.
type RuleService struct {
	diaries  repository.DiaryRepository
	rules    repository.RuleRepository
	bookings repository.BookingRepository
	users    repository.UserRepository
	events   repository.EventRepository
	locks    *DiaryLocker
}

func NewRuleService(
	diaries repository.DiaryRepository,
	rules repository.RuleRepository,
	bookings repository.BookingRepository,
	users repository.UserRepository,
	events repository.EventRepository,
	locks *DiaryLocker,
) *RuleService {
	return &RuleService{
		diaries:  diaries,
		rules:    rules,
		bookings: bookings,
		users:    users,
		events:   events,
		locks:    locks,
	}
}

// RuleParams — частичное обновление правила: nil-поле не трогается.
type RuleParams struct {
	StartTime       *schedule.TimeOfDay
	EndTime         *schedule.TimeOfDay
	WeekDays        []int
	StartDate       *time.Time
	EndDate         *time.Time
	ClearStartDate  bool
	ClearEndDate    bool
	DurationMinutes *int
}

// CreateOrUpdate применяет params к правилу дневника (создавая правило с
// дефолтами, если его ещё нет). Смена длительности не применяется сразу,
// а откладывается на durationChangeDelay. Перед записью все активные брони
// проверяются против нового правила; при конфликтах ничего не сохраняется.
func (s *RuleService) CreateOrUpdate(ctx context.Context, diaryID, ownerID uuid.UUID, p RuleParams, now time.Time) (*model.AvailabilityRule, error) {
	diary, err := s.authorizeOwner(ctx, diaryID, ownerID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(diary.ID)
	defer unlock()

	rule, err := s.rules.GetByDiaryID(ctx, diary.ID)
	created := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		rule = model.NewDefaultRule(diary.ID, diary.UserID)
		rule.ID = uuid.New()
		rule.CreatedAt = now
		created = true
	}

	draft := *rule
	applyRuleParams(&draft, p)

	var change *schedule.DurationChange
	if p.DurationMinutes != nil && *p.DurationMinutes != rule.SessionDurationMinutes {
		if created {
			// Свежее правило получает длительность сразу: откладывать
			// нечего, броней под старую сетку ещё нет.
			draft.SessionDurationMinutes = *p.DurationMinutes
			change = &schedule.DurationChange{
				NewMinutes:  *p.DurationMinutes,
				EffectiveAt: now,
			}
		} else {
			change = &schedule.DurationChange{
				NewMinutes:  *p.DurationMinutes,
				EffectiveAt: now.Add(durationChangeDelay),
			}
			// Текущая длительность остаётся, новая встаёт в очередь.
			draft.SessionDurationMinutes = rule.SessionDurationMinutes
			draft.SessionDurationMinutesNext = &change.NewMinutes
			draft.SessionDurationEffectiveAt = &change.EffectiveAt
		}
	}

	if errs := draft.Validate(); errs.Any() {
		return nil, &ValidationError{Fields: errs}
	}

	active, err := s.bookings.ListActive(ctx, diary.ID)
	if err != nil {
		return nil, err
	}

	if ids := schedule.RuleConflicts(draft.Window(), change, existingBookings(active)); len(ids) > 0 {
		return nil, &ConflictError{BookingIDs: ids}
	}

	draft.UpdatedAt = now
	if created {
		if err := s.rules.Create(ctx, &draft); err != nil {
			return nil, err
		}
	} else if err := s.rules.Save(ctx, &draft); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, model.EventTypeRuleUpdated, &diary.UserID, &diary.ID)

	return &draft, nil
}

// Reset безусловно возвращает правило к дефолтам: окно 09:00–19:00,
// сессии 60 минут, все дни недели, без границ дат и без отложенных смен.
// Валидация и проверка конфликтов не выполняются.
func (s *RuleService) Reset(ctx context.Context, diaryID, ownerID uuid.UUID, now time.Time) (*model.AvailabilityRule, error) {
	diary, err := s.authorizeOwner(ctx, diaryID, ownerID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(diary.ID)
	defer unlock()

	rule, err := s.rules.GetByDiaryID(ctx, diary.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		rule = model.NewDefaultRule(diary.ID, diary.UserID)
		rule.ID = uuid.New()
		rule.CreatedAt = now
		rule.UpdatedAt = now
		if err := s.rules.Create(ctx, rule); err != nil {
			return nil, err
		}
		s.recordEvent(ctx, model.EventTypeRuleReset, &diary.UserID, &diary.ID)
		return rule, nil
	}

	rule.StartTime = schedule.MustTimeOfDay(model.DefaultRuleStartTime)
	rule.EndTime = schedule.MustTimeOfDay(model.DefaultRuleEndTime)
	rule.WeekDays = datatypes.JSONSlice[int](model.DefaultWeekDays())
	rule.StartDate = nil
	rule.EndDate = nil
	rule.SessionDurationMinutes = model.DefaultSessionDurationMinutes
	rule.SessionDurationMinutesNext = nil
	rule.SessionDurationEffectiveAt = nil
	rule.UpdatedAt = now

	if err := s.rules.Save(ctx, rule); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, model.EventTypeRuleReset, &diary.UserID, &diary.ID)

	return rule, nil
}

// Get возвращает правило дневника.
func (s *RuleService) Get(ctx context.Context, diaryID uuid.UUID) (*model.AvailabilityRule, error) {
	diary, err := s.diaries.GetByID(ctx, diaryID)
	if err != nil {
		return nil, notFound(err, ErrDiaryNotFound)
	}
	rule, err := s.rules.GetByDiaryID(ctx, diary.ID)
	if err != nil {
		return nil, notFound(err, ErrRuleNotFound)
	}
	return rule, nil
}

func (s *RuleService) authorizeOwner(ctx context.Context, diaryID, ownerID uuid.UUID) (*model.Diary, error) {
	diary, err := s.diaries.GetByID(ctx, diaryID)
	if err != nil {
		return nil, notFound(err, ErrDiaryNotFound)
	}

	user, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if !user.Owner() || diary.UserID != user.ID {
		return nil, ErrNotOwner
	}

	return diary, nil
}

func applyRuleParams(rule *model.AvailabilityRule, p RuleParams) {
	if p.StartTime != nil {
		rule.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		rule.EndTime = *p.EndTime
	}
	if p.WeekDays != nil {
		rule.WeekDays = datatypes.JSONSlice[int](p.WeekDays)
	}
	if p.ClearStartDate {
		rule.StartDate = nil
	} else if p.StartDate != nil {
		d := datatypes.Date(schedule.DateOnly(*p.StartDate))
		rule.StartDate = &d
	}
	if p.ClearEndDate {
		rule.EndDate = nil
	} else if p.EndDate != nil {
		d := datatypes.Date(schedule.DateOnly(*p.EndDate))
		rule.EndDate = &d
	}
}

func existingBookings(bookings []model.Booking) []schedule.ExistingBooking {
	out := make([]schedule.ExistingBooking, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		out = append(out, schedule.ExistingBooking{
			ID:              b.ID,
			Date:            time.Time(b.Date),
			Time:            b.Time,
			DurationMinutes: b.SessionDurationMinutes,
		})
	}
	return out
}

func (s *RuleService) recordEvent(ctx context.Context, et model.EventType, userID, diaryID *uuid.UUID) {
	event := &model.Event{
		ID:        uuid.New(),
		EventType: et,
		UserID:    userID,
		DiaryID:   diaryID,
	}
	if err := s.events.Record(ctx, event); err != nil {
		logEventError(et, err)
	}
}
