package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sevendays/diary-core/internal/model"
	"github.com/sevendays/diary-core/internal/repository"
	"github.com/sevendays/diary-core/internal/schedule"
)

// Дефолтные описания, когда клиент/владелец не прислал своё.
const (
	descriptionByUser  = "scheduling created by user"
	descriptionByOwner = "scheduling created by owner"
)

// BookingService — жизненный цикл броней: создание, перенос, отмена.
// Все мутации идут под эксклюзивной блокировкой дневника; now всегда
// передаётся параметром, сервис не читает часы сам.
type BookingService struct {
	diaries  repository.DiaryRepository
	rules    repository.RuleRepository
	bookings repository.BookingRepository
	users    repository.UserRepository
	events   repository.EventRepository
	locks    *DiaryLocker
}

func NewBookingService(
	diaries repository.DiaryRepository,
	rules repository.RuleRepository,
	bookings repository.BookingRepository,
	users repository.UserRepository,
	events repository.EventRepository,
	locks *DiaryLocker,
) *BookingService {
	return &BookingService{
		diaries:  diaries,
		rules:    rules,
		bookings: bookings,
		users:    users,
		events:   events,
		locks:    locks,
	}
}

// BookingParams — параметры новой брони.
type BookingParams struct {
	Date        time.Time
	Time        schedule.TimeOfDay
	Description string
}

// RescheduleParams — новые дата и время существующей брони.
type RescheduleParams struct {
	Date time.Time
	Time schedule.TimeOfDay
}

// Create создаёт бронь от имени клиента userID.
func (s *BookingService) Create(ctx context.Context, diaryID, userID uuid.UUID, p BookingParams, now time.Time) (*model.Booking, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if user.Owner() {
		return nil, ErrOwnerForbidden
	}

	if p.Description == "" {
		p.Description = descriptionByUser
	}

	return s.create(ctx, diaryID, user, p, now)
}

// CreateByOwner создаёт бронь от имени владельца для клиента с userEmail.
func (s *BookingService) CreateByOwner(ctx context.Context, diaryID uuid.UUID, userEmail string, p BookingParams, now time.Time) (*model.Booking, error) {
	user, err := s.users.GetByEmail(ctx, userEmail)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if user.Owner() {
		return nil, ErrOwnerForbidden
	}

	p.Description = descriptionByOwner

	return s.create(ctx, diaryID, user, p, now)
}

func (s *BookingService) create(ctx context.Context, diaryID uuid.UUID, user *model.User, p BookingParams, now time.Time) (*model.Booking, error) {
	diary, err := s.diaries.GetByID(ctx, diaryID)
	if err != nil {
		return nil, notFound(err, ErrDiaryNotFound)
	}

	rule, err := s.rules.GetByDiaryID(ctx, diary.ID)
	if err != nil {
		return nil, notFound(err, ErrRuleNotFound)
	}

	unlock := s.locks.Lock(diary.ID)
	defer unlock()

	date := schedule.DateOnly(p.Date)

	existing, err := s.bookings.ListActiveByDate(ctx, diary.ID, date)
	if err != nil {
		return nil, err
	}

	window := rule.Window()
	input := schedule.BookingInput{
		Date:        date,
		Time:        &p.Time,
		Description: p.Description,
		Status:      string(model.BookingStatusMarked),
	}

	duration, errs := schedule.ValidateBooking(input, &window, intervals(existing, uuid.Nil), now)
	if errs.Any() {
		return nil, &ValidationError{Fields: errs}
	}

	booking := &model.Booking{
		ID:                     uuid.New(),
		DiaryID:                diary.ID,
		RuleID:                 rule.ID,
		UserID:                 user.ID,
		Date:                   datatypes.Date(date),
		Time:                   p.Time,
		SessionDurationMinutes: duration,
		Description:            p.Description,
		Status:                 model.BookingStatusMarked,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, model.EventTypeBookingCreated, &user.ID, &diary.ID, &booking.ID, "")

	return booking, nil
}

// Update переносит бронь клиента на новые дату/время.
func (s *BookingService) Update(ctx context.Context, diaryID, bookingID, userID uuid.UUID, p RescheduleParams, now time.Time) (*model.Booking, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if user.Owner() {
		return nil, ErrOwnerForbidden
	}

	return s.reschedule(ctx, diaryID, bookingID, &user.ID, p, now)
}

// UpdateByOwner переносит бронь клиента userEmail от имени владельца.
func (s *BookingService) UpdateByOwner(ctx context.Context, diaryID, bookingID uuid.UUID, userEmail string, p RescheduleParams, now time.Time) (*model.Booking, error) {
	user, err := s.users.GetByEmail(ctx, userEmail)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if user.Owner() {
		return nil, ErrOwnerForbidden
	}

	return s.reschedule(ctx, diaryID, bookingID, &user.ID, p, now)
}

func (s *BookingService) reschedule(ctx context.Context, diaryID, bookingID uuid.UUID, mustBelongTo *uuid.UUID, p RescheduleParams, now time.Time) (*model.Booking, error) {
	diary, err := s.diaries.GetByID(ctx, diaryID)
	if err != nil {
		return nil, notFound(err, ErrDiaryNotFound)
	}

	booking, err := s.bookings.GetByID(ctx, diary.ID, bookingID)
	if err != nil {
		return nil, notFound(err, ErrBookingNotFound)
	}
	if mustBelongTo != nil && booking.UserID != *mustBelongTo {
		return nil, ErrForeignBooking
	}

	// Отменённую бронь не переносят — под неё создают новую.
	if booking.Cancelled() {
		errs := schedule.ValidationErrors{}
		errs.Add("status", "cancelled scheduling cannot be edited")
		return nil, &ValidationError{Fields: errs}
	}

	rule, err := s.rules.GetByDiaryID(ctx, diary.ID)
	if err != nil {
		return nil, notFound(err, ErrRuleNotFound)
	}

	// Нельзя перенести бронь, которую уже нельзя отменить: окно упреждения
	// считается от СТАРОГО расписания.
	duration := effectiveDurationFor(booking, rule, now)
	if schedule.TooSoon(booking.ScheduledAt(), duration, now) {
		return nil, &TooSoonError{Action: "edited", LeadMinutes: schedule.MinimumLeadMinutes(duration)}
	}

	unlock := s.locks.Lock(diary.ID)
	defer unlock()

	date := schedule.DateOnly(p.Date)

	existing, err := s.bookings.ListActiveByDate(ctx, diary.ID, date)
	if err != nil {
		return nil, err
	}

	window := rule.Window()
	input := schedule.BookingInput{
		Date:            date,
		Time:            &p.Time,
		DurationMinutes: booking.SessionDurationMinutes,
		Description:     booking.Description,
		Status:          string(booking.Status),
	}

	// Сама бронь исключается из проверки пересечений.
	_, errs := schedule.ValidateBooking(input, &window, intervals(existing, booking.ID), now)
	if errs.Any() {
		return nil, &ValidationError{Fields: errs}
	}

	if err := s.bookings.Reschedule(ctx, booking.ID, date, p.Time, now); err != nil {
		return nil, err
	}

	booking.Date = datatypes.Date(date)
	booking.Time = p.Time
	booking.UpdatedAt = now

	s.recordEvent(ctx, model.EventTypeBookingUpdated, &booking.UserID, &diary.ID, &booking.ID, "")

	return booking, nil
}

// Cancel отменяет бронь клиента. Повторная отмена — no-op успех.
func (s *BookingService) Cancel(ctx context.Context, diaryID, bookingID, userID uuid.UUID, now time.Time) (*model.Booking, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if user.Owner() {
		return nil, ErrOwnerForbidden
	}

	return s.cancel(ctx, diaryID, bookingID, &user.ID, now)
}

// CancelByOwner отменяет любую бронь дневника от имени владельца.
func (s *BookingService) CancelByOwner(ctx context.Context, diaryID, bookingID uuid.UUID, now time.Time) (*model.Booking, error) {
	return s.cancel(ctx, diaryID, bookingID, nil, now)
}

func (s *BookingService) cancel(ctx context.Context, diaryID, bookingID uuid.UUID, mustBelongTo *uuid.UUID, now time.Time) (*model.Booking, error) {
	diary, err := s.diaries.GetByID(ctx, diaryID)
	if err != nil {
		return nil, notFound(err, ErrDiaryNotFound)
	}

	booking, err := s.bookings.GetByID(ctx, diary.ID, bookingID)
	if err != nil {
		return nil, notFound(err, ErrBookingNotFound)
	}
	if mustBelongTo != nil && booking.UserID != *mustBelongTo {
		return nil, ErrForeignBooking
	}

	// Идемпотентность: отмена отменённого — успех без записи.
	if booking.Cancelled() {
		return booking, nil
	}

	// Правило нужно только как запасной источник длительности: его
	// отсутствие не мешает отмене, а вот настоящая ошибка БД — мешает.
	rule, err := s.rules.GetByDiaryID(ctx, diary.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	duration := effectiveDurationFor(booking, rule, now)
	if schedule.TooSoon(booking.ScheduledAt(), duration, now) {
		return nil, &TooSoonError{Action: "cancelled", LeadMinutes: schedule.MinimumLeadMinutes(duration)}
	}

	unlock := s.locks.Lock(diary.ID)
	defer unlock()

	if err := s.bookings.UpdateStatus(ctx, booking.ID, model.BookingStatusCancelled, now); err != nil {
		return nil, err
	}

	booking.Status = model.BookingStatusCancelled
	booking.UpdatedAt = now

	s.recordEvent(ctx, model.EventTypeBookingCancelled, &booking.UserID, &diary.ID, &booking.ID, "")

	return booking, nil
}

// ListByDiaryRange — брони дневника за период дат, с пагинацией.
func (s *BookingService) ListByDiaryRange(ctx context.Context, diaryID uuid.UUID, from, to time.Time, limit, offset int) ([]model.Booking, int64, error) {
	if _, err := s.diaries.GetByID(ctx, diaryID); err != nil {
		return nil, 0, notFound(err, ErrDiaryNotFound)
	}
	return s.bookings.ListByDiaryRange(ctx, diaryID, schedule.DateOnly(from), schedule.DateOnly(to), limit, offset)
}

// ListByUser — брони пользователя, свежие первыми.
func (s *BookingService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Booking, int64, error) {
	return s.bookings.ListByUser(ctx, userID, limit, offset)
}

// effectiveDurationFor — длительность брони для окна упреждения: её
// снимок, при отсутствии снимка — действующая длительность правила на
// момент действия (не на момент начала брони). Один источник и для
// проверки, и для сообщения об ошибке.
func effectiveDurationFor(booking *model.Booking, rule *model.AvailabilityRule, now time.Time) int {
	duration := booking.SessionDurationMinutes
	if duration <= 0 && rule != nil {
		duration = rule.EffectiveDurationMinutes(now)
	}
	return duration
}

// intervals собирает занятые интервалы, исключая exclude (для переноса).
func intervals(bookings []model.Booking, exclude uuid.UUID) []schedule.BookedInterval {
	out := make([]schedule.BookedInterval, 0, len(bookings))
	for i := range bookings {
		if bookings[i].ID == exclude {
			continue
		}
		out = append(out, bookings[i].Interval())
	}
	return out
}

// notFound переводит gorm.ErrRecordNotFound в доменную ошибку.
func notFound(err, domain error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain
	}
	return err
}

func (s *BookingService) recordEvent(ctx context.Context, et model.EventType, userID, diaryID, bookingID *uuid.UUID, details string) {
	event := &model.Event{
		ID:        uuid.New(),
		EventType: et,
		UserID:    userID,
		DiaryID:   diaryID,
		BookingID: bookingID,
		Details:   details,
	}
	// Аудит не должен ронять операцию.
	if err := s.events.Record(ctx, event); err != nil {
		logEventError(et, err)
	}
}

func logEventError(et model.EventType, err error) {
	log.Printf("record audit event %s: %v", et, err)
}
