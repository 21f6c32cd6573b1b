package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sevendays/diary-core/internal/model"
	"github.com/sevendays/diary-core/internal/schedule"
)

type BookingRepository interface {
	// Создать бронь.
	Create(ctx context.Context, booking *model.Booking) error
	// Бронь дневника по ID.
	GetByID(ctx context.Context, diaryID, id uuid.UUID) (*model.Booking, error)
	// Некэнселенные брони дневника на дату.
	ListActiveByDate(ctx context.Context, diaryID uuid.UUID, date time.Time) ([]model.Booking, error)
	// Все некэнселенные брони дневника (для проверки конфликтов правила).
	ListActive(ctx context.Context, diaryID uuid.UUID) ([]model.Booking, error)
	// Брони дневника за период дат с пагинацией.
	ListByDiaryRange(ctx context.Context, diaryID uuid.UUID, from, to time.Time, limit, offset int) ([]model.Booking, int64, error)
	// Брони пользователя с пагинацией.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Booking, int64, error)
	// Обновить дату/время брони.
	Reschedule(ctx context.Context, id uuid.UUID, date time.Time, tod schedule.TimeOfDay, updatedAt time.Time) error
	// Сменить статус брони.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus, updatedAt time.Time) error
}

type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *GormBookingRepository) GetByID(ctx context.Context, diaryID, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).
		Where("diary_id = ?", diaryID).
		First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) ListActiveByDate(ctx context.Context, diaryID uuid.UUID, date time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Where("diary_id = ?", diaryID).
		Where("date = ?", date).
		Where("status <> ?", model.BookingStatusCancelled).
		Order("time ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *GormBookingRepository) ListActive(ctx context.Context, diaryID uuid.UUID) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Where("diary_id = ?", diaryID).
		Where("status <> ?", model.BookingStatusCancelled).
		Order("date ASC, time ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *GormBookingRepository) ListByDiaryRange(
	ctx context.Context,
	diaryID uuid.UUID,
	from, to time.Time,
	limit, offset int,
) ([]model.Booking, int64, error) {
	var (
		bookings []model.Booking
		total    int64
	)

	q := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("diary_id = ?", diaryID).
		Where("date >= ? AND date <= ?", from, to)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	if err := q.Order("date ASC, time ASC").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *GormBookingRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]model.Booking, int64, error) {
	var (
		bookings []model.Booking
		total    int64
	)

	q := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("user_id = ?", userID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	if err := q.Order("date DESC, time DESC").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *GormBookingRepository) Reschedule(ctx context.Context, id uuid.UUID, date time.Time, tod schedule.TimeOfDay, updatedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"date":       date,
			"time":       tod,
			"updated_at": updatedAt,
		}).
		Error
}

func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus, updatedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": updatedAt,
		}).
		Error
}
