package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sevendays/diary-core/internal/model"
	"github.com/sevendays/diary-core/internal/repository"
	"github.com/sevendays/diary-core/internal/schedule"
)

// Минимальная sqlite-схема для сервисных тестов: в постгресовых моделях
// живут uuid-дефолты, поэтому таблицы описаны руками, а ID проставляются
// явно.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	schema := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE diaries (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE availability_rules (
			id TEXT PRIMARY KEY,
			diary_id TEXT NOT NULL UNIQUE,
			user_id TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			week_days TEXT NOT NULL,
			start_date DATETIME,
			end_date DATETIME,
			session_duration_minutes INTEGER NOT NULL,
			session_duration_minutes_next INTEGER,
			session_duration_effective_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE bookings (
			id TEXT PRIMARY KEY,
			diary_id TEXT NOT NULL,
			rule_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			date DATETIME NOT NULL,
			time TEXT NOT NULL,
			session_duration_minutes INTEGER NOT NULL,
			description TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE events (
			id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			created_at DATETIME,
			user_id TEXT,
			diary_id TEXT,
			booking_id TEXT,
			details TEXT
		);`,
	}

	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return db
}

type testEnv struct {
	db *gorm.DB

	owner  *model.User
	client *model.User
	diary  *model.Diary
	rule   *model.AvailabilityRule

	identity *IdentityService
	diaries  *DiaryService
	rules    *RuleService
	slots    *SlotService
	bookings *BookingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)

	seededAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)

	owner := &model.User{
		ID:           uuid.New(),
		Email:        "owner@example.com",
		Username:     "owner",
		FirstName:    "Olga",
		LastName:     "Ivanova",
		PasswordHash: "x",
		Role:         model.UserRoleOwner,
		CreatedAt:    seededAt,
		UpdatedAt:    seededAt,
	}
	client := &model.User{
		ID:           uuid.New(),
		Email:        "client@example.com",
		Username:     "client",
		FirstName:    "Pavel",
		LastName:     "Petrov",
		PasswordHash: "x",
		Role:         model.UserRoleStandard,
		CreatedAt:    seededAt,
		UpdatedAt:    seededAt,
	}
	for _, u := range []*model.User{owner, client} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	diary := &model.Diary{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Title:       "consultations",
		Description: "weekly consultations",
		CreatedAt:   seededAt,
		UpdatedAt:   seededAt,
	}
	if err := db.Create(diary).Error; err != nil {
		t.Fatalf("seed diary: %v", err)
	}

	rule := model.NewDefaultRule(diary.ID, owner.ID)
	rule.ID = uuid.New()
	rule.CreatedAt = seededAt
	rule.UpdatedAt = seededAt
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("seed rule: %v", err)
	}

	userRepo := repository.NewGormUserRepository(db)
	diaryRepo := repository.NewGormDiaryRepository(db)
	ruleRepo := repository.NewGormRuleRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	eventRepo := repository.NewGormEventRepository(db)
	locks := NewDiaryLocker()

	return &testEnv{
		db:       db,
		owner:    owner,
		client:   client,
		diary:    diary,
		rule:     rule,
		identity: NewIdentityService(userRepo),
		diaries:  NewDiaryService(db, diaryRepo, userRepo, eventRepo),
		rules:    NewRuleService(diaryRepo, ruleRepo, bookingRepo, userRepo, eventRepo, locks),
		slots:    NewSlotService(diaryRepo, ruleRepo, bookingRepo),
		bookings: NewBookingService(diaryRepo, ruleRepo, bookingRepo, userRepo, eventRepo, locks),
	}
}

// 2026-09-02 — среда, заведомо позже seededAt.
func bookingDate() time.Time {
	return time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local)
}

func earlyNow() time.Time {
	return time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
}

func (e *testEnv) mustBooking(t *testing.T, tod string, now time.Time) *model.Booking {
	t.Helper()

	b, err := e.bookings.Create(context.Background(), e.diary.ID, e.client.ID, BookingParams{
		Date: bookingDate(),
		Time: schedule.MustTimeOfDay(tod),
	}, now)
	if err != nil {
		t.Fatalf("create booking at %s: %v", tod, err)
	}
	return b
}

func (e *testEnv) reloadBooking(t *testing.T, id uuid.UUID) *model.Booking {
	t.Helper()

	var b model.Booking
	if err := e.db.First(&b, "id = ?", id).Error; err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	return &b
}

func (e *testEnv) reloadRule(t *testing.T) *model.AvailabilityRule {
	t.Helper()

	var r model.AvailabilityRule
	if err := e.db.First(&r, "diary_id = ?", e.diary.ID).Error; err != nil {
		t.Fatalf("reload rule: %v", err)
	}
	return &r
}
