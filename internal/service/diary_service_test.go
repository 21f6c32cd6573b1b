package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/sevendays/diary-core/internal/model"
)

func seedOwner(t *testing.T, env *testEnv, email string) *model.User {
	t.Helper()

	u := &model.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     email[:10],
		FirstName:    "Vera",
		LastName:     "Smirnova",
		PasswordHash: "x",
		Role:         model.UserRoleOwner,
	}
	if err := env.db.Create(u).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	return u
}

func TestDiaryService_CreateWithDefaultRule(t *testing.T) {
	env := newTestEnv(t)
	owner := seedOwner(t, env, "vera@example.com")

	diary, err := env.diaries.Create(context.Background(), owner.ID, DiaryParams{
		Title:       "massage",
		Description: "evening sessions",
	}, earlyNow())
	if err != nil {
		t.Fatalf("create diary: %v", err)
	}

	var rule model.AvailabilityRule
	if err := env.db.First(&rule, "diary_id = ?", diary.ID).Error; err != nil {
		t.Fatalf("expected default rule to be created: %v", err)
	}
	if rule.StartTime.String() != "09:00" || rule.EndTime.String() != "19:00" || rule.SessionDurationMinutes != 60 {
		t.Fatalf("expected default rule, got %s-%s/%d", rule.StartTime, rule.EndTime, rule.SessionDurationMinutes)
	}
}

func TestDiaryService_SecondDiaryRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.diaries.Create(context.Background(), env.owner.ID, DiaryParams{
		Title:       "second",
		Description: "one more diary",
	}, earlyNow())
	if !errors.Is(err, ErrDiaryExists) {
		t.Fatalf("expected ErrDiaryExists, got %v", err)
	}
}

func TestDiaryService_StandardUserRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.diaries.Create(context.Background(), env.client.ID, DiaryParams{
		Title:       "client diary",
		Description: "should not happen",
	}, earlyNow())
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestDiaryService_DescriptionLength(t *testing.T) {
	env := newTestEnv(t)
	owner := seedOwner(t, env, "olga@example.com")

	_, err := env.diaries.Create(context.Background(), owner.ID, DiaryParams{
		Title:       "massage",
		Description: "short",
	}, earlyNow())

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for short description, got %v", err)
	}
	found := false
	for _, msg := range verr.Fields.On("description") {
		if msg == "must be between 10 and 1000 characters" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected description length message, got %v", verr.Fields)
	}

	_, err = env.diaries.Create(context.Background(), owner.ID, DiaryParams{
		Title:       "massage",
		Description: strings.Repeat("x", 1001),
	}, earlyNow())
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for long description, got %v", err)
	}

	var count int64
	if err := env.db.Model(&model.Diary{}).Where("user_id = ?", owner.ID).Count(&count).Error; err != nil {
		t.Fatalf("count diaries: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no diary persisted, got %d", count)
	}
}

func TestDiaryService_BlankTitleRejected(t *testing.T) {
	env := newTestEnv(t)
	owner := seedOwner(t, env, "nina@example.com")

	_, err := env.diaries.Create(context.Background(), owner.ID, DiaryParams{}, earlyNow())

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
