package handler

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/sevendays/diary-core/internal/model"
)

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
	}
}

type diaryResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

func toDiaryResponse(d *model.Diary) diaryResponse {
	return diaryResponse{
		ID:          d.ID,
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
	}
}

type bookingResponse struct {
	ID          uuid.UUID `json:"id"`
	DiaryID     uuid.UUID `json:"diary_id"`
	UserID      uuid.UUID `json:"user_id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Duration    int       `json:"session_duration_minutes"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toBookingResponse(b *model.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID,
		DiaryID:     b.DiaryID,
		UserID:      b.UserID,
		Date:        time.Time(b.Date).Format(dateLayout),
		Time:        b.Time.String(),
		Duration:    b.SessionDurationMinutes,
		Description: b.Description,
		Status:      string(b.Status),
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBookingResponses(bookings []model.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return out
}

type ruleResponse struct {
	ID        uuid.UUID `json:"id"`
	DiaryID   uuid.UUID `json:"diary_id"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	WeekDays  []int     `json:"week_days"`
	StartDate *string   `json:"start_date"`
	EndDate   *string   `json:"end_date"`

	SessionDurationMinutes     int        `json:"session_duration_minutes"`
	SessionDurationMinutesNext *int       `json:"session_duration_minutes_next,omitempty"`
	SessionDurationEffectiveAt *time.Time `json:"session_duration_effective_at,omitempty"`
}

func toRuleResponse(r *model.AvailabilityRule) ruleResponse {
	return ruleResponse{
		ID:                         r.ID,
		DiaryID:                    r.DiaryID,
		StartTime:                  r.StartTime.String(),
		EndTime:                    r.EndTime.String(),
		WeekDays:                   []int(r.WeekDays),
		StartDate:                  formatDatePtr(r.StartDate),
		EndDate:                    formatDatePtr(r.EndDate),
		SessionDurationMinutes:     r.SessionDurationMinutes,
		SessionDurationMinutesNext: r.SessionDurationMinutesNext,
		SessionDurationEffectiveAt: r.SessionDurationEffectiveAt,
	}
}

func formatDatePtr(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(dateLayout)
	return &s
}
