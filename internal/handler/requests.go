package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

func parseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, raw, time.Local)
}

// parseBody декодирует JSON-тело и прогоняет через validator.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,max=20"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"omitempty,oneof=owner standard"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createDiaryRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid4"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type createBookingRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid4"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Description string `json:"description"`
}

type createBookingByOwnerRequest struct {
	UserEmail string `json:"user_email" validate:"required,email"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time" validate:"required"`
}

type rescheduleRequest struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
	Date   string `json:"date" validate:"required"`
	Time   string `json:"time" validate:"required"`
}

type rescheduleByOwnerRequest struct {
	UserEmail string `json:"user_email" validate:"required,email"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time" validate:"required"`
}

type cancelBookingRequest struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
}

type updateRuleRequest struct {
	OwnerID         string  `json:"owner_id" validate:"required,uuid4"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	WeekDays        []int   `json:"week_days" validate:"omitempty,dive,min=0,max=6"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	ClearStartDate  bool    `json:"clear_start_date"`
	ClearEndDate    bool    `json:"clear_end_date"`
	DurationMinutes *int    `json:"session_duration_minutes" validate:"omitempty,min=15"`
}

type resetRuleRequest struct {
	OwnerID string `json:"owner_id" validate:"required,uuid4"`
}
