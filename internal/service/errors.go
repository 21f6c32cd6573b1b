package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sevendays/diary-core/internal/schedule"
)

var (
	ErrDiaryNotFound   = errors.New("diary not found")
	ErrBookingNotFound = errors.New("scheduling not found")
	ErrRuleNotFound    = errors.New("scheduling rule not found")
	ErrUserNotFound    = errors.New("user not found")

	// Владелец не бронирует в собственном дневнике.
	ErrOwnerForbidden = errors.New("user must be non-owner")
	// Дневники заводят только владельцы.
	ErrNotOwner = errors.New("user must be an owner")
	// Чужая бронь неприкосновенна.
	ErrForeignBooking = errors.New("scheduling does not belong to user")

	ErrDiaryExists = errors.New("user already has a diary")
	ErrEmailTaken  = errors.New("email is already taken")

	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError — ошибки валидации по полям, 422-эквивалент.
type ValidationError struct {
	Fields schedule.ValidationErrors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

// TooSoonError — отмена/перенос внутри окна упреждения, 403-эквивалент.
type TooSoonError struct {
	Action      string // "cancelled" / "edited"
	LeadMinutes int
}

func (e *TooSoonError) Error() string {
	return fmt.Sprintf("scheduling cannot be %s within %d minutes", e.Action, e.LeadMinutes)
}

// ConflictError — смена правила отклонена: перечисленные брони стали бы
// невалидными. Ничего не сохранено.
type ConflictError struct {
	BookingIDs []uuid.UUID
}

func (e *ConflictError) Error() string {
	ids := make([]string, 0, len(e.BookingIDs))
	for _, id := range e.BookingIDs {
		ids = append(ids, id.String())
	}
	return "conflicts with existing schedulings: " + strings.Join(ids, ", ")
}
