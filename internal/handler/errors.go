package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sevendays/diary-core/internal/service"
)

var (
	errInvalidDiaryID   = errors.New("invalid diary id")
	errInvalidBookingID = errors.New("invalid scheduling id")
	errInvalidDate      = errors.New("date must be YYYY-MM-DD")
	errInvalidTime      = errors.New("time must be HH:MM")
)

// respondError переводит доменные ошибки в HTTP-ответы.
func respondError(c *fiber.Ctx, err error) error {
	var (
		validation *service.ValidationError
		tooSoon    *service.TooSoonError
		conflict   *service.ConflictError
	)

	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": validation.Fields,
		})
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors":                  fiber.Map{"base": []string{"scheduling rule conflicts with existing schedulings"}},
			"conflicting_booking_ids": conflict.BookingIDs,
		})
	case errors.As(err, &tooSoon):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": tooSoon.Error(),
		})
	case errors.Is(err, service.ErrOwnerForbidden),
		errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrForeignBooking):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, service.ErrDiaryNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrRuleNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, service.ErrDiaryExists),
		errors.Is(err, service.ErrEmailTaken):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
