package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sevendays/diary-core/internal/model"
	"github.com/sevendays/diary-core/internal/service"
)

// Register — POST /api/users/register
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.identity.Register(c.Context(), service.RegisterParams{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Role:      model.UserRole(req.Role),
	}, h.now())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

// Login — POST /api/users/login
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.identity.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(toUserResponse(user))
}

// ListUserBookings — GET /api/users/:userID/bookings
func (h *Handler) ListUserBookings(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "userID")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	bookings, total, err := h.bookings.ListByUser(c.Context(), userID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"bookings": toBookingResponses(bookings),
		"total":    total,
	})
}
