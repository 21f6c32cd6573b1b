package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sevendays/diary-core/internal/schedule"
	"github.com/sevendays/diary-core/internal/service"
)

// CreateBooking — POST /api/diaries/:diaryID/bookings
func (h *Handler) CreateBooking(c *fiber.Ctx) error {
	diaryID, err := parseUUIDParam(c, "diaryID")
	if err != nil {
		return badRequest(c, "invalid diary id")
	}

	var req createBookingRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	params, err := bookingParams(req.Date, req.Time, req.Description)
	if err != nil {
		return badRequest(c, err.Error())
	}

	booking, err := h.bookings.Create(c.Context(), diaryID, userID, params, h.now())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toBookingResponse(booking))
}

// CreateBookingByOwner — POST /api/diaries/:diaryID/bookings/by-owner
func (h *Handler) CreateBookingByOwner(c *fiber.Ctx) error {
	diaryID, err := parseUUIDParam(c, "diaryID")
	if err != nil {
		return badRequest(c, "invalid diary id")
	}

	var req createBookingByOwnerRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	params, err := bookingParams(req.Date, req.Time, "")
	if err != nil {
		return badRequest(c, err.Error())
	}

	booking, err := h.bookings.CreateByOwner(c.Context(), diaryID, req.UserEmail, params, h.now())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toBookingResponse(booking))
}

// UpdateBooking — PATCH /api/diaries/:diaryID/bookings/:bookingID
func (h *Handler) UpdateBooking(c *fiber.Ctx) error {
	diaryID, bookingID, err := bookingPathIDs(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req rescheduleRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	params, err := rescheduleParams(req.Date, req.Time)
	if err != nil {
		return badRequest(c, err.Error())
	}

	booking, err := h.bookings.Update(c.Context(), diaryID, bookingID, userID, params, h.now())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(toBookingResponse(booking))
}

// UpdateBookingByOwner — PATCH /api/diaries/:diaryID/bookings/:bookingID/by-owner
func (h *Handler) UpdateBookingByOwner(c *fiber.Ctx) error {
	diaryID, bookingID, err := bookingPathIDs(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req rescheduleByOwnerRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	params, err := rescheduleParams(req.Date, req.Time)
	if err != nil {
		return badRequest(c, err.Error())
	}

	booking, err := h.bookings.UpdateByOwner(c.Context(), diaryID, bookingID, req.UserEmail, params, h.now())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(toBookingResponse(booking))
}

// CancelBooking — DELETE /api/diaries/:diaryID/bookings/:bookingID
func (h *Handler) CancelBooking(c *fiber.Ctx) error {
	diaryID, bookingID, err := bookingPathIDs(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req cancelBookingRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	booking, err := h.bookings.Cancel(c.Context(), diaryID, bookingID, userID, h.now())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(toBookingResponse(booking))
}

// CancelBookingByOwner — DELETE /api/diaries/:diaryID/bookings/:bookingID/by-owner
func (h *Handler) CancelBookingByOwner(c *fiber.Ctx) error {
	diaryID, bookingID, err := bookingPathIDs(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	booking, err := h.bookings.CancelByOwner(c.Context(), diaryID, bookingID, h.now())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(toBookingResponse(booking))
}

// ListDiaryBookings — GET /api/diaries/:diaryID/bookings?from=...&to=...
func (h *Handler) ListDiaryBookings(c *fiber.Ctx) error {
	diaryID, err := parseUUIDParam(c, "diaryID")
	if err != nil {
		return badRequest(c, "invalid diary id")
	}

	from, err := parseDate(c.Query("from"))
	if err != nil {
		return badRequest(c, "from must be YYYY-MM-DD")
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		return badRequest(c, "to must be YYYY-MM-DD")
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	bookings, total, err := h.bookings.ListByDiaryRange(c.Context(), diaryID, from, to, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"bookings": toBookingResponses(bookings),
		"total":    total,
	})
}

func bookingPathIDs(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	diaryID, err := parseUUIDParam(c, "diaryID")
	if err != nil {
		return uuid.Nil, uuid.Nil, errInvalidDiaryID
	}
	bookingID, err := parseUUIDParam(c, "bookingID")
	if err != nil {
		return uuid.Nil, uuid.Nil, errInvalidBookingID
	}
	return diaryID, bookingID, nil
}

func bookingParams(date, tod, description string) (service.BookingParams, error) {
	d, err := parseDate(date)
	if err != nil {
		return service.BookingParams{}, errInvalidDate
	}
	t, err := schedule.ParseTimeOfDay(tod)
	if err != nil {
		return service.BookingParams{}, errInvalidTime
	}
	return service.BookingParams{Date: d, Time: t, Description: description}, nil
}

func rescheduleParams(date, tod string) (service.RescheduleParams, error) {
	d, err := parseDate(date)
	if err != nil {
		return service.RescheduleParams{}, errInvalidDate
	}
	t, err := schedule.ParseTimeOfDay(tod)
	if err != nil {
		return service.RescheduleParams{}, errInvalidTime
	}
	return service.RescheduleParams{Date: d, Time: t}, nil
}
