package handler

import (
	"github.com/gofiber/fiber/v2"
)

// GetAvailableSlots — GET /api/diaries/:diaryID/slots?date=YYYY-MM-DD
// Необязательные page/page_size включают постраничный ответ.
func (h *Handler) GetAvailableSlots(c *fiber.Ctx) error {
	diaryID, err := parseUUIDParam(c, "diaryID")
	if err != nil {
		return badRequest(c, "invalid diary id")
	}

	date, err := parseDate(c.Query("date"))
	if err != nil {
		return badRequest(c, "date must be YYYY-MM-DD")
	}

	if page := c.QueryInt("page", 0); page > 0 {
		result, err := h.slots.AvailableSlotsPage(c.Context(), diaryID, date, h.now(), page, c.QueryInt("page_size", 0))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"slots":     result.Items,
			"page":      result.Page,
			"page_size": result.PageSize,
			"total":     result.Total,
			"has_next":  result.HasNext,
			"has_prev":  result.HasPrev,
		})
	}

	slots, err := h.slots.AvailableSlots(c.Context(), diaryID, date, h.now())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"slots": slots})
}
