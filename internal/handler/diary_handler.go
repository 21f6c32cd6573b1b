package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sevendays/diary-core/internal/service"
)

// CreateDiary — POST /api/diaries
func (h *Handler) CreateDiary(c *fiber.Ctx) error {
	var req createDiaryRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	ownerID, err := uuid.Parse(req.UserID)
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	diary, err := h.diaries.Create(c.Context(), ownerID, service.DiaryParams{
		Title:       req.Title,
		Description: req.Description,
	}, h.now())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toDiaryResponse(diary))
}

// GetDiary — GET /api/diaries/:diaryID
func (h *Handler) GetDiary(c *fiber.Ctx) error {
	diaryID, err := parseUUIDParam(c, "diaryID")
	if err != nil {
		return badRequest(c, "invalid diary id")
	}

	diary, err := h.diaries.Get(c.Context(), diaryID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(toDiaryResponse(diary))
}
