package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sevendays/diary-core/internal/schedule"
	"github.com/sevendays/diary-core/internal/service"
)

// GetRule — GET /api/diaries/:diaryID/rule
func (h *Handler) GetRule(c *fiber.Ctx) error {
	diaryID, err := parseUUIDParam(c, "diaryID")
	if err != nil {
		return badRequest(c, "invalid diary id")
	}

	rule, err := h.rules.Get(c.Context(), diaryID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(toRuleResponse(rule))
}

// UpdateRule — PUT /api/diaries/:diaryID/rule
func (h *Handler) UpdateRule(c *fiber.Ctx) error {
	diaryID, err := parseUUIDParam(c, "diaryID")
	if err != nil {
		return badRequest(c, "invalid diary id")
	}

	var req updateRuleRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return badRequest(c, "invalid owner id")
	}

	params, err := ruleParamsFromRequest(req)
	if err != nil {
		return badRequest(c, err.Error())
	}

	rule, err := h.rules.CreateOrUpdate(c.Context(), diaryID, ownerID, params, h.now())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(toRuleResponse(rule))
}

// ResetRule — POST /api/diaries/:diaryID/rule/reset
func (h *Handler) ResetRule(c *fiber.Ctx) error {
	diaryID, err := parseUUIDParam(c, "diaryID")
	if err != nil {
		return badRequest(c, "invalid diary id")
	}

	var req resetRuleRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return badRequest(c, "invalid owner id")
	}

	rule, err := h.rules.Reset(c.Context(), diaryID, ownerID, h.now())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(toRuleResponse(rule))
}

func ruleParamsFromRequest(req updateRuleRequest) (service.RuleParams, error) {
	p := service.RuleParams{
		WeekDays:        req.WeekDays,
		ClearStartDate:  req.ClearStartDate,
		ClearEndDate:    req.ClearEndDate,
		DurationMinutes: req.DurationMinutes,
	}

	var err error
	if p.StartTime, err = parseTimeOfDayPtr(req.StartTime); err != nil {
		return p, err
	}
	if p.EndTime, err = parseTimeOfDayPtr(req.EndTime); err != nil {
		return p, err
	}
	if p.StartDate, err = parseDatePtr(req.StartDate); err != nil {
		return p, err
	}
	if p.EndDate, err = parseDatePtr(req.EndDate); err != nil {
		return p, err
	}

	return p, nil
}

func parseTimeOfDayPtr(raw *string) (*schedule.TimeOfDay, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := schedule.ParseTimeOfDay(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseDatePtr(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	d, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
