package handler

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/sevendays/diary-core/internal/service"
)

var validate = validator.New()

// Handler держит сервисы и вешает маршруты на Fiber-приложение.
type Handler struct {
	identity *service.IdentityService
	diaries  *service.DiaryService
	rules    *service.RuleService
	slots    *service.SlotService
	bookings *service.BookingService

	// Часы транспорта: ядро время не читает, now приходит снаружи.
	now func() time.Time
}

func New(
	identity *service.IdentityService,
	diaries *service.DiaryService,
	rules *service.RuleService,
	slots *service.SlotService,
	bookings *service.BookingService,
) *Handler {
	return &Handler{
		identity: identity,
		diaries:  diaries,
		rules:    rules,
		slots:    slots,
		bookings: bookings,
		now:      time.Now,
	}
}

// RegisterRoutes вешает все маршруты API.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/register", h.Register)
	users.Post("/login", h.Login)
	users.Get("/:userID/bookings", h.ListUserBookings)

	diaries := api.Group("/diaries")
	diaries.Post("/", h.CreateDiary)
	diaries.Get("/:diaryID", h.GetDiary)
	diaries.Get("/:diaryID/slots", h.GetAvailableSlots)

	diaries.Get("/:diaryID/rule", h.GetRule)
	diaries.Put("/:diaryID/rule", h.UpdateRule)
	diaries.Post("/:diaryID/rule/reset", h.ResetRule)

	diaries.Post("/:diaryID/bookings", h.CreateBooking)
	diaries.Post("/:diaryID/bookings/by-owner", h.CreateBookingByOwner)
	diaries.Get("/:diaryID/bookings", h.ListDiaryBookings)
	diaries.Patch("/:diaryID/bookings/:bookingID", h.UpdateBooking)
	diaries.Patch("/:diaryID/bookings/:bookingID/by-owner", h.UpdateBookingByOwner)
	diaries.Delete("/:diaryID/bookings/:bookingID", h.CancelBooking)
	diaries.Delete("/:diaryID/bookings/:bookingID/by-owner", h.CancelBookingByOwner)
}
