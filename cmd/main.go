package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/sevendays/diary-core/internal/config"
	"github.com/sevendays/diary-core/internal/db"
	"github.com/sevendays/diary-core/internal/handler"
	"github.com/sevendays/diary-core/internal/model"
	"github.com/sevendays/diary-core/internal/repository"
	"github.com/sevendays/diary-core/internal/service"
)

func main() {
	// .env удобен локально; в проде переменные приходят из окружения.
	_ = godotenv.Load()

	// 1. Загружаем конфиг из env.
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}
	httpCfg := config.LoadHTTPConfig()

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	// 4. Репозитории (реализации на GORM).
	userRepo := repository.NewGormUserRepository(gormDB)
	diaryRepo := repository.NewGormDiaryRepository(gormDB)
	ruleRepo := repository.NewGormRuleRepository(gormDB)
	bookingRepo := repository.NewGormBookingRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)

	// 5. Сервисы. Один реестр блокировок на процесс.
	locks := service.NewDiaryLocker()
	identitySvc := service.NewIdentityService(userRepo)
	diarySvc := service.NewDiaryService(gormDB, diaryRepo, userRepo, eventRepo)
	ruleSvc := service.NewRuleService(diaryRepo, ruleRepo, bookingRepo, userRepo, eventRepo, locks)
	slotSvc := service.NewSlotService(diaryRepo, ruleRepo, bookingRepo)
	bookingSvc := service.NewBookingService(diaryRepo, ruleRepo, bookingRepo, userRepo, eventRepo, locks)

	// 6. HTTP-сервер.
	app := fiber.New(fiber.Config{
		AppName:      "diary-core",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	h := handler.New(identitySvc, diarySvc, ruleSvc, slotSvc, bookingSvc)
	h.RegisterRoutes(app)

	// 7. Запускаем сервер в горутине.
	go func() {
		log.Printf("diary core listening on %s", httpCfg.Addr)
		if err := app.Listen(httpCfg.Addr); err != nil {
			log.Fatalf("listen %s: %v", httpCfg.Addr, err)
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down http server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
