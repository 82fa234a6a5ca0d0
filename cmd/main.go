package main

import (
	"bank-core/internal/config"
	"bank-core/internal/handlers"
	"bank-core/internal/seed"
	"bank-core/internal/services"
	"bank-core/pkg/database"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	db, err := database.InitDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Ошибка инициализации БД: %v", err)
	}
	defer database.Close(db)

	var (
		ledgerService  = services.NewLedgerService(db)
		accountService = services.NewAccountService(ledgerService)
		userService    = services.NewUserService(accountService, cfg.BcryptCost)
		adminService   = services.NewAdminService(userService, accountService, ledgerService)
		authService    = services.NewAuthService(cfg.JWTSecret, cfg.TokenTTL)
	)

	if cfg.AdminEmail != "" {
		if _, err := seed.EnsureAdmin(userService, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("Не удалось создать администратора: %v", err)
		}
		log.Printf("Администратор готов: %s", cfg.AdminEmail)
	}
	if cfg.SeedDemoData {
		if err := seed.DemoData(userService, accountService); err != nil {
			log.Fatalf("Ошибка заполнения демо-данных: %v", err)
		}
		log.Printf("Демо-данные загружены: пользователей %d, счетов %d", len(userService.AllUsers()), len(accountService.AllAccounts()))
	}

	h := handlers.NewHandler(authService, userService, accountService, adminService)

	app := fiber.New(fiber.Config{
		ErrorHandler: h.ErrorHandler,
	})

	// Настройка CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Use(recover.New())
	app.Use(logger.New())

	h.SetupRoutes(app)

	log.Printf("Сервер запущен на порту %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
