package main

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5"

	"github.com/aleyva-c/SkillSwapBack/internal/config"
	"github.com/aleyva-c/SkillSwapBack/internal/database"
	"github.com/aleyva-c/SkillSwapBack/internal/models"
	"github.com/aleyva-c/SkillSwapBack/internal/repository"
	"github.com/aleyva-c/SkillSwapBack/internal/routes"
	"github.com/aleyva-c/SkillSwapBack/pkg/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}
	if err := database.ConnectDB(cfg.DBUrl); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB()

	if err := seedDefaultAdmin(cfg); err != nil {
		log.Fatalf("Failed to seed default admin: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New())
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	if err := routes.RegisterRoutes(app, cfg, database.DB); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// seedDefaultAdmin creates the bootstrap admin account when configured
// and missing. Existing accounts are left untouched.
func seedDefaultAdmin(cfg *config.Config) error {
	if cfg.DefaultAdminEmail == "" || cfg.DefaultAdminPassword == "" {
		return nil
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(database.DB)

	if _, err := userRepo.GetByEmail(ctx, cfg.DefaultAdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hashed, err := utils.HashPassword(cfg.DefaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        cfg.DefaultAdminEmail,
		PasswordHash: hashed,
		DisplayName:  "Administrator",
		IsAdmin:      true,
	}
	if err := userRepo.CreateUser(ctx, admin); err != nil {
		return err
	}
	log.Printf("Seeded default admin account %s", cfg.DefaultAdminEmail)
	return nil
}
