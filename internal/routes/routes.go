package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aleyva-c/SkillSwapBack/internal/config"
	"github.com/aleyva-c/SkillSwapBack/internal/handlers"
	"github.com/aleyva-c/SkillSwapBack/internal/middleware"
	"github.com/aleyva-c/SkillSwapBack/internal/repository"
	"github.com/aleyva-c/SkillSwapBack/internal/services"
	chatws "github.com/aleyva-c/SkillSwapBack/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	userRepo := repository.NewUserRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	reportRepo := repository.NewReportRepository(db)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	sessionService := services.NewSessionService(sessionRepo, ratingRepo, skillRepo, userRepo)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	skillService := services.NewSkillService(db, skillRepo)
	skillHandler := handlers.NewSkillHandler(skillService)
	discoveryService := services.NewDiscoveryService(skillRepo, ratingRepo)
	discoveryHandler := handlers.NewDiscoveryHandler(discoveryService)
	moderationService := services.NewModerationService(reportRepo, userRepo)
	adminHandler := handlers.NewAdminHandler(moderationService)
	chatHub := chatws.NewHub()
	go chatHub.Run()
	chatService := services.NewChatService(db, conversationRepo, messageRepo, userRepo)
	chatHandler := handlers.NewChatHandler(chatService, chatHub, cfg.JWTSecret)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)
	auth.Put("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.UpdateProfile)

	// Public rating summary, consumed by profile pages.
	api.Get("/user/ratings/:id", sessionHandler.GetRatingSummary)

	authed := api.Group("", middleware.AuthRequired(cfg.JWTSecret))

	sessions := authed.Group("/sessions")
	sessions.Post("/request", sessionHandler.RequestSession)
	sessions.Post("/confirm", sessionHandler.ConfirmSession)
	sessions.Post("/deny", sessionHandler.DenyOrCancelSession)
	sessions.Post("/complete", sessionHandler.CompleteSession)
	sessions.Post("/rate", sessionHandler.RateSession)
	sessions.Get("", sessionHandler.ListSessions)
	sessions.Get("/:id", sessionHandler.GetSession)

	authed.Get("/skills", skillHandler.ListCatalog)
	users := authed.Group("/users")
	users.Get("/skills", skillHandler.GetUserSkills)
	users.Put("/skills", skillHandler.ReplaceUserSkills)

	tutors := authed.Group("/tutors")
	tutors.Get("/search", discoveryHandler.SearchTutors)
	tutors.Get("/matches", discoveryHandler.GetMatches)
	tutors.Get("/top", discoveryHandler.GetTopTutors)

	conversations := authed.Group("/conversations")
	conversations.Get("", chatHandler.ListConversations)
	conversations.Post("", chatHandler.CreateConversation)
	conversations.Get("/:id/messages", chatHandler.GetMessages)

	authed.Post("/reports", adminHandler.FileReport)
	admin := authed.Group("/admin", middleware.AdminRequired())
	admin.Get("/reports", adminHandler.ListReports)
	admin.Put("/reports/:id", adminHandler.ReviewReport)

	api.Use("/ws", chatHandler.WebSocketAuth)
	api.Get("/ws", websocket.New(chatHandler.HandleWebSocket))

	return registerDocsRoutes(app, cfg)
}
