package main

import (
	"log"

	"bigbrain-backend/internal/config"
	"bigbrain-backend/internal/database"
	"bigbrain-backend/internal/gate"
	"bigbrain-backend/internal/handlers"
	"bigbrain-backend/internal/middleware"
	"bigbrain-backend/internal/services"
	"bigbrain-backend/internal/store"
	"bigbrain-backend/internal/ws"

	_ "bigbrain-backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           BigBrain API
// @version         1.0
// @description     API for the BigBrain live quiz platform
// @host            localhost:5005
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()
	gates := gate.NewGates()
	registry := store.NewRegistry()
	registry.SetRevealHook(func(sessionID int) {
		hub.Broadcast(sessionID, ws.Message{
			Type: ws.EventAnswerRevealed,
			Data: map[string]int{"session_id": sessionID},
		})
	})

	authService := services.NewAuthService(db, cfg.JWTSecret, gates)
	gameService := services.NewGameService(db, gates)
	sessionService := services.NewSessionService(db, registry, gameService, gates)
	playerService := services.NewPlayerService(registry, gates)

	authHandler := handlers.NewAuthHandler(authService)
	gameHandler := handlers.NewGameHandler(gameService, sessionService)
	sessionHandler := handlers.NewSessionHandler(sessionService, hub)
	playHandler := handlers.NewPlayHandler(playerService, hub)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/session/:id", wsHandler.HandleWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/admin/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.JWTAuth(authService), authHandler.Logout)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuth(authService))
		{
			admin.GET("/games", gameHandler.ListGames)
			admin.PUT("/games", gameHandler.PutGames)
			admin.GET("/game/:gameid/sessions", gameHandler.GameSessions)
			admin.POST("/game/:gameid/mutate", sessionHandler.Mutate)
			admin.GET("/session/:sessionid/status", sessionHandler.Status)
			admin.GET("/session/:sessionid/results", sessionHandler.Results)
		}

		play := api.Group("/play")
		{
			play.POST("/join/:sessionid", playHandler.Join)
			play.GET("/:playerid/status", playHandler.Status)
			play.GET("/:playerid/question", playHandler.Question)
			play.GET("/:playerid/answer", playHandler.Answers)
			play.PUT("/:playerid/answer", playHandler.Submit)
			play.GET("/:playerid/results", playHandler.Results)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
