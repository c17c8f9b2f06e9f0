package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"supportchat/internal/ai"
	appsvc "supportchat/internal/app"
	"supportchat/internal/bootstrap"
	"supportchat/internal/cache"
	"supportchat/internal/platform/rabbitmq"
	"supportchat/internal/repository"
	"supportchat/internal/transport/http/handler"
	"supportchat/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/", healthHandler.Root)
	router.GET("/api", healthHandler.APIIndex)
	router.GET("/health", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	messageRepo := repository.NewMessageRepository(app.MySQL)
	eventPublisher := rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.EventsQueue)
	historyCache := cache.NewHistoryCache(
		app.Redis,
		time.Duration(app.Config.Redis.HistoryTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.HistoryDirtyTTLSeconds)*time.Second,
	)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	chatService := appsvc.NewChatService(
		messageRepo,
		app.Limiter,
		app.Resolver,
		ai.NewClient(time.Duration(app.Config.LLM.TimeoutSeconds)*time.Second),
		eventPublisher,
		historyCache,
		appsvc.ChatOptions{
			LLM: ai.ChatConfig{
				BaseURL:     app.Config.LLM.BaseURL,
				APIKey:      app.Config.LLM.APIKey,
				Model:       app.Config.LLM.Model,
				MaxTokens:   app.Config.LLM.MaxOutputTokens,
				Temperature: app.Config.LLM.Temperature,
			},
			LLMTimeout:       time.Duration(app.Config.LLM.TimeoutSeconds) * time.Second,
			Production:       app.Config.IsProduction(),
			HistoryLimit:     app.Config.Chat.HistoryLimit,
			ContextWindow:    time.Duration(app.Config.Chat.ContextWindowMinutes) * time.Minute,
			ContextLimit:     app.Config.Chat.ContextLimit,
			FallbackMaxWords: app.Config.Chat.FallbackMaxWords,
		},
		app.Logger,
	)

	authHandler := handler.NewAuthHandler(authService)
	chatHandler := handler.NewChatHandler(chatService)

	api := router.Group("/api")
	authGroup := api.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)

	chatGroup := api.Group("/chat")
	chatGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	chatGroup.POST("/send", chatHandler.SendMessage)
	chatGroup.GET("/history", chatHandler.GetHistory)

	return router
}
