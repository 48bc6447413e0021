package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "studymate/internal/app"
	"studymate/internal/bootstrap"
	"studymate/internal/platform/rabbitmq"
	"studymate/internal/repository"
	"studymate/internal/transport/http/handler"
	"studymate/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	paragraphRepo := repository.NewParagraphRepository(app.MySQL)
	documentChatRepo := repository.NewDocumentChatRepository(app.MySQL)
	freeformChatRepo := repository.NewFreeformChatRepository(app.MySQL)

	publisher := rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.HistoryInvalidateQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	corpusService := appsvc.NewCorpusService(paragraphRepo)
	qaService := appsvc.NewQAService(
		paragraphRepo,
		documentChatRepo,
		freeformChatRepo,
		app.Generator,
		app.HistoryCache,
		publisher,
	)
	historyService := appsvc.NewHistoryService(
		documentChatRepo,
		freeformChatRepo,
		app.HistoryCache,
		publisher,
	)

	authHandler := handler.NewAuthHandler(authService)
	corpusHandler := handler.NewCorpusHandler(corpusService, app.Config.MaxUploadBytes())
	qaHandler := handler.NewQAHandler(qaService)
	historyHandler := handler.NewHistoryHandler(historyService)

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.Me)

	docGroup := v1.Group("/documents")
	docGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	docGroup.POST("/upload", corpusHandler.Upload)
	docGroup.GET("/paragraphs", corpusHandler.List)
	docGroup.DELETE("", corpusHandler.Purge)

	qaGroup := v1.Group("")
	qaGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	qaGroup.POST("/ask", qaHandler.Ask)
	qaGroup.POST("/chat", qaHandler.Chat)
	qaGroup.GET("/history", historyHandler.List)
	qaGroup.POST("/history/delete", historyHandler.Delete)

	return router
}
