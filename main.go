package main

import (
	"context"
	"time"

	"taskly-be/internal/cache"
	"taskly-be/internal/config"
	"taskly-be/internal/controllers"
	"taskly-be/internal/database"
	"taskly-be/internal/mailer"
	"taskly-be/internal/middleware"
	"taskly-be/internal/notifier"
	"taskly-be/internal/repository"
	"taskly-be/internal/service"
	"taskly-be/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db, "migrations"); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Session storage: Redis when configured, in-process fallback otherwise
	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	var sessions session.Store
	if cfg.RedisURL != "" {
		cacheClient, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			logger.Warn("failed to connect to Redis, falling back to in-memory sessions", zap.Error(err))
			sessions = session.NewMemoryStore(sessionTTL)
		} else {
			logger.Info("connected to Redis session store")
			sessions = session.NewRedisStore(cacheClient, sessionTTL)
		}
	} else {
		logger.Warn("REDIS_URL not set, sessions will not survive a restart")
		sessions = session.NewMemoryStore(sessionTTL)
	}

	// Outbound mail: log-only fallback when SMTP is not configured
	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPSender)
	} else {
		mail = mailer.NewDisabled(logger)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo)
	resetService := service.NewPasswordResetService(userRepo, mail, cfg.BaseURL)
	taskService := service.NewTaskService(taskRepo)

	// Initialize controllers
	authController := controllers.NewAuthController(authService, resetService, sessions, sessionTTL)
	taskController := controllers.NewTaskController(taskService)
	dashboardController := controllers.NewDashboardController(taskService)

	// Start the hourly due-task sweep
	dueNotifier := notifier.New(taskRepo, logger, time.Hour)
	dueNotifier.Start(context.Background())

	// Create a Gin router
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/logout", authController.Logout)
			auth.POST("/forgot-password", authController.ForgotPassword)
			auth.POST("/reset-password", authController.ResetPassword)
		}

		// Protected routes - require a session cookie
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(sessions))
		{
			protected.GET("/dashboard", dashboardController.GetDashboard)

			protected.GET("/tasks", taskController.GetTasks)
			protected.POST("/tasks", taskController.CreateTask)
			protected.GET("/tasks/:id", taskController.GetTask)
			protected.PUT("/tasks/:id", taskController.UpdateTask)
			protected.DELETE("/tasks/:id", taskController.DeleteTask)
			protected.PUT("/tasks/status/:id", taskController.UpdateTaskStatus)
		}
	}

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
