package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"myka/database"
	"myka/internal/config"
	"myka/internal/http-api/handler"
	"myka/internal/http-api/middleware"
	"myka/internal/http-api/repository"
	"myka/internal/http-api/service"
	"myka/internal/install"
	"myka/internal/logger"
	"myka/internal/notify"
	"myka/internal/scheduler"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not init logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.ConnectDB(cfg, zlog)
	if err != nil {
		zlog.Fatal("could not connect to database", zap.Error(err))
	}

	cache, err := repository.NewNotificationCache(cfg.RedisAddr, cfg.RedisPassword, time.Duration(cfg.CacheTTL)*time.Second)
	if err != nil {
		zlog.Warn("redis unavailable, notification cache disabled", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	priorityRepo := repository.NewPriorityRepository(db)
	mealRepo := repository.NewMealRepository(db)
	weightRepo := repository.NewWeightRepository(db)
	waterRepo := repository.NewWaterRepository(db)
	routineRepo := repository.NewRoutineRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	installRepo := repository.NewInstallRepository(db)

	// Push channel and permission gateway
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := notify.NewHub(zlog)
	go hub.Run(ctx)

	gateway := notify.NewHubGateway(hub, cache, cfg.PermissionTimeout, zlog)

	// Scheduler; timers are rebuilt from the store before serving traffic
	sched := scheduler.New(notificationRepo, hub, scheduler.NewRealClock(), zlog)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	todoService := service.NewTodoService(todoRepo)
	priorityService := service.NewPriorityService(priorityRepo)
	mealService := service.NewMealService(mealRepo)
	weightService := service.NewWeightService(weightRepo)
	waterService := service.NewWaterService(waterRepo)
	notificationService := service.NewNotificationService(notificationRepo, cache, sched, cfg.DefaultSnoozeMinutes, zlog)
	routineService := service.NewRoutineService(routineRepo, notificationService)

	tracker := install.NewTracker(installRepo, hub, zlog)

	if err := sched.RearmAll(ctx); err != nil {
		zlog.Error("startup re-arm sweep failed", zap.Error(err))
	}

	// HTTP
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	r.GET("/ws", notify.ServeWS(hub, authService, zlog))

	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateBurst))
	handler.NewAuthHandler(authService, zlog).RegisterRoutes(authGroup)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(authService))
	handler.NewTodoHandler(todoService).RegisterRoutes(api.Group("/todos"))
	handler.NewPriorityHandler(priorityService).RegisterRoutes(api.Group("/priorities"))
	handler.NewMealHandler(mealService).RegisterRoutes(api.Group("/meals"))
	handler.NewWeightHandler(weightService).RegisterRoutes(api.Group("/weight"))
	handler.NewWaterHandler(waterService).RegisterRoutes(api.Group("/water"))
	handler.NewRoutineHandler(routineService).RegisterRoutes(api.Group("/routines"))
	handler.NewNotificationHandler(notificationService, gateway).RegisterRoutes(api.Group("/notifications"))
	handler.NewInstallHandler(tracker).RegisterRoutes(api.Group("/install"))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	zlog.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
