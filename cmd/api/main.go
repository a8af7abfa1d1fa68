package main

import (
	"log"
	"time"

	"dailydiet/internal/config"
	"dailydiet/internal/database"
	"dailydiet/internal/handlers"
	"dailydiet/internal/middleware"
	"dailydiet/internal/monitoring"
	"dailydiet/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	tokens, err := utils.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		log.Fatal("Failed to initialize token manager:", err)
	}

	database.InitDB(cfg)
	defer database.CloseDB()
	database.CreateTables()

	handlers.SetMonitoringService(monitoring.NewService(time.Now(), cfg.DataPath), cfg.MonitoringAPIKey)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.RequestMetricsMiddleware())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/api/status", handlers.Status)

	auth := router.Group("/auth")
	{
		auth.POST("/register", handlers.Register(tokens))
		auth.POST("/login", handlers.Login(tokens))
	}

	diets := router.Group("/diets")
	diets.Use(middleware.Auth(tokens))
	{
		diets.POST("/new", handlers.CreateDiet)
		diets.GET("/", handlers.ListDiets)
		diets.GET("/summary", handlers.DietsSummary)
		diets.GET("/:id", handlers.GetDiet)
		diets.PATCH("/:id", handlers.UpdateDiet)
		diets.DELETE("/:id", handlers.DeleteDiet)
	}

	monitor := router.Group("/api/monitor")
	{
		monitor.GET("/status", handlers.MonitorStatus)
		monitor.GET("/storage", handlers.MonitorStorage)
		monitor.GET("/connections", handlers.MonitorConnections)
		monitor.GET("/users", handlers.MonitorUsers)
		monitor.GET("/runtime", handlers.MonitorRuntime)
		monitor.GET("/all", handlers.MonitorAll)
		monitor.GET("/snapshot", handlers.MonitorSnapshot)
	}

	log.Println("🚀 Daily Diet API starting on :" + cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("❌ Server failed to start:", err)
	}
}
