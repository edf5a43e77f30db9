package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/investguard/investguard/internal/advisors"
	"github.com/investguard/investguard/internal/alerts"
	"github.com/investguard/investguard/internal/auth"
	"github.com/investguard/investguard/internal/engine"
	"github.com/investguard/investguard/internal/network"
	"github.com/investguard/investguard/internal/reports"
	"github.com/investguard/investguard/migrations"
	"github.com/investguard/investguard/pkg/common"
	"github.com/investguard/investguard/pkg/config"
	"github.com/investguard/investguard/pkg/database"
	"github.com/investguard/investguard/pkg/logger"
	"github.com/investguard/investguard/pkg/middleware"
	"github.com/investguard/investguard/pkg/redis"
)

const serviceName = "investguard-api"

func main() {
	// Load configuration
	cfg, err := config.Load(serviceName)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to PostgreSQL and apply migrations
	pool, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(pool)

	if err := database.Migrate(&cfg.Database, migrations.FS); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	logger.Info("Connected to PostgreSQL, schema up to date")

	// Connect to Redis
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis")

	// Build the analysis engine over the pgx-backed advisor registry
	advisorRepo := advisors.NewRepository(pool)
	eng, err := engine.New(advisorRepo, engine.WithClusterThreshold(cfg.Engine.ClusterThreshold))
	if err != nil {
		logger.Fatal("Failed to build analysis engine", zap.Error(err))
	}

	// Services
	alertRepo := alerts.NewRepository(pool)
	cacheTTL := time.Duration(cfg.Engine.AnalysisCacheTTL) * time.Minute
	alertService := alerts.NewService(eng, alertRepo, redisClient, cacheTTL, cfg.Engine.AutoAlertThreshold)
	advisorService := advisors.NewService(eng, advisorRepo)
	networkService := network.NewService(eng, network.NewRepository(pool), alertService)
	reportService := reports.NewService(reports.NewRepository(pool))
	authService := auth.NewService(auth.NewRepository(pool), cfg.JWT)

	// Router and middleware chain
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics(serviceName))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.MaxBodySize(1 << 20))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.CORSOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check and metrics (no auth required)
	router.GET("/healthz", common.HealthCheckWithDeps(serviceName, "1.0.0", map[string]func() error{
		"postgres": func() error { return pool.Ping(context.Background()) },
		"redis":    func() error { return redisClient.Ping(context.Background()).Err() },
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	jwtSecret := cfg.JWT.Secret
	auth.NewHandler(authService).RegisterRoutes(router, jwtSecret)
	alerts.NewHandler(alertService).RegisterRoutes(router, jwtSecret)
	advisors.NewHandler(advisorService).RegisterRoutes(router, jwtSecret)
	network.NewHandler(networkService).RegisterRoutes(router, jwtSecret)
	reports.NewHandler(reportService).RegisterRoutes(router, jwtSecret)

	// Start server
	addr := ":" + cfg.Server.Port
	logger.Info("API server starting", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
