package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"character-arena/combat"
	"character-arena/config"
	"character-arena/handlers"
	"character-arena/middleware"
	"character-arena/models"
	"character-arena/services"
	"character-arena/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	}

	if err := db.AutoMigrate(
		&models.Character{},
		&models.Match{},
		&models.MatchRound{},
		&models.LeaderboardEntry{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	var uploader services.SnapshotUploader
	if cfg.SnapshotsEnabled() {
		r2, err := utils.NewR2Client(ctx, utils.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			Bucket:          cfg.R2BucketName,
			CDNBaseURL:      cfg.CDNBaseURL,
		})
		if err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
		uploader = r2
	} else {
		log.Println("⚠️  R2_BUCKET_NAME not set, leaderboard snapshots disabled")
	}

	simulator := combat.NewSimulator(log.New(os.Stdout, "[Combat] ", log.LstdFlags))
	characterService := services.NewCharacterService(db)
	leaderboardService := services.NewLeaderboardService(db, uploader)
	matchService := services.NewMatchService(db, characterService, leaderboardService, simulator, cfg.MaxMatchRounds)

	if uploader != nil {
		sched, err := leaderboardService.StartSnapshotScheduler(ctx, cfg.SnapshotInterval)
		if err != nil {
			log.Fatal("failed to start snapshot scheduler:", err)
		}
		defer func() {
			if err := sched.Shutdown(); err != nil {
				log.Printf("Scheduler shutdown error: %v", err)
			}
		}()
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,OPTIONS,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// 🔐❗ GLOBAL: Only Gateway requests allowed
	app.Use(middleware.GatewayAuthMiddleware(cfg.GatewayToken))
	app.Use(middleware.AccountContextMiddleware())

	handlers.SetupCharacterRoutes(app, characterService)
	handlers.SetupMatchRoutes(app, matchService)
	handlers.SetupLeaderboardRoutes(app, leaderboardService)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
	log.Printf("✅ CORS configured for origins: %s", strings.Join(cfg.AllowedOrigins, ","))
	log.Printf("✅ Matches capped at %d rounds", cfg.MaxMatchRounds)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
