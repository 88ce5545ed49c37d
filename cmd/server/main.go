package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/kodamai/recruitr/internal/config"
	"github.com/kodamai/recruitr/internal/domain/fiber/handler"
	"github.com/kodamai/recruitr/internal/middleware"
	"github.com/kodamai/recruitr/internal/model"
	"github.com/kodamai/recruitr/internal/repository"
	"github.com/kodamai/recruitr/internal/service"
	"github.com/kodamai/recruitr/internal/usecase"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	zapLogger, err := newLogger(appConfig.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer zapLogger.Sync()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := connectDB(zapLogger)

	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	draftRepo := repository.NewEmailDraftRepository(db)

	gemini, err := service.NewGeminiService(ctx, zapLogger)
	if err != nil {
		zapLogger.Fatal("could not initialize gemini service", zap.Error(err))
	}

	var completion service.CompletionService = gemini
	if appConfig.AIProvider == "openrouter" {
		completion = service.NewOpenRouterService(zapLogger)
	}
	mailer := service.NewSMTPMailer(zapLogger)

	authUC := usecase.NewAuthUsecase(userRepo)
	analysisUC := usecase.NewAnalysisUsecase(appRepo, jobRepo, userRepo, completion, gemini, zapLogger, 4)
	applicationUC := usecase.NewApplicationUsecase(appRepo, jobRepo, analysisUC, zapLogger)
	jobUC := usecase.NewJobUsecase(jobRepo, appRepo, userRepo, gemini, zapLogger)
	chatUC := usecase.NewChatUsecase(jobRepo, appRepo, userRepo)
	emailUC := usecase.NewEmailUsecase(appRepo, jobRepo, userRepo, draftRepo, completion, mailer, zapLogger)

	handler.NewAuthHandler(authUC, userRepo).RegisterRoutes(app)
	handler.NewJobHandler(jobUC, authUC, userRepo).RegisterRoutes(app)
	handler.NewApplicationHandler(applicationUC, authUC, userRepo).RegisterRoutes(app)
	handler.NewChatHandler(chatUC, authUC, userRepo).RegisterRoutes(app)
	handler.NewAIHandler(analysisUC, applicationUC, emailUC, authUC, userRepo).RegisterRoutes(app)

	zapLogger.Info("server running", zap.String("port", appConfig.Port))
	if err := app.Listen(appConfig.Port); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func connectDB(zapLogger *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zapLogger.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("could not get database instance", zap.Error(err))
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	// pgvector powers the CV/job embedding columns.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		zapLogger.Fatal("could not enable vector extension", zap.Error(err))
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		zapLogger.Fatal("could not enable uuid extension", zap.Error(err))
	}

	err = db.AutoMigrate(&model.User{}, &model.Job{}, &model.Application{}, &model.EmailDraft{})
	if err != nil {
		zapLogger.Fatal("migration failed", zap.Error(err))
	}
	return db
}
