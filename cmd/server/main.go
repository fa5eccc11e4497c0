package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/momentumhq/contentpilot/configs"
	"github.com/momentumhq/contentpilot/internal/api/handlers"
	"github.com/momentumhq/contentpilot/internal/api/middleware"
	job "github.com/momentumhq/contentpilot/internal/jobs"
	"github.com/momentumhq/contentpilot/internal/queue"
	"github.com/momentumhq/contentpilot/internal/repository"
	"github.com/momentumhq/contentpilot/internal/service"
	"github.com/momentumhq/contentpilot/pkg/ratelimit"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	consultantRepo := repository.NewConsultantRepository(db)
	postRepo := repository.NewPostRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)
	postMediaRepo := repository.NewPostMediaRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)
	scheduleRepo := repository.NewPostingScheduleRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)
	historyRepo := repository.NewPublishHistoryRepository(db)

	geminiLimiter := ratelimit.New(2 * time.Second)
	geminiService, err := service.NewGeminiService(*cfg, geminiLimiter)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}

	r2Service, err := service.NewR2Service(*cfg)
	if err != nil {
		log.Fatalf("Failed to create R2 client: %v", err)
	}

	authService := service.NewAuthService(*cfg, consultantRepo)
	consultantService := service.NewConsultantService(consultantRepo)
	settingsService := service.NewSettingsService(*cfg, scheduleRepo, consultantRepo)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)
	accountService := service.NewSocialAccountService(socialAccountRepo)
	postService := service.NewPostService(postRepo, postMediaRepo)
	publerService := service.NewPublerService(*cfg)
	imageService := service.NewImageService(geminiService, r2Service, mediaAssetRepo, postMediaRepo)
	contentService := service.NewContentService(geminiService)
	plannerService := service.NewPlannerService()
	autopilotService := service.NewAutopilotService(*cfg, plannerService, contentService, imageService, publerService,
		postRepo, batchRepo, consultantRepo, socialAccountRepo, scheduleRepo, subscriptionRepo, historyRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	consultant := handlers.NewConsultantHandler(consultantService)
	api.Get("/consultant/info", consultant.GetInfo)

	settings := handlers.NewSettingsHandler(settingsService)
	api.Get("/settings/schedules", settings.ListSchedules)
	api.Post("/settings/schedules", settings.UpdateSchedule)
	api.Post("/settings/publer_key", settings.UpdatePublerKey)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	accounts := handlers.NewAccountsHandler(accountService)
	api.Get("/accounts", accounts.ListAccounts)
	api.Post("/accounts/connect", accounts.ConnectAccount)
	api.Post("/accounts/remove", accounts.RemoveAccount)

	post := handlers.NewPostHandler(postService)
	api.Get("/posts", post.ListPosts)
	api.Get("/posts/:id", post.GetPost)
	api.Post("/posts/:id/cancel", post.CancelPost)
	api.Post("/posts/remove", post.RemovePost)

	autopilot := handlers.NewAutopilotHandler(autopilotService, client)
	api.Post("/autopilot/run", autopilot.Run)
	api.Post("/autopilot/run/async", autopilot.RunAsync)
	api.Get("/autopilot/batches", autopilot.ListBatches)
	api.Get("/autopilot/batches/:id", autopilot.GetBatch)
	api.Post("/autopilot/batches/:id/approve", autopilot.ApproveBatch)

	// cron jobs
	publerSyncJob := job.NewPublerSyncJob(*cfg, postRepo, consultantRepo, publerService)

	// queue
	queueW := queue.NewQueue(autopilotService)

	c := cron.New()
	c.AddFunc("@every 00h10m00s", publerSyncJob.SyncStatuses)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			// Runs are sequential end to end, so one worker is enough and
			// keeps concurrent runs from racing on the same calendar.
			Concurrency: 1,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeAutopilotRun, queueW.HandleAutopilotRunTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
