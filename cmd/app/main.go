package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jetbond/cmd"
	inhttp "jetbond/internal/adapters/in/http"
	"jetbond/internal/adapters/out/memstore"
	pgstore "jetbond/internal/adapters/out/postgres"
	"jetbond/internal/core/ports"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs(logger)

	store := memstore.NewStore(nil, logger)
	var restored ports.State
	if configs.PersistenceEnabled() {
		durable := openDurableStore(configs)
		store = memstore.NewStore(durable, logger)

		state, err := durable.LoadAll(context.Background())
		if err != nil {
			log.Fatalf("Failed to load persisted state: %v", err)
		}
		store.Seed(state)
		restored = state
		logger.Info("State restored from postgres",
			"jobs", len(state.Jobs), "workers", len(state.Workers))
	} else {
		logger.Warn("No DB_HOST configured, running without persistence")
	}

	root := cmd.NewCompositionRoot(configs, store, logger)
	root.RestoreWindowTimers(context.Background(), restored)

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}

	e := newWebServer(root)

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		if err := e.Start(addr); err != nil {
			logger.Info("HTTP server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	jobManager.StopAll()
	root.Scheduler().Stop()
	root.Hub().Close()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}

func newWebServer(root *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	handlers := inhttp.Handlers{
		RegisterUser:      root.CreateRegisterUserCommandHandler(),
		CreateJob:         root.CreateCreateJobCommandHandler(),
		FindMatches:       root.CreateFindMatchesCommandHandler(),
		ApplyToJob:        root.CreateApplyToJobCommandHandler(),
		SelectWorker:      root.CreateSelectWorkerCommandHandler(),
		CancelApplication: root.CreateCancelApplicationCommandHandler(),
		CancelJob:         root.CreateCancelJobCommandHandler(),
		MarkEmployeeDone:  root.CreateMarkEmployeeDoneCommandHandler(),
		CompleteJob:       root.CreateCompleteJobCommandHandler(),
		RateUser:          root.CreateRateUserCommandHandler(),

		GetJobs:              root.CreateGetJobsQueryHandler(),
		GetJobApplicants:     root.CreateGetJobApplicantsQueryHandler(),
		GetUser:              root.CreateGetUserQueryHandler(),
		PendingNotifications: root.CreateGetPendingNotificationsQueryHandler(),
	}

	inhttp.NewServer(handlers, root.Hub()).RegisterRoutes(e)

	return e
}

func openDurableStore(configs cmd.Config) *pgstore.GormDurableStore {
	db, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}

	durable := pgstore.NewGormDurableStore(db)
	if err = durable.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	return durable
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("No .env file found, using process environment")
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return cmd.Config{
		HTTPPort:        port,
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          os.Getenv("DB_PORT"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBSslMode:       os.Getenv("DB_SSLMODE"),
		DeepSeekAPIKey:  os.Getenv("DEEPSEEK_API_KEY"),
		DeepSeekBaseURL: os.Getenv("DEEPSEEK_BASE_URL"),
	}
}
