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

	"dispatch/cmd"
	dispatchhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultDispatchSchedule = "*/10 * * * * *"

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	schedule := configs.DispatchSchedule
	if schedule == "" {
		schedule = defaultDispatchSchedule
	}
	jobManager := jobs.NewJobManager(app.ProcessPendingOrdersCommandHandler(), schedule, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DispatchSchedule: os.Getenv("DISPATCH_SCHEDULE"),
		DispatchPacingMs: os.Getenv("DISPATCH_PACING_MS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func mustMigrateDB(db *gorm.DB) {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&driverrepo.DriverDTO{},
		&assignmentrepo.AssignmentDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()

	server := dispatchhttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateRegisterDriverCommandHandler(),
		app.CreateReviewDriverCommandHandler(),
		app.CreateUpdateDriverPresenceCommandHandler(),
		app.ProcessPendingOrdersCommandHandler(),
		app.CreateGetPendingOrdersQueryHandler(),
		app.CreateGetAllDriversQueryHandler(),
		app.CreateGetRecentAssignmentsQueryHandler(),
		app.CreateGetSystemStatsQueryHandler(),
		app.Broadcaster(),
	)
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start web server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
}
