package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"dispatch/cmd"
	dispatchhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/openapi"
	"dispatch/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	if err := configs.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := newLogger(configs.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := openapi.Load(ctx); err != nil {
		log.Fatalf("%v", err)
	}

	gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	metrics.Register()

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	if relay := app.Relay(); relay != nil {
		go func() {
			if err := relay.Listen(ctx); err != nil {
				logger.Error("realtime relay stopped", "error", err)
			}
		}()
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, &app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	loadDotEnv()

	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT", "8080"),
		DBHost:     goDotEnvVariable("DB_HOST", "localhost"),
		DBPort:     goDotEnvVariable("DB_PORT", "5432"),
		DBUser:     goDotEnvVariable("DB_USER", ""),
		DBPassword: goDotEnvVariable("DB_PASSWORD", ""),
		DBName:     goDotEnvVariable("DB_NAME", ""),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE", "disable"),

		TokenSecret: goDotEnvVariable("AUTH_TOKEN_SECRET", ""),
		TokenTTL:    durationVariable("AUTH_TOKEN_TTL", 24*time.Hour),

		SelfAcceptRequiresVerification: boolVariable("SELF_ACCEPT_REQUIRES_VERIFICATION", false),
		ExposeErrorDetails:             boolVariable("EXPOSE_ERROR_DETAILS", false),

		RealtimeRelay: goDotEnvVariable("REALTIME_RELAY", ""),
		SweepSchedule: goDotEnvVariable("CONNECTION_SWEEP_SCHEDULE", ""),
		LogLevel:      goDotEnvVariable("LOG_LEVEL", "info"),
	}
	return config
}

// loadDotEnv reads .env when present; the environment alone is enough.
func loadDotEnv() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
}

func goDotEnvVariable(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func boolVariable(key string, fallback bool) bool {
	raw := goDotEnvVariable(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("%s must be a boolean, got %q", key, raw)
	}
	return v
}

func durationVariable(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("%s must be a duration, got %q", key, raw)
	}
	return v
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(dispatchhttp.RequestLogger(logger))

	app.CreateHTTPServer().Register(e)
	openapi.Register(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}
