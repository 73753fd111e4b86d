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
	httpin "dispatch/internal/adapters/in/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})

	root := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)
	if err := root.MigrateDatabase(); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer, err := root.CreateMarketplaceConsumer()
	if err != nil {
		log.Fatalf("Broker connection failed: %v", err)
	}
	if err = consumer.Start(ctx); err != nil {
		log.Fatalf("Broker consumer failed to start: %v", err)
	}
	defer consumer.Close()

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Background jobs failed to start: %v", err)
	}
	defer jobManager.StopAll()

	e := buildEcho(&root, configs.JWTSecret)
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && err != http.ErrServerClosed {
			logger.Error("http server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}

func buildEcho(root *cmd.CompositionRoot, jwtSecret string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = httpin.NewRequestValidator()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	root.CreateHTTPServer().RegisterRoutes(e, jwtSecret)
	root.CreateTrackingServer().RegisterRoutes(e, jwtSecret)
	return e
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	return gormDB
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:         goDotEnvVariable("JWT_SECRET"),
		RedisAddr:         goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		PushBaseURL:       goDotEnvVariable("PUSH_BASE_URL"),
		PushAPIKey:        goDotEnvVariable("PUSH_API_KEY"),
		AmqpURL:           goDotEnvVariable("AMQP_URL"),
		LocationRetention: locationRetention(),
	}
	return config
}

func locationRetention() time.Duration {
	raw := os.Getenv("LOCATION_RETENTION")
	if raw == "" {
		return 24 * time.Hour
	}
	retention, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid LOCATION_RETENTION value %q: %v", raw, err)
	}
	return retention
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}
