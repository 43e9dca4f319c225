package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	identityapp "github.com/recipebox/backend/internal/application/identity"
	"github.com/recipebox/backend/internal/infrastructure/config"
	"github.com/recipebox/backend/internal/infrastructure/logger"
	"github.com/recipebox/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// createsuperuser creates a staff superuser account, typically the
// first account of a fresh deployment.
func main() {
	var (
		email    string
		password string
		logLevel string
	)

	flag.StringVar(&email, "email", "", "Email address for the superuser (required)")
	flag.StringVar(&password, "password", "", "Password for the superuser (required)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "Usage: createsuperuser -email <email> -password <password>")
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Connect and migrate so the command works on a fresh database.
	// The -log-level flag also controls SQL logging.
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.MapGormLogLevel(logLevel))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	userRepo := persistence.NewGormUserRepository(db.DB)
	userService := identityapp.NewUserService(userRepo, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := userService.CreateSuperuser(ctx, email, password)
	if err != nil {
		log.Fatal("Failed to create superuser", zap.Error(err))
	}

	log.Info("Superuser created",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)
}
