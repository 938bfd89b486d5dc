// Command seed creates the initial admin account if it does not exist
// yet. Safe to run on every deploy.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/daii-team/school-scheduler/internal/config"
	"github.com/daii-team/school-scheduler/internal/lib/password"
	"github.com/daii-team/school-scheduler/internal/lib/sl"
	"github.com/daii-team/school-scheduler/internal/migrations"
	"github.com/daii-team/school-scheduler/internal/models"
	"github.com/daii-team/school-scheduler/internal/storage/repository"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = db.DB.Close()
	}()

	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", sl.Err(err))
		os.Exit(1)
	}

	exists, err := db.ExistsUserByUsername(ctx, "admin")
	if err != nil {
		logger.Error("failed to check admin account", sl.Err(err))
		os.Exit(1)
	}
	if exists {
		logger.Info("admin account already exists, nothing to do")
		return
	}

	hash, err := password.GetHash("admin")
	if err != nil {
		logger.Error("failed to hash admin password", sl.Err(err))
		os.Exit(1)
	}

	uid, err := db.RegisterUser(ctx, models.User{
		Name:         "Admin",
		Email:        "adm@unesc.net",
		Username:     "admin",
		PasswordHash: hash,
		Level:        models.LevelAdmin,
		Status:       models.StatusActive,
	})
	if err != nil {
		logger.Error("failed to create admin account", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("admin account created", slog.String("uid", uid))
}
