// Command useradd provisions a login against the configured store. With
// -reset it changes the password of an existing user instead.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"pedidos-backend/internal/auth"
	"pedidos-backend/internal/config"
	"pedidos-backend/internal/database"
	"pedidos-backend/internal/logger"
	"pedidos-backend/internal/models"
)

func main() {
	name := flag.String("name", "", "user name (required)")
	password := flag.String("password", "", "password (required)")
	admin := flag.Bool("admin", false, "grant access to the history page")
	reset := flag.Bool("reset", false, "change the password of an existing user")
	flag.Parse()

	if *name == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr})

	if err := run(ctx, log, cfg.Database.Path, *name, *password, *admin, *reset); err != nil {
		log.Fatal().Err(err).Str("user", *name).Msg("useradd failed")
	}
}

func run(ctx context.Context, log zerolog.Logger, path, name, password string, admin, reset bool) error {
	db, err := database.Open(ctx, database.Config{Path: path}, log)
	if err != nil {
		return err
	}
	defer db.Close()

	users := database.NewUserRepo(db)
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if reset {
		if err := users.UpdatePassword(ctx, name, hash); err != nil {
			return err
		}
		log.Info().Str("user", name).Msg("password updated")
		return nil
	}

	err = users.Create(ctx, &models.User{Name: name, PasswordHash: hash, IsAdmin: admin})
	if errors.Is(err, database.ErrUserAlreadyExists) {
		return fmt.Errorf("%w (use -reset to change the password)", err)
	}
	if err != nil {
		return err
	}
	log.Info().Str("user", name).Bool("admin", admin).Msg("user created")
	return nil
}
