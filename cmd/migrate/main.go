package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/infrastructure/config"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/infrastructure/logger"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Schema migration and first-run seeding CLI.
//
//	migrate up               apply the schema to the configured database
//	migrate seed             create the bootstrap head manager account
//	migrate up seed          both, in order
func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	commands := flag.Args()
	if len(commands) == 0 {
		printUsage()
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	for _, command := range commands {
		switch command {
		case "up":
			if err := persistence.Migrate(db.DB); err != nil {
				log.Fatal("Schema migration failed", zap.Error(err))
			}
			log.Info("Schema migration applied")
		case "seed":
			if err := seedHeadManager(db, log); err != nil {
				log.Fatal("Seeding failed", zap.Error(err))
			}
		default:
			log.Error("Unknown command", zap.String("command", command))
			printUsage()
			os.Exit(1)
		}
	}
}

// seedHeadManager creates the initial head manager account when no user with
// that username exists yet. Credentials come from PULSE_SEED_USERNAME and
// PULSE_SEED_PASSWORD so they never land in the config file.
func seedHeadManager(db *persistence.Database, log *zap.Logger) error {
	username := os.Getenv("PULSE_SEED_USERNAME")
	password := os.Getenv("PULSE_SEED_PASSWORD")
	if username == "" || password == "" {
		return fmt.Errorf("PULSE_SEED_USERNAME and PULSE_SEED_PASSWORD must be set")
	}

	ctx := context.Background()
	userRepo := persistence.NewGormUserRepository(db.DB)

	existing, err := userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if existing != nil {
		log.Info("Head manager account already exists, nothing to do",
			zap.String("username", existing.Username))
		return nil
	}

	user, err := identity.NewUser(username, password, identity.RoleHeadManager)
	if err != nil {
		return err
	}
	if err := user.SetDisplayName("Head Manager"); err != nil {
		return err
	}
	if err := userRepo.Save(ctx, user); err != nil {
		return err
	}

	log.Info("Head manager account created",
		zap.String("username", user.Username),
		zap.String("user_id", user.GetID().String()),
	)
	return nil
}

func printUsage() {
	fmt.Println("Usage: migrate [flags] <command>...")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  up      apply the database schema")
	fmt.Println("  seed    create the bootstrap head manager account")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
