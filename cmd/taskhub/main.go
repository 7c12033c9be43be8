package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/taskhub-dev/taskhub/db"
	"github.com/taskhub-dev/taskhub/internal/auth"
	"github.com/taskhub-dev/taskhub/internal/config"
	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/router"
	"github.com/taskhub-dev/taskhub/internal/store"
	"github.com/taskhub-dev/taskhub/internal/store/dbstore"
	"github.com/taskhub-dev/taskhub/internal/store/jsonstore"
	"github.com/taskhub-dev/taskhub/internal/types"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	st, err := openStore(cfg)

	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	if err := seedAdmin(st, cfg); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	tokens := auth.NewTokenService(cfg.SecretKey, cfg.TokenTTL)

	r := router.New(cfg, st, tokens)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func openStore(cfg config.Config) (store.Store, error) {
	if cfg.Storage == config.StorageDatabase {
		conn, err := db.Connect(cfg.DatabaseURL)

		if err != nil {
			return nil, err
		}

		if err := db.Migrate(conn); err != nil {
			return nil, err
		}

		return dbstore.New(conn), nil
	}

	return jsonstore.Open(cfg.DataDir)
}

// seedAdmin bootstraps an empty store with one Admin, since user creation
// is itself Admin-only.
func seedAdmin(st store.Store, cfg config.Config) error {
	count, err := st.CountUsers()

	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)

	if err != nil {
		return err
	}

	admin, err := st.InsertUser(models.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		Role:         types.RoleAdmin,
		PasswordHash: string(passwordHash),
	})

	if err != nil {
		return err
	}

	log.Printf("Seeded admin user %s (id=%d)", admin.Email, admin.ID)
	return nil
}
