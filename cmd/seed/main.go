package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-event-registration/config"
	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	"github.com/oksasatya/go-event-registration/internal/domain/repository"
	pginfra "github.com/oksasatya/go-event-registration/internal/infrastructure/postgres"
	"github.com/oksasatya/go-event-registration/pkg/helpers"
	"github.com/oksasatya/go-event-registration/pkg/pagination"
)

type seedConfig struct {
	AdminName     string `env:"SEED_ADMIN_NAME" env-default:"Admin"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL" env-default:"admin@example.com"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD" env-required:"true"`
}

const sampleEventName = "Annual Tech Conference"

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	var seed seedConfig
	if err := cleanenv.ReadEnv(&seed); err != nil {
		log.Fatalf("seed config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.DatabaseURL, pginfra.PoolOptions{AppName: cfg.AppName + "-seed", MaxConns: 2})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.MigrateUp(cfg.DatabaseURL, cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	users := pginfra.NewUserRepository(pool)
	events := pginfra.NewEventRepository(pool)

	hash, err := helpers.HashPassword(seed.AdminPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin, err := users.GetByEmail(ctx, seed.AdminEmail)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		admin = &entity.User{Name: seed.AdminName, Email: seed.AdminEmail, Password: hash, Role: entity.RoleAdmin}
		if err := users.Create(ctx, admin); err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
		logger.WithField("email", admin.Email).Info("admin created")
	case err != nil:
		log.Fatalf("failed to look up admin: %v", err)
	default:
		role := entity.RoleAdmin
		admin, err = users.Update(ctx, admin.ID, entity.UserPatch{Role: &role, Password: &hash})
		if err != nil {
			log.Fatalf("failed to promote admin: %v", err)
		}
		logger.WithField("email", admin.Email).Info("admin updated")
	}

	_, total, err := events.List(ctx, repository.EventQuery{
		Search: sampleEventName,
		Page:   pagination.Params{Page: 1, Limit: 1},
	})
	if err != nil {
		log.Fatalf("failed to look up sample event: %v", err)
	}
	if total > 0 {
		logger.Info("sample event already present")
		return
	}
	e := &entity.Event{
		Name:        sampleEventName,
		Description: "A day of talks and workshops on building reliable backend systems.",
		Category:    "Technology",
		Date:        time.Now().AddDate(1, 0, 0).UTC().Truncate(time.Hour),
		Venue:       "Main Hall",
		Price:       25,
		OrganizerID: admin.ID,
	}
	if err := events.Create(ctx, e); err != nil {
		log.Fatalf("failed to seed event: %v", err)
	}
	logger.WithFields(logrus.Fields{"event_id": e.ID, "date": e.Date}).Info("sample event created")
}
