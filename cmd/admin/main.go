// Command admin creates an ADMIN account or promotes an existing one:
//
//	admin -d sqlite://./remy.db -name remy -password s3cret!
package main

import (
	"context"
	"os"

	"github.com/MKhiriev/remy-site/internal/config"
	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/internal/service"
	"github.com/MKhiriev/remy-site/internal/store"
	"github.com/MKhiriev/remy-site/internal/utils"
	"github.com/MKhiriev/remy-site/models"
)

func main() {
	log := logger.NewLogger("remy-admin")
	cfg, err := config.GetAdminConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := log.WithContext(context.Background())
	storages, err := store.NewStorages(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	authService := service.NewAuthService(storages.UserRepository, utils.NewUUIDGenerator(), log)
	user, created, err := authService.EnsureAdmin(ctx, models.Credentials{Name: cfg.Name, Password: cfg.Password})
	if err != nil {
		storages.Close()
		log.Fatal().Err(err).Str("name", cfg.Name).Msg("error ensuring admin account")
	}

	if created {
		log.Info().Str("id", user.ID).Str("name", user.Name).Msg("admin account created")
		return
	}
	log.Info().Str("id", user.ID).Str("name", user.Name).Msg("account promoted to ADMIN")
}
