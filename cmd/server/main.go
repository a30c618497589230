package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/remy-site/internal/auth"
	"github.com/MKhiriev/remy-site/internal/config"
	"github.com/MKhiriev/remy-site/internal/handler"
	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/internal/objectstore"
	"github.com/MKhiriev/remy-site/internal/server"
	"github.com/MKhiriev/remy-site/internal/service"
	"github.com/MKhiriev/remy-site/internal/store"
	"github.com/MKhiriev/remy-site/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("remy-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	if cfg.App.Version == "" && buildInfo.HasVersion() {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	codec, err := auth.NewCodec([]byte(cfg.App.SessionSecret))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating session codec")
	}

	ctx := context.Background()
	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	// leave the interface nil when uploads are not configured
	var objects objectstore.ObjectStorage
	if cfg.Storage.Objects.Enabled() {
		s3Storage, err := objectstore.NewS3Storage(ctx, cfg.Storage.Objects, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating object storage")
		}
		objects = s3Storage
	} else {
		log.Warn().Msg("object storage is not configured, uploads are disabled")
	}

	services, err := service.NewServices(storages, objects, codec, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
