package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/remy-site/internal/config"
	"github.com/MKhiriev/remy-site/internal/logger"
)

// Storages groups every repository the services need, plus the shared
// connection so it can be closed on shutdown.
type Storages struct {
	DB                *DB
	UserRepository    UserRepository
	ProductRepository ProductRepository
	ReviewRepository  ReviewRepository
}

// NewStorages opens the database, applies migrations and builds the
// repositories.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	db, err := Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "store.NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}
	log.Info().Str("func", "store.NewStorages").Str("dialect", string(db.Dialect())).Msg("database is up to date")

	return NewStoragesFromDB(db, log), nil
}

// NewStoragesFromDB builds the repositories on an already opened connection.
func NewStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		DB:                db,
		UserRepository:    NewUserRepository(db, log),
		ProductRepository: NewProductRepository(db, log),
		ReviewRepository:  NewReviewRepository(db, log),
	}
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
