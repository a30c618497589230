package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/models"
	sq "github.com/Masterminds/squirrel"
)

// productRepository stores the event page in "products". The gallery is
// kept as a JSON array of URLs in gallery_json.
type productRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewProductRepository(db *DB, logger *logger.Logger) ProductRepository {
	logger.Debug().Msg("creating product repository")
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

func (r *productRepository) FindProduct(ctx context.Context) (models.Product, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectProductQuery(r.db.builder)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.FindProduct").Msg("error building query")
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		product             models.Product
		subtitle, heroImage sql.NullString
		gallery             string
	)
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, query, args...)
		return row.Scan(
			&product.ID,
			&product.Title,
			&subtitle,
			&product.Description,
			&heroImage,
			&gallery,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, ErrProductNotFound
		}
		log.Err(err).Str("func", "*productRepository.FindProduct").Msg("error scanning product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	product.Subtitle = stringPtr(subtitle)
	product.HeroImageURL = stringPtr(heroImage)
	product.Gallery = decodeGallery(log, gallery)

	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	return r.write(ctx, "*productRepository.CreateProduct", product, buildInsertProductQuery)
}

// UpdateProduct returns [ErrProductNotFound] when product.ID matches no row.
func (r *productRepository) UpdateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	return r.write(ctx, "*productRepository.UpdateProduct", product, buildUpdateProductQuery)
}

type productQueryBuilder func(b sq.StatementBuilderType, product models.Product, gallery string) (string, []any, error)

func (r *productRepository) write(ctx context.Context, fn string, product models.Product, build productQueryBuilder) (models.Product, error) {
	log := logger.FromContext(ctx)

	if product.Gallery == nil {
		product.Gallery = []string{}
	}
	gallery, err := json.Marshal(product.Gallery)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error encoding gallery")
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := build(r.db.builder, product, string(gallery))
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error building query")
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		result, execErr := r.db.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = result.RowsAffected()
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error writing product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.Product{}, ErrProductNotFound
	}

	return product, nil
}

// decodeGallery tolerates a corrupt column by returning an empty gallery.
func decodeGallery(log *logger.Logger, raw string) []string {
	gallery := []string{}
	if raw == "" {
		return gallery
	}
	if err := json.Unmarshal([]byte(raw), &gallery); err != nil {
		log.Warn().Err(err).Str("func", "decodeGallery").Msg("invalid gallery_json, ignoring")
		return []string{}
	}
	if gallery == nil {
		return []string{}
	}
	return gallery
}
