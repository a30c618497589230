package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/internal/store"
	"github.com/MKhiriev/remy-site/models"
	"golang.org/x/sync/singleflight"
)

// Product field limits, counted in characters. Longer input is cut, not
// rejected.
const (
	MaxTitleLength        = 120
	MaxSubtitleLength     = 200
	MaxDescriptionLength  = 5000
	MaxHeroImageURLLength = 1000
	MaxGalleryItems       = 30
)

const (
	defaultProductTitle       = "30 ans de Rémy"
	defaultProductSubtitle    = "La page officielle 🎉"
	defaultProductDescription = "Modifie-moi depuis /admin"
)

type productService struct {
	productRepository store.ProductRepository
	ids               IDGenerator
	now               func() time.Time

	// ensure collapses concurrent first reads into a single insert.
	ensure singleflight.Group

	logger *logger.Logger
}

func NewProductService(productRepository store.ProductRepository, ids IDGenerator, logger *logger.Logger) ProductService {
	return &productService{
		productRepository: productRepository,
		ids:               ids,
		now:               time.Now,
		logger:            logger,
	}
}

func (s *productService) GetProduct(ctx context.Context) (models.Product, error) {
	return s.ensureProduct(ctx)
}

// CreateProduct stores the default product. It fails with a
// *ConflictError wrapping ErrProductAlreadyExists when one exists.
func (s *productService) CreateProduct(ctx context.Context) (models.Product, error) {
	existing, err := s.productRepository.FindProduct(ctx)
	if err == nil {
		return models.Product{}, &ConflictError{Err: ErrProductAlreadyExists, ID: existing.ID}
	}
	if !errors.Is(err, store.ErrProductNotFound) {
		return models.Product{}, fmt.Errorf("product lookup failed: %w", err)
	}

	return s.createDefault(ctx)
}

// UpdateProduct replaces every editable field of the product.
func (s *productService) UpdateProduct(ctx context.Context, update models.ProductUpdate) (models.Product, error) {
	title := truncate(strings.TrimSpace(update.Title), MaxTitleLength)
	description := truncate(strings.TrimSpace(update.Description), MaxDescriptionLength)
	if title == "" || description == "" {
		return models.Product{}, ErrProductFieldsMissing
	}

	product, err := s.ensureProduct(ctx)
	if err != nil {
		return models.Product{}, err
	}

	product.Title = title
	product.Subtitle = optionalText(update.Subtitle, MaxSubtitleLength)
	product.Description = description
	product.HeroImageURL = optionalText(update.HeroImageURL, MaxHeroImageURLLength)
	product.Gallery = parseGallery(update.Gallery)
	product.UpdatedAt = s.now().UTC()

	updated, err := s.productRepository.UpdateProduct(ctx, product)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("product_id", product.ID).Msg("product update failed")
		return models.Product{}, fmt.Errorf("product update failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("product_id", updated.ID).Int("gallery", len(updated.Gallery)).Msg("product updated")
	return updated, nil
}

func (s *productService) ensureProduct(ctx context.Context) (models.Product, error) {
	product, err := s.productRepository.FindProduct(ctx)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, store.ErrProductNotFound) {
		return models.Product{}, fmt.Errorf("product lookup failed: %w", err)
	}

	v, err, _ := s.ensure.Do("product", func() (any, error) {
		// another caller may have won the race before this one joined
		if found, findErr := s.productRepository.FindProduct(ctx); findErr == nil {
			return found, nil
		}
		return s.createDefault(ctx)
	})
	if err != nil {
		return models.Product{}, err
	}

	return v.(models.Product), nil
}

func (s *productService) createDefault(ctx context.Context) (models.Product, error) {
	now := s.now().UTC()
	subtitle := defaultProductSubtitle

	created, err := s.productRepository.CreateProduct(ctx, models.Product{
		ID:          s.ids.Generate(),
		Title:       defaultProductTitle,
		Subtitle:    &subtitle,
		Description: defaultProductDescription,
		Gallery:     []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("default product creation failed")
		return models.Product{}, fmt.Errorf("default product creation failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("product_id", created.ID).Msg("default product created")
	return created, nil
}

// parseGallery keeps the trimmed non-empty strings of a JSON array, at most
// MaxGalleryItems of them. Anything else yields an empty gallery.
func parseGallery(raw json.RawMessage) []string {
	gallery := make([]string, 0)

	var items []any
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return gallery
	}

	for _, item := range items {
		if len(gallery) == MaxGalleryItems {
			break
		}
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			gallery = append(gallery, s)
		}
	}

	return gallery
}

// optionalText trims and cuts s; empty input becomes nil.
func optionalText(s *string, maximum int) *string {
	if s == nil {
		return nil
	}
	v := truncate(strings.TrimSpace(*s), maximum)
	if v == "" {
		return nil
	}
	return &v
}

func truncate(s string, maximum int) string {
	i := 0
	for pos := range s {
		if i == maximum {
			return s[:pos]
		}
		i++
	}
	return s
}
