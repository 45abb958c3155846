package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	itemRepo repository.ItemRepository
	logger   zerolog.Logger
}

// NewCatalogService creates a new catalogue service.
func NewCatalogService(itemRepo repository.ItemRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		itemRepo: itemRepo,
		logger:   logger.With().Str("service", "catalog").Logger(),
	}
}

// GetAll retrieves all items with pagination.
func (s *catalogService) GetAll(ctx context.Context, limit, offset int) ([]model.Item, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.itemRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get items")
		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	s.logger.Debug().
		Int("count", len(items)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("items retrieved")

	return items, nil
}

// GetBySlug retrieves a single item by slug.
func (s *catalogService) GetBySlug(ctx context.Context, slug string) (*model.Item, error) {
	item, err := s.itemRepo.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", slug).Msg("failed to get item")
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if item == nil {
		s.logger.Debug().Str("slug", slug).Msg("item not found")
		return nil, model.ErrItemNotFound
	}

	return item, nil
}
