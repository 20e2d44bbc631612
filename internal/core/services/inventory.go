// internal/core/services/inventory.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stocktrackhq/stocktrack-be/internal/core/domain"
	"github.com/stocktrackhq/stocktrack-be/internal/core/ports"
)

// InventoryService handles inventory business logic and owns the
// read-through cache in front of the item store. The cache is an
// availability optimization: a failed cache read or write degrades to the
// database and never fails the request.
type InventoryService struct {
	repo   ports.ItemRepository
	cache  ports.CacheRepository
	logger *slog.Logger
}

// Statically assert that *InventoryService implements the InventoryService interface.
var _ ports.InventoryService = (*InventoryService)(nil)

// NewInventoryService creates a new inventory service
func NewInventoryService(repo ports.ItemRepository, cache ports.CacheRepository, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("service", "inventory")),
	}
}

// List returns all inventory items through the listing cache. A non-empty
// result is cached under the listing key; an empty inventory is returned
// as-is and never cached, so the next call re-reads the store.
func (s *InventoryService) List(ctx context.Context) ([]domain.InventoryItem, error) {
	var cached []domain.InventoryItem
	err := s.cache.Get(ctx, domain.ListingCacheKey, &cached)
	if err == nil {
		s.logger.DebugContext(ctx, "listing served from cache",
			slog.Int("count", len(cached)))
		return cached, nil
	}
	if !errors.Is(err, ports.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "listing cache read failed",
			slog.String("error", err.Error()))
	}

	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}

	if len(items) == 0 {
		return []domain.InventoryItem{}, nil
	}

	if err := s.cache.Set(ctx, domain.ListingCacheKey, items, domain.CacheTTL); err != nil {
		s.logger.WarnContext(ctx, "failed to cache listing",
			slog.String("error", err.Error()))
	}

	return items, nil
}

// GetByID returns a single item through its per-item cache entry.
func (s *InventoryService) GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	key := domain.ItemCacheKey(id)

	var cached domain.InventoryItem
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, ports.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "item cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	if err := s.cache.Set(ctx, key, item, domain.CacheTTL); err != nil {
		s.logger.WarnContext(ctx, "failed to cache item",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}

	return item, nil
}

// Create validates and persists a new item. The item code is normalized to
// lowercase before the duplicate check, so codes differing only in case
// collide. The pre-check gives a friendly error for the common case; the
// store's unique index settles concurrent creates that both pass it. A
// successful create invalidates the listing entry only.
func (s *InventoryService) Create(ctx context.Context, item *domain.InventoryItem) error {
	item.PrepareForStorage()

	if err := item.Validate(); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByCode(ctx, item.ItemCode)
	if err != nil {
		return fmt.Errorf("failed to check item code: %w", err)
	}
	if exists {
		return domain.ErrDuplicateItemCode
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, domain.ListingCacheKey); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate listing cache",
			slog.String("error", err.Error()))
	}

	s.logger.InfoContext(ctx, "created inventory item",
		slog.Int64("id", item.ID),
		slog.String("item_code", item.ItemCode))

	return nil
}

// Update replaces all mutable fields of the item with the given id, then
// writes the fresh snapshot into the per-item cache entry. The listing
// entry is left untouched: until it expires, listings may serve the
// pre-update state.
func (s *InventoryService) Update(ctx context.Context, id int64, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	item.ID = id
	item.PrepareForStorage()

	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, domain.ItemCacheKey(id), item, domain.CacheTTL); err != nil {
		s.logger.WarnContext(ctx, "failed to cache updated item",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
	}

	s.logger.InfoContext(ctx, "updated inventory item",
		slog.Int64("id", id))

	return item, nil
}

// Delete removes the item with the given id and evicts its per-item cache
// entry. The listing entry is not touched and may keep serving the deleted
// item until its TTL lapses.
func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, domain.ItemCacheKey(id)); err != nil {
		s.logger.WarnContext(ctx, "failed to evict item cache entry",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
	}

	s.logger.InfoContext(ctx, "deleted inventory item",
		slog.Int64("id", id))

	return nil
}
