// internal/core/ports/item_repository.go
package ports

import (
	"context"

	"github.com/stocktrackhq/stocktrack-be/internal/core/domain"
)

// ItemRepository is the persistence port for inventory items, implemented by
// the database adapter. The backing store enforces item_code uniqueness
// atomically: Save and Update return domain.ErrDuplicateItemCode when the
// unique constraint rejects a write, making the store the final arbiter for
// concurrent creates that pass the service-level pre-check.
type ItemRepository interface {
	// Save inserts a new item and fills in its assigned ID and timestamps.
	Save(ctx context.Context, item *domain.InventoryItem) error

	// Update replaces all mutable fields of an existing item.
	// Returns domain.ErrItemNotFound when no row matches.
	Update(ctx context.Context, item *domain.InventoryItem) error

	// FindByID returns (nil, nil) when no item has the given id.
	FindByID(ctx context.Context, id int64) (*domain.InventoryItem, error)

	// FindAll returns every item, ordered by id.
	FindAll(ctx context.Context) ([]domain.InventoryItem, error)

	// ExistsByCode reports whether an item with the given (already
	// normalized) code exists.
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Delete removes an item. Returns domain.ErrItemNotFound when no row
	// matches.
	Delete(ctx context.Context, id int64) error

	Count(ctx context.Context) (int64, error)
}
