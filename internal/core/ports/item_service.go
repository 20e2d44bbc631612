// internal/core/ports/item_service.go
package ports

import (
	"context"

	"github.com/stocktrackhq/stocktrack-be/internal/core/domain"
)

// InventoryService is the application service port for the item lifecycle,
// implemented by services.InventoryService and consumed by the HTTP layer.
type InventoryService interface {
	// List returns all items. An empty inventory yields an empty slice, never
	// an error.
	List(ctx context.Context) ([]domain.InventoryItem, error)

	// GetByID returns domain.ErrItemNotFound when the id does not exist.
	GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error)

	// Create validates, normalizes the item code and persists a new item.
	// Fails with *domain.ValidationError or domain.ErrDuplicateItemCode.
	Create(ctx context.Context, item *domain.InventoryItem) error

	// Update replaces all mutable fields of the item with the given id.
	Update(ctx context.Context, id int64, item *domain.InventoryItem) (*domain.InventoryItem, error)

	// Delete removes the item with the given id.
	Delete(ctx context.Context, id int64) error
}
