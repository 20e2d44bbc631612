// internal/adapters/db/item_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stocktrackhq/stocktrack-be/internal/core/domain"
	"github.com/stocktrackhq/stocktrack-be/internal/core/ports"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

const itemColumns = "id, item_code, item_name, description, quantity, price, created_at, updated_at"

// itemRepository implements ports.ItemRepository
type itemRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewItemRepository creates a new inventory item repository
func NewItemRepository(db *Database, logger *slog.Logger) ports.ItemRepository {
	return &itemRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "inventory")),
	}
}

// Save creates a new inventory item. The unique index on item_code is the
// final arbiter for concurrent creates: a violation surfaces as
// domain.ErrDuplicateItemCode regardless of any earlier existence check.
func (r *itemRepository) Save(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (
			item_code, item_name, description, quantity, price, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		item.ItemCode, item.ItemName, item.Description,
		item.Quantity, item.Price, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateItemCode
		}
		return fmt.Errorf("failed to save inventory item: %w", err)
	}

	r.logger.DebugContext(ctx, "inventory item saved",
		slog.Int64("id", item.ID),
		slog.String("item_code", item.ItemCode))

	return nil
}

// Update replaces all mutable fields of an existing inventory item.
func (r *itemRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		UPDATE inventory_items SET
			item_code = $2, item_name = $3, description = $4,
			quantity = $5, price = $6, updated_at = $7
		WHERE id = $1
		RETURNING created_at, updated_at`

	item.UpdatedAt = time.Now().UTC()

	err := r.db.QueryRow(ctx, query,
		item.ID, item.ItemCode, item.ItemName, item.Description,
		item.Quantity, item.Price, item.UpdatedAt,
	).Scan(&item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrItemNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicateItemCode
		}
		return fmt.Errorf("failed to update inventory item: %w", err)
	}

	r.logger.DebugContext(ctx, "inventory item updated",
		slog.Int64("id", item.ID))

	return nil
}

// FindByID retrieves an inventory item by ID
func (r *itemRepository) FindByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE id = $1`

	item := &domain.InventoryItem{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.ItemCode, &item.ItemName, &item.Description,
		&item.Quantity, &item.Price, &item.CreatedAt, &item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}

	return item, nil
}

// FindAll retrieves all inventory items ordered by id
func (r *itemRepository) FindAll(ctx context.Context) ([]domain.InventoryItem, error) {
	qb := squirrel.Select(
		"id", "item_code", "item_name", "description",
		"quantity", "price", "created_at", "updated_at",
	).From("inventory_items").
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		item := domain.InventoryItem{}
		err := rows.Scan(
			&item.ID, &item.ItemCode, &item.ItemName, &item.Description,
			&item.Quantity, &item.Price, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// ExistsByCode checks whether an item with the given code exists
func (r *itemRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM inventory_items WHERE item_code = $1)`

	var exists bool
	err := r.db.QueryRow(ctx, query, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}

	return exists, nil
}

// Delete performs a hard delete
func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM inventory_items WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}

	r.logger.InfoContext(ctx, "inventory item deleted",
		slog.Int64("id", id))

	return nil
}

// Count returns the total number of inventory items
func (r *itemRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM inventory_items`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count inventory items: %w", err)
	}

	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
