// internal/handlers/inventory.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/stocktrackhq/stocktrack-be/internal/core/domain"
	"github.com/stocktrackhq/stocktrack-be/internal/core/ports"
)

// InventoryHandler handles inventory-related HTTP requests
type InventoryHandler struct {
	service ports.InventoryService
	logger  *slog.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service ports.InventoryService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "inventory")),
	}
}

// ListItems handles GET /api/v1/items
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list inventory items",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to list inventory items")
		return
	}

	if len(items) == 0 {
		respondJSON(w, h.logger, http.StatusOK, map[string]string{"message": "No items found"})
		return
	}

	respondJSON(w, h.logger, http.StatusOK, items)
}

// GetItem handles GET /api/v1/items/{id}
func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	item, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get inventory item",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, item)
}

// CreateItem handles POST /api/v1/items
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	item := req.ToDomain()

	if err := h.service.Create(ctx, item); err != nil {
		h.logger.ErrorContext(ctx, "failed to create inventory item",
			slog.String("item_code", item.ItemCode),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "inventory item created",
		slog.Int64("id", item.ID),
		slog.String("item_code", item.ItemCode))

	respondJSON(w, h.logger, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/v1/items/{id}
func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(ctx, id, req.ToDomain())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update inventory item",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "inventory item updated",
		slog.Int64("id", id))

	respondJSON(w, h.logger, http.StatusOK, updated)
}

// DeleteItem handles DELETE /api/v1/items/{id}
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete inventory item",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "inventory item deleted",
		slog.Int64("id", id))

	respondJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Item deleted Successfully"})
}

func (h *InventoryHandler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid item ID format")
		return 0, false
	}
	return id, true
}

// ItemRequest represents the request body for creating or updating an item.
// All semantic validation lives in the domain; the handler only decodes.
type ItemRequest struct {
	ItemCode    string          `json:"item_code"`
	ItemName    string          `json:"item_name"`
	Description string          `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// ToDomain converts the request to a domain model
func (r *ItemRequest) ToDomain() *domain.InventoryItem {
	return &domain.InventoryItem{
		ItemCode:    r.ItemCode,
		ItemName:    r.ItemName,
		Description: r.Description,
		Quantity:    r.Quantity,
		Price:       r.Price,
	}
}
