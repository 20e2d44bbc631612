// internal/handlers/inventory_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stocktrackhq/stocktrack-be/internal/core/domain"
	"github.com/stocktrackhq/stocktrack-be/internal/handlers"
	"github.com/stocktrackhq/stocktrack-be/test/helpers"
	"github.com/stocktrackhq/stocktrack-be/test/mocks"
)

func setupInventoryHandler(t *testing.T) (*handlers.InventoryHandler, *mocks.MockInventoryService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	service := mocks.NewMockInventoryService(ctrl)
	return handlers.NewInventoryHandler(service, helpers.TestLogger()), service
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestInventoryHandler_ListItems(t *testing.T) {
	t.Run("returns_items", func(t *testing.T) {
		handler, service := setupInventoryHandler(t)

		items := helpers.CreateTestInventoryItems(3)
		service.EXPECT().List(gomock.Any()).Return(items, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
		rec := httptest.NewRecorder()
		handler.ListItems(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got []domain.InventoryItem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Len(t, got, 3)
	})

	t.Run("empty_store_returns_message_not_empty_array", func(t *testing.T) {
		handler, service := setupInventoryHandler(t)

		service.EXPECT().List(gomock.Any()).Return([]domain.InventoryItem{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
		rec := httptest.NewRecorder()
		handler.ListItems(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "No items found", body["message"])
	})

	t.Run("service_error_returns_500", func(t *testing.T) {
		handler, service := setupInventoryHandler(t)

		service.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection refused"))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
		rec := httptest.NewRecorder()
		handler.ListItems(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestInventoryHandler_GetItem(t *testing.T) {
	tests := []struct {
		name       string
		pathID     string
		setup      func(service *mocks.MockInventoryService)
		wantStatus int
		wantError  string
	}{
		{
			name:   "found",
			pathID: "1",
			setup: func(service *mocks.MockInventoryService) {
				service.EXPECT().GetByID(gomock.Any(), int64(1)).
					Return(helpers.CreateTestInventoryItem(), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "missing_item_returns_404",
			pathID: "42",
			setup: func(service *mocks.MockInventoryService) {
				service.EXPECT().GetByID(gomock.Any(), int64(42)).
					Return(nil, domain.ErrItemNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantError:  "Item not found",
		},
		{
			name:       "non_numeric_id_returns_400",
			pathID:     "abc",
			setup:      func(service *mocks.MockInventoryService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid item ID format",
		},
		{
			name:       "zero_id_returns_400",
			pathID:     "0",
			setup:      func(service *mocks.MockInventoryService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid item ID format",
		},
		{
			name:       "negative_id_returns_400",
			pathID:     "-5",
			setup:      func(service *mocks.MockInventoryService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid item ID format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := setupInventoryHandler(t)
			tt.setup(service)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/items/"+tt.pathID, nil)
			req.SetPathValue("id", tt.pathID)
			rec := httptest.NewRecorder()
			handler.GetItem(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				body := decodeBody(t, rec)
				assert.Equal(t, tt.wantError, body["error"])
			}
		})
	}
}

func TestInventoryHandler_CreateItem(t *testing.T) {
	t.Run("creates_item", func(t *testing.T) {
		handler, service := setupInventoryHandler(t)

		service.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, item *domain.InventoryItem) error {
				assert.Equal(t, "widget_001", item.ItemCode)
				assert.True(t, item.Price.Equal(decimal.RequireFromString("19.99")))
				item.ID = 1
				return nil
			})

		payload := `{"item_code":"widget_001","item_name":"Widget","quantity":5,"price":"19.99"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		handler.CreateItem(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var got domain.InventoryItem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int64(1), got.ID)
	})

	t.Run("duplicate_code_returns_409", func(t *testing.T) {
		handler, service := setupInventoryHandler(t)

		service.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(domain.ErrDuplicateItemCode)

		payload := `{"item_code":"widget_001","item_name":"Widget","quantity":5,"price":"19.99"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		handler.CreateItem(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Item already exists", body["error"])
	})

	t.Run("validation_failure_returns_field_errors", func(t *testing.T) {
		handler, service := setupInventoryHandler(t)

		ve := domain.NewValidationError()
		ve.Add("item_code", "item code is required")
		ve.Add("quantity", "quantity must not be negative")
		service.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ve)

		payload := `{"item_name":"Widget","quantity":-1,"price":"19.99"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		handler.CreateItem(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		fields, ok := body["errors"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, fields, "item_code")
		assert.Contains(t, fields, "quantity")
	})

	t.Run("malformed_json_returns_400", func(t *testing.T) {
		handler, _ := setupInventoryHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		handler.CreateItem(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestInventoryHandler_UpdateItem(t *testing.T) {
	t.Run("updates_item", func(t *testing.T) {
		handler, service := setupInventoryHandler(t)

		updated := helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
			i.Quantity = 10
		})
		service.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).
			Return(updated, nil)

		payload := `{"item_code":"widget_001","item_name":"Widget","quantity":10,"price":"19.99"}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/items/1", bytes.NewBufferString(payload))
		req.SetPathValue("id", "1")
		rec := httptest.NewRecorder()
		handler.UpdateItem(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got domain.InventoryItem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 10, got.Quantity)
	})

	t.Run("missing_item_returns_404", func(t *testing.T) {
		handler, service := setupInventoryHandler(t)

		service.EXPECT().Update(gomock.Any(), int64(42), gomock.Any()).
			Return(nil, domain.ErrItemNotFound)

		payload := `{"item_code":"widget_001","item_name":"Widget","quantity":1,"price":"9.99"}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/items/42", bytes.NewBufferString(payload))
		req.SetPathValue("id", "42")
		rec := httptest.NewRecorder()
		handler.UpdateItem(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("code_collision_returns_409", func(t *testing.T) {
		handler, service := setupInventoryHandler(t)

		service.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).
			Return(nil, domain.ErrDuplicateItemCode)

		payload := `{"item_code":"taken_code","item_name":"Widget","quantity":1,"price":"9.99"}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/items/1", bytes.NewBufferString(payload))
		req.SetPathValue("id", "1")
		rec := httptest.NewRecorder()
		handler.UpdateItem(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestInventoryHandler_DeleteItem(t *testing.T) {
	t.Run("deletes_item", func(t *testing.T) {
		handler, service := setupInventoryHandler(t)

		service.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/items/1", nil)
		req.SetPathValue("id", "1")
		rec := httptest.NewRecorder()
		handler.DeleteItem(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Item deleted Successfully", body["message"])
	})

	t.Run("missing_item_returns_404", func(t *testing.T) {
		handler, service := setupInventoryHandler(t)

		service.EXPECT().Delete(gomock.Any(), int64(42)).Return(domain.ErrItemNotFound)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/items/42", nil)
		req.SetPathValue("id", "42")
		rec := httptest.NewRecorder()
		handler.DeleteItem(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
