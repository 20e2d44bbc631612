// internal/core/domain/item_test.go
package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktrackhq/stocktrack-be/internal/core/domain"
)

func validItem() *domain.InventoryItem {
	return &domain.InventoryItem{
		ItemCode:    "WIDGET_01",
		ItemName:    "Widget",
		Description: "A standard widget",
		Quantity:    3,
		Price:       decimal.RequireFromString("19.99"),
	}
}

func TestNormalizeItemCode(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "uppercase_is_lowered", raw: "ITEM789", expected: "item789"},
		{name: "mixed_case_is_lowered", raw: "Item_Code_1", expected: "item_code_1"},
		{name: "lowercase_unchanged", raw: "item123", expected: "item123"},
		{name: "empty_unchanged", raw: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.NormalizeItemCode(tt.raw))
		})
	}
}

func TestValidItemCode(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{name: "alphanumeric", raw: "item123", valid: true},
		{name: "with_underscore", raw: "item_123", valid: true},
		{name: "uppercase", raw: "ITEM123", valid: true},
		{name: "hyphen_rejected", raw: "item-123", valid: false},
		{name: "space_rejected", raw: "item 123", valid: false},
		{name: "unicode_rejected", raw: "ítem", valid: false},
		{name: "empty_rejected", raw: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, domain.ValidItemCode(tt.raw))
		})
	}
}

func TestInventoryItem_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*domain.InventoryItem)
		wantFields    []string
		wantNoError   bool
	}{
		{
			name:        "valid_item_passes",
			mutate:      func(i *domain.InventoryItem) {},
			wantNoError: true,
		},
		{
			name:        "uppercase_code_passes_format_check",
			mutate:      func(i *domain.InventoryItem) { i.ItemCode = "WIDGET99" },
			wantNoError: true,
		},
		{
			name:       "missing_code",
			mutate:     func(i *domain.InventoryItem) { i.ItemCode = "" },
			wantFields: []string{"item_code"},
		},
		{
			name:       "bad_code_format",
			mutate:     func(i *domain.InventoryItem) { i.ItemCode = "widget-99" },
			wantFields: []string{"item_code"},
		},
		{
			name:       "missing_name",
			mutate:     func(i *domain.InventoryItem) { i.ItemName = "" },
			wantFields: []string{"item_name"},
		},
		{
			name:       "missing_description",
			mutate:     func(i *domain.InventoryItem) { i.Description = "" },
			wantFields: []string{"description"},
		},
		{
			name:       "negative_quantity",
			mutate:     func(i *domain.InventoryItem) { i.Quantity = -1 },
			wantFields: []string{"quantity"},
		},
		{
			name:        "zero_quantity_allowed",
			mutate:      func(i *domain.InventoryItem) { i.Quantity = 0 },
			wantNoError: true,
		},
		{
			name:       "price_too_many_decimal_places",
			mutate:     func(i *domain.InventoryItem) { i.Price = decimal.RequireFromString("1.999") },
			wantFields: []string{"price"},
		},
		{
			name:       "price_too_many_digits",
			mutate:     func(i *domain.InventoryItem) { i.Price = decimal.RequireFromString("100000000.00") },
			wantFields: []string{"price"},
		},
		{
			name:        "price_at_upper_bound",
			mutate:      func(i *domain.InventoryItem) { i.Price = decimal.RequireFromString("99999999.99") },
			wantNoError: true,
		},
		{
			name: "all_violations_reported_together",
			mutate: func(i *domain.InventoryItem) {
				i.ItemCode = "bad code"
				i.ItemName = ""
				i.Description = ""
				i.Quantity = -5
			},
			wantFields: []string{"item_code", "item_name", "description", "quantity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.mutate(item)

			err := item.Validate()
			if tt.wantNoError {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Len(t, ve.Fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, ve.Fields, f)
			}
		})
	}
}

func TestInventoryItem_PrepareForStorage(t *testing.T) {
	item := validItem()
	item.ItemCode = "Widget_MIXED"

	item.PrepareForStorage()

	assert.Equal(t, "widget_mixed", item.ItemCode)
	assert.False(t, item.CreatedAt.IsZero())
	assert.False(t, item.UpdatedAt.IsZero())

	// A second write keeps the original creation time.
	created := item.CreatedAt
	item.PrepareForStorage()
	assert.Equal(t, created, item.CreatedAt)
}

func TestItemCacheKey(t *testing.T) {
	assert.Equal(t, "inventory_item_42", domain.ItemCacheKey(42))
	assert.Equal(t, "inventory_item_1", domain.ItemCacheKey(1))
	assert.Equal(t, "all_inventory_items", domain.ListingCacheKey)
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		password   string
		wantFields []string
	}{
		{name: "valid", username: "alice_01", password: "s3cret-pass"},
		{name: "missing_username", username: "", password: "s3cret-pass", wantFields: []string{"username"}},
		{name: "bad_username_chars", username: "alice!", password: "s3cret-pass", wantFields: []string{"username"}},
		{name: "short_password", username: "alice", password: "short", wantFields: []string{"password"}},
		{name: "both_invalid", username: "", password: "", wantFields: []string{"username", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateCredentials(tt.username, tt.password)
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			for _, f := range tt.wantFields {
				assert.Contains(t, ve.Fields, f)
			}
		})
	}
}
