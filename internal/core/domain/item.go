// internal/core/domain/item.go
package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Field limits mirroring the inventory schema.
const (
	ItemNameMaxLen = 100
	ItemCodeMaxLen = 100

	// PriceMaxDigits/PriceScale bound price to NUMERIC(10,2).
	PriceMaxDigits = 10
	PriceScale     = 2
)

// itemCodePattern restricts item codes to ASCII letters, digits and underscores.
var itemCodePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// priceMax is the exclusive upper bound on |price| implied by NUMERIC(10,2):
// 8 integer digits once 2 are reserved for the fraction.
var priceMax = decimal.New(1, PriceMaxDigits-PriceScale)

// InventoryItem represents a single stocked item. ItemCode is the business
// key: unique across all items and always stored lowercase.
type InventoryItem struct {
	ID          int64           `json:"id"`
	ItemCode    string          `json:"item_code"`
	ItemName    string          `json:"item_name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NormalizeItemCode lowercases a raw item code. Normalization happens before
// both the duplicate check and persistence so that codes differing only in
// case collide.
func NormalizeItemCode(raw string) string {
	return strings.ToLower(raw)
}

// ValidItemCode reports whether raw matches the item-code character set.
// Lowercasing does not change character-class membership, so callers may
// check either the raw or the normalized form.
func ValidItemCode(raw string) bool {
	return itemCodePattern.MatchString(raw)
}

// Validate checks every field and accumulates one message per violated field.
// Returns a *ValidationError listing all violations, or nil.
func (i *InventoryItem) Validate() error {
	ve := NewValidationError()

	switch {
	case i.ItemCode == "":
		ve.Add("item_code", "item_code is required")
	case len(i.ItemCode) > ItemCodeMaxLen:
		ve.Add("item_code", fmt.Sprintf("item_code must be at most %d characters", ItemCodeMaxLen))
	case !ValidItemCode(i.ItemCode):
		ve.Add("item_code", "Item code must be alphanumeric, and can include underscores only.")
	}

	if i.ItemName == "" {
		ve.Add("item_name", "item_name is required")
	} else if len(i.ItemName) > ItemNameMaxLen {
		ve.Add("item_name", fmt.Sprintf("item_name must be at most %d characters", ItemNameMaxLen))
	}

	if i.Description == "" {
		ve.Add("description", "description is required")
	}

	if i.Quantity < 0 {
		ve.Add("quantity", "quantity cannot be negative")
	}

	if i.Price.Exponent() < -PriceScale {
		ve.Add("price", fmt.Sprintf("price cannot have more than %d decimal places", PriceScale))
	} else if i.Price.Abs().GreaterThanOrEqual(priceMax) {
		ve.Add("price", fmt.Sprintf("price cannot have more than %d digits in total", PriceMaxDigits))
	}

	return ve.OrNil()
}

// PrepareForStorage normalizes the code and stamps timestamps ahead of a
// repository write.
func (i *InventoryItem) PrepareForStorage() {
	i.ItemCode = NormalizeItemCode(i.ItemCode)

	now := time.Now()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	i.UpdatedAt = now
}
