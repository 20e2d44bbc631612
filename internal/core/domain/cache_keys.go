// internal/core/domain/cache_keys.go
package domain

import (
	"strconv"
	"time"
)

// Cache keys live in the domain so they cannot drift between the service and
// its tests. Both entries are independent: evicting one never touches the
// other.
const (
	// ListingCacheKey holds the serialized full item listing.
	ListingCacheKey = "all_inventory_items"

	// CacheTTL bounds every inventory cache entry. Expiry is lazy; there is
	// no background eviction.
	CacheTTL = 300 * time.Second
)

// ItemCacheKey returns the per-item snapshot key for id, e.g.
// "inventory_item_42".
func ItemCacheKey(id int64) string {
	return "inventory_item_" + strconv.FormatInt(id, 10)
}
