// internal/core/services/inventory_service_test.go
package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stocktrackhq/stocktrack-be/internal/core/domain"
	"github.com/stocktrackhq/stocktrack-be/internal/core/ports"
	"github.com/stocktrackhq/stocktrack-be/internal/core/services"
	"github.com/stocktrackhq/stocktrack-be/test/helpers"
	"github.com/stocktrackhq/stocktrack-be/test/mocks"
)

func newServiceUnderTest(t *testing.T) (*services.InventoryService, *mocks.MockItemRepository, *mocks.MockCacheRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockItemRepository(ctrl)
	mockCache := mocks.NewMockCacheRepository(ctrl)
	svc := services.NewInventoryService(mockRepo, mockCache, helpers.TestLogger())
	return svc, mockRepo, mockCache
}

func TestInventoryService_List(t *testing.T) {
	items := helpers.CreateTestInventoryItems(3)

	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockItemRepository, *mocks.MockCacheRepository)
		expectedCount int
		expectedError bool
	}{
		{
			name: "cache_miss_reads_store_and_caches_result",
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				cache.EXPECT().
					Get(gomock.Any(), domain.ListingCacheKey, gomock.Any()).
					Return(ports.ErrCacheMiss)
				repo.EXPECT().
					FindAll(gomock.Any()).
					Return(items, nil)
				cache.EXPECT().
					Set(gomock.Any(), domain.ListingCacheKey, items, domain.CacheTTL).
					Return(nil)
			},
			expectedCount: 3,
		},
		{
			name: "cache_hit_skips_store",
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				cache.EXPECT().
					Get(gomock.Any(), domain.ListingCacheKey, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, dest interface{}) error {
						*dest.(*[]domain.InventoryItem) = items
						return nil
					})
				// No FindAll expectation: a hit must not touch the repository.
			},
			expectedCount: 3,
		},
		{
			name: "empty_result_is_returned_but_never_cached",
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				cache.EXPECT().
					Get(gomock.Any(), domain.ListingCacheKey, gomock.Any()).
					Return(ports.ErrCacheMiss)
				repo.EXPECT().
					FindAll(gomock.Any()).
					Return(nil, nil)
				// No Set expectation: empty listings bypass the cache.
			},
			expectedCount: 0,
		},
		{
			name: "cache_write_failure_does_not_fail_listing",
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				cache.EXPECT().
					Get(gomock.Any(), domain.ListingCacheKey, gomock.Any()).
					Return(ports.ErrCacheMiss)
				repo.EXPECT().
					FindAll(gomock.Any()).
					Return(items, nil)
				cache.EXPECT().
					Set(gomock.Any(), domain.ListingCacheKey, items, domain.CacheTTL).
					Return(errors.New("redis down"))
			},
			expectedCount: 3,
		},
		{
			name: "store_error_propagates",
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				cache.EXPECT().
					Get(gomock.Any(), domain.ListingCacheKey, gomock.Any()).
					Return(ports.ErrCacheMiss)
				repo.EXPECT().
					FindAll(gomock.Any()).
					Return(nil, errors.New("database connection failed"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newServiceUnderTest(t)
			tt.setupMocks(mockRepo, mockCache)

			got, err := svc.List(context.Background())

			if tt.expectedError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.expectedCount)
		})
	}
}

// Two consecutive listings with a warm cache hit the store exactly once.
func TestInventoryService_List_SecondCallServedFromCache(t *testing.T) {
	svc, mockRepo, mockCache := newServiceUnderTest(t)
	items := helpers.CreateTestInventoryItems(2)

	var cached []domain.InventoryItem
	populated := false

	mockCache.EXPECT().
		Get(gomock.Any(), domain.ListingCacheKey, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, dest interface{}) error {
			if !populated {
				return ports.ErrCacheMiss
			}
			*dest.(*[]domain.InventoryItem) = cached
			return nil
		}).
		Times(2)
	mockRepo.EXPECT().
		FindAll(gomock.Any()).
		Return(items, nil).
		Times(1)
	mockCache.EXPECT().
		Set(gomock.Any(), domain.ListingCacheKey, items, domain.CacheTTL).
		DoAndReturn(func(_ context.Context, _ string, value interface{}, _ time.Duration) error {
			cached = value.([]domain.InventoryItem)
			populated = true
			return nil
		})

	first, err := svc.List(context.Background())
	require.NoError(t, err)

	second, err := svc.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestInventoryService_GetByID(t *testing.T) {
	item := helpers.CreateTestInventoryItem()

	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockItemRepository, *mocks.MockCacheRepository)
		expectedError error
	}{
		{
			name: "cache_miss_reads_store_and_populates_entry",
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				cache.EXPECT().
					Get(gomock.Any(), domain.ItemCacheKey(item.ID), gomock.Any()).
					Return(ports.ErrCacheMiss)
				repo.EXPECT().
					FindByID(gomock.Any(), item.ID).
					Return(item, nil)
				cache.EXPECT().
					Set(gomock.Any(), domain.ItemCacheKey(item.ID), item, domain.CacheTTL).
					Return(nil)
			},
		},
		{
			name: "cache_hit_skips_store",
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				cache.EXPECT().
					Get(gomock.Any(), domain.ItemCacheKey(item.ID), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, dest interface{}) error {
						*dest.(*domain.InventoryItem) = *item
						return nil
					})
			},
		},
		{
			name: "absent_id_yields_not_found",
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				cache.EXPECT().
					Get(gomock.Any(), domain.ItemCacheKey(item.ID), gomock.Any()).
					Return(ports.ErrCacheMiss)
				repo.EXPECT().
					FindByID(gomock.Any(), item.ID).
					Return(nil, nil)
				// Absence is not cached.
			},
			expectedError: domain.ErrItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newServiceUnderTest(t)
			tt.setupMocks(mockRepo, mockCache)

			got, err := svc.GetByID(context.Background(), item.ID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			helpers.CompareInventoryItems(t, item, got)
		})
	}
}

func TestInventoryService_Create(t *testing.T) {
	tests := []struct {
		name          string
		item          *domain.InventoryItem
		setupMocks    func(*mocks.MockItemRepository, *mocks.MockCacheRepository)
		expectedError error
		wantFieldErr  string
	}{
		{
			name: "successful_create_invalidates_listing_cache",
			item: helpers.CreateTestInventoryItem(),
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					ExistsByCode(gomock.Any(), "widget_001").
					Return(false, nil)
				repo.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Return(nil)
				cache.EXPECT().
					Invalidate(gomock.Any(), domain.ListingCacheKey).
					Return(nil)
			},
		},
		{
			name: "item_code_is_lowercased_before_duplicate_check_and_save",
			item: helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
				i.ItemCode = "WIDGET_XL"
			}),
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					ExistsByCode(gomock.Any(), "widget_xl").
					Return(false, nil)
				repo.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, item *domain.InventoryItem) error {
						assert.Equal(t, "widget_xl", item.ItemCode)
						return nil
					})
				cache.EXPECT().
					Invalidate(gomock.Any(), domain.ListingCacheKey).
					Return(nil)
			},
		},
		{
			name: "duplicate_code_rejected_by_pre_check",
			item: helpers.CreateTestInventoryItem(),
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					ExistsByCode(gomock.Any(), "widget_001").
					Return(true, nil)
			},
			expectedError: domain.ErrDuplicateItemCode,
		},
		{
			name: "concurrent_duplicate_surfaces_store_constraint",
			item: helpers.CreateTestInventoryItem(),
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					ExistsByCode(gomock.Any(), "widget_001").
					Return(false, nil)
				repo.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Return(domain.ErrDuplicateItemCode)
			},
			expectedError: domain.ErrDuplicateItemCode,
		},
		{
			name: "validation_fails_for_empty_item_code",
			item: helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
				i.ItemCode = ""
			}),
			setupMocks:   func(*mocks.MockItemRepository, *mocks.MockCacheRepository) {},
			wantFieldErr: "item_code",
		},
		{
			name: "validation_fails_for_negative_quantity",
			item: helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
				i.Quantity = -1
			}),
			setupMocks:   func(*mocks.MockItemRepository, *mocks.MockCacheRepository) {},
			wantFieldErr: "quantity",
		},
		{
			name: "validation_fails_for_price_exceeding_precision",
			item: helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
				i.Price = decimal.RequireFromString("100000000.00")
			}),
			setupMocks:   func(*mocks.MockItemRepository, *mocks.MockCacheRepository) {},
			wantFieldErr: "price",
		},
		{
			name: "cache_invalidation_failure_does_not_fail_create",
			item: helpers.CreateTestInventoryItem(),
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					ExistsByCode(gomock.Any(), "widget_001").
					Return(false, nil)
				repo.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Return(nil)
				cache.EXPECT().
					Invalidate(gomock.Any(), domain.ListingCacheKey).
					Return(errors.New("redis down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newServiceUnderTest(t)
			tt.setupMocks(mockRepo, mockCache)

			err := svc.Create(context.Background(), tt.item)

			if tt.wantFieldErr != "" {
				var vErr *domain.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Contains(t, vErr.Fields, tt.wantFieldErr)
				return
			}
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestInventoryService_Update(t *testing.T) {
	tests := []struct {
		name          string
		id            int64
		item          *domain.InventoryItem
		setupMocks    func(*mocks.MockItemRepository, *mocks.MockCacheRepository)
		expectedError error
	}{
		{
			name: "successful_update_populates_item_cache_entry",
			id:   1,
			item: helpers.CreateTestInventoryItem(),
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any()).
					Return(nil)
				cache.EXPECT().
					Set(gomock.Any(), domain.ItemCacheKey(1), gomock.Any(), domain.CacheTTL).
					Return(nil)
			},
		},
		{
			name: "absent_id_yields_not_found",
			id:   99,
			item: helpers.CreateTestInventoryItem(),
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any()).
					Return(domain.ErrItemNotFound)
			},
			expectedError: domain.ErrItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newServiceUnderTest(t)
			tt.setupMocks(mockRepo, mockCache)

			got, err := svc.Update(context.Background(), tt.id, tt.item)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, got.ID)
		})
	}
}

// An update refreshes only the per-item entry. The listing key is not
// invalidated, so a previously cached listing keeps serving the old state
// until its TTL lapses.
func TestInventoryService_Update_LeavesListingCacheStale(t *testing.T) {
	svc, mockRepo, mockCache := newServiceUnderTest(t)

	staleListing := helpers.CreateTestInventoryItems(1)
	updated := helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
		i.Quantity = 999
	})

	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Return(nil)
	// Only the per-item key is written. Any Invalidate or listing-key Set
	// would fail the controller.
	mockCache.EXPECT().
		Set(gomock.Any(), domain.ItemCacheKey(1), gomock.Any(), domain.CacheTTL).
		Return(nil)
	mockCache.EXPECT().
		Get(gomock.Any(), domain.ListingCacheKey, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, dest interface{}) error {
			*dest.(*[]domain.InventoryItem) = staleListing
			return nil
		})

	_, err := svc.Update(context.Background(), 1, updated)
	require.NoError(t, err)

	listing, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.NotEqual(t, updated.Quantity, listing[0].Quantity,
		"listing should still serve the pre-update snapshot")
}

func TestInventoryService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		id            int64
		setupMocks    func(*mocks.MockItemRepository, *mocks.MockCacheRepository)
		expectedError error
	}{
		{
			name: "successful_delete_evicts_item_entry_only",
			id:   1,
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					Delete(gomock.Any(), int64(1)).
					Return(nil)
				// The listing key is deliberately left alone.
				cache.EXPECT().
					Invalidate(gomock.Any(), domain.ItemCacheKey(1)).
					Return(nil)
			},
		},
		{
			name: "absent_id_yields_not_found_and_no_cache_write",
			id:   42,
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					Delete(gomock.Any(), int64(42)).
					Return(domain.ErrItemNotFound)
			},
			expectedError: domain.ErrItemNotFound,
		},
		{
			name: "cache_eviction_failure_does_not_fail_delete",
			id:   1,
			setupMocks: func(repo *mocks.MockItemRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					Delete(gomock.Any(), int64(1)).
					Return(nil)
				cache.EXPECT().
					Invalidate(gomock.Any(), domain.ItemCacheKey(1)).
					Return(errors.New("redis down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newServiceUnderTest(t)
			tt.setupMocks(mockRepo, mockCache)

			err := svc.Delete(context.Background(), tt.id)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
		})
	}
}
