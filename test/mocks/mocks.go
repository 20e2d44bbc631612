// Package mocks contains generated mocks for the core ports.
//
//go:generate mockgen -destination=mock_ports.go -package=mocks github.com/stocktrackhq/stocktrack-be/internal/core/ports ItemRepository,CacheRepository,UserRepository,InventoryService,AuthService,TokenManager
package mocks
