// cmd/seeder/main.go
//
// Seeds the inventory database with items, either from a JSON file or
// generated sample data. Intended for development and demo environments.
//
// Usage:
//
//	seeder -file items.json
//	seeder -generate 50
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"github.com/stocktrackhq/stocktrack-be/internal/adapters/db"
	"github.com/stocktrackhq/stocktrack-be/internal/core/domain"
	"github.com/stocktrackhq/stocktrack-be/internal/pkg/config"
	"github.com/stocktrackhq/stocktrack-be/internal/pkg/logger"
)

type seedItem struct {
	ItemCode    string          `json:"item_code"`
	ItemName    string          `json:"item_name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

func main() {
	var (
		filePath = flag.String("file", "", "path to a JSON file with items to seed")
		generate = flag.Int("generate", 0, "number of sample items to generate")
		migrate  = flag.Bool("migrate", true, "run migrations before seeding")
	)
	flag.Parse()

	slogger := logger.SetupLogger("info", "text")

	if *filePath == "" && *generate == 0 {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -file or -generate")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	if *migrate {
		migrationConfig := &db.MigrationConfig{
			DatabaseURL: cfg.GetDatabaseURL(),
			TableName:   "schema_migrations",
			SchemaName:  "public",
		}
		if err := db.RunMigrationsWithRetry(ctx, migrationConfig, slogger, 3); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Database:       cfg.Database.Name,
		SSLMode:        cfg.Database.SSLMode,
		MaxConnections: 5,
		MinConnections: 1,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	}, slogger)
	if err != nil {
		slogger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	items, err := collectItems(*filePath, *generate)
	if err != nil {
		slogger.Error("failed to collect seed items", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo := db.NewItemRepository(database, slogger)

	seeded, skipped := 0, 0
	for i := range items {
		item := &domain.InventoryItem{
			ItemCode:    items[i].ItemCode,
			ItemName:    items[i].ItemName,
			Description: items[i].Description,
			Quantity:    items[i].Quantity,
			Price:       items[i].Price,
		}
		item.PrepareForStorage()

		if err := item.Validate(); err != nil {
			slogger.Warn("skipping invalid item",
				slog.String("item_code", item.ItemCode),
				slog.String("error", err.Error()))
			skipped++
			continue
		}

		if err := repo.Save(ctx, item); err != nil {
			// Re-running the seeder should not fail on existing codes.
			slogger.Warn("skipping item",
				slog.String("item_code", item.ItemCode),
				slog.String("error", err.Error()))
			skipped++
			continue
		}
		seeded++
	}

	slogger.Info("seeding complete",
		slog.Int("seeded", seeded),
		slog.Int("skipped", skipped))
}

func collectItems(filePath string, generate int) ([]seedItem, error) {
	var items []seedItem

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to parse seed file: %w", err)
		}
	}

	for i := 0; i < generate; i++ {
		items = append(items, seedItem{
			ItemCode:    fmt.Sprintf("sample_%04d", i+1),
			ItemName:    fmt.Sprintf("Sample Item %d", i+1),
			Description: "Generated by the seeder",
			Quantity:    (i % 20) + 1,
			Price:       decimal.NewFromInt(int64(5 + i%95)).Add(decimal.NewFromFloat(0.99)),
		})
	}

	return items, nil
}
