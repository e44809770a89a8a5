package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/assoumso/au-djassa/internal/seed"
	"github.com/assoumso/au-djassa/pkg/config"
	"github.com/assoumso/au-djassa/pkg/docstore"
	pkgerrors "github.com/assoumso/au-djassa/pkg/errors"
	"github.com/assoumso/au-djassa/pkg/logger"
)

// Writes the demo datasets into the remote document store under their fixed
// ids. Safe to re-run; existing documents are overwritten in place.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	client, err := docstore.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "document store unreachable", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logg.Error(ctx, "error closing document store", err)
		}
	}()

	write := func(collection, id string, doc any) {
		if err := client.Set(ctx, collection, id, doc); err != nil {
			if pkgerrors.IsPermissionDenied(err) {
				logg.Warn(logg.WithCollection(ctx, collection), "store denied the write, the marketplace will run on local data")
				os.Exit(0)
			}
			logg.Error(logg.WithCollection(ctx, collection), "failed to write seed document", err)
			os.Exit(1)
		}
	}

	for _, s := range seed.Suppliers() {
		write(docstore.CollectionSuppliers, s.ID, s)
	}
	for _, p := range seed.Products() {
		write(docstore.CollectionProducts, p.ID, p)
	}
	for _, o := range seed.Orders() {
		write(docstore.CollectionOrders, o.ID, o)
	}

	logg.Info(ctx, "seed datasets written")
}
