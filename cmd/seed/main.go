// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"storefront/internal/core/id"
	"storefront/internal/domain/aggregate"
	"storefront/internal/domain/association"
	"storefront/internal/domain/relations"
	"storefront/internal/fixtures"
	"storefront/internal/infrastructure/storage/postgres"
	"storefront/internal/infrastructure/storage/postgres/aggregate_repo"
	"storefront/internal/infrastructure/storage/postgres/association_repo"
	"storefront/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
		Service:     "storefront-seed",
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	// Connect to database
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	poolCfg.ApplicationName = "storefront-seed"
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	ds, err := fixtures.Demo(fixtures.DefaultCost)
	if err != nil {
		log.Fatalw("failed to build demo data", "error", err)
	}

	txManager := postgres.NewTxManager(pool).WithStatementTimeout(time.Minute)
	aggregates := aggregate_repo.NewSet(txManager)
	registry := relations.NewRegistry(aggregates.Lookups(), association_repo.Factory(txManager), txManager, association.RevalidateBoth)

	// Everything lands in one transaction: a failed link leaves no half-seeded data.
	var links []association.Record
	err = txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		remap, err := seedAggregates(ctx, aggregates, ds)
		if err != nil {
			return err
		}
		links, err = fixtures.ApplyLinks(ctx, registry, ds.Links, remap)
		return err
	})
	if err != nil {
		log.Fatalw("failed to seed demo data", "error", err)
	}

	log.Infow("seeding completed successfully",
		"users", len(ds.Users),
		"products", len(ds.Products),
		"orders", len(ds.Orders),
		"associations", len(links),
	)
}

// seedAggregates inserts every aggregate and returns the data set to
// database id mapping. References between aggregates are rewritten first.
func seedAggregates(ctx context.Context, set *aggregate_repo.Set, ds fixtures.Dataset) (fixtures.Remap, error) {
	remap := fixtures.Remap{}

	if err := insertAll(ctx, set.Users, ds.Users, func(v aggregate.User) id.ID { return v.ID }, remap); err != nil {
		return nil, err
	}

	carts := make([]aggregate.Cart, len(ds.Carts))
	for i, c := range ds.Carts {
		c.UserID = remap.Resolve(aggregate.KindUser, c.UserID)
		carts[i] = c
	}
	if err := insertAll(ctx, set.Carts, carts, func(v aggregate.Cart) id.ID { return v.ID }, remap); err != nil {
		return nil, err
	}

	if err := insertAll(ctx, set.Items, ds.Items, func(v aggregate.Item) id.ID { return v.ID }, remap); err != nil {
		return nil, err
	}
	if err := insertAll(ctx, set.Products, ds.Products, func(v aggregate.Product) id.ID { return v.ID }, remap); err != nil {
		return nil, err
	}
	if err := insertAll(ctx, set.Categories, ds.Categories, func(v aggregate.Category) id.ID { return v.ID }, remap); err != nil {
		return nil, err
	}
	if err := insertAll(ctx, set.Inventories, ds.Inventories, func(v aggregate.Inventory) id.ID { return v.ID }, remap); err != nil {
		return nil, err
	}

	orders := make([]aggregate.Order, len(ds.Orders))
	for i, o := range ds.Orders {
		o.UserID = remap.Resolve(aggregate.KindUser, o.UserID)
		orders[i] = o
	}
	if err := insertAll(ctx, set.Orders, orders, func(v aggregate.Order) id.ID { return v.ID }, remap); err != nil {
		return nil, err
	}

	if err := insertAll(ctx, set.Payments, ds.Payments, func(v aggregate.Payment) id.ID { return v.ID }, remap); err != nil {
		return nil, err
	}

	return remap, nil
}

func insertAll[T any](
	ctx context.Context,
	repo *aggregate_repo.Repo[T],
	rows []T,
	localID func(T) id.ID,
	remap fixtures.Remap,
) error {
	for _, row := range rows {
		stored, err := repo.Insert(ctx, row)
		if err != nil {
			return err
		}
		remap.Set(repo.Kind(), localID(row), stored)
		logger.Debug(ctx, "aggregate seeded", "kind", repo.Kind(), "local_id", localID(row), "id", stored)
	}
	return nil
}
