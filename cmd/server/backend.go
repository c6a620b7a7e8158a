package main

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/core/tx"
	"storefront/internal/domain/aggregate"
	"storefront/internal/domain/ledger"
	"storefront/internal/domain/relations"
	"storefront/internal/fixtures"
	"storefront/internal/infrastructure/http/v1/handlers"
	"storefront/internal/infrastructure/storage/memory"
	"storefront/internal/infrastructure/storage/postgres"
	"storefront/internal/infrastructure/storage/postgres/aggregate_repo"
	"storefront/internal/infrastructure/storage/postgres/association_repo"
	"storefront/internal/infrastructure/storage/postgres/ledger_repo"
)

// backend bundles the ports one storage flavour provides.
type backend struct {
	lookups    relations.Lookups
	repos      relations.RepoFactory
	stores     map[aggregate.Kind]aggregate.Store
	ledgerRepo ledger.Repository
	txManager  tx.Manager

	pinger    handlers.Pinger
	poolStats func() postgres.PoolStats

	// afterWire runs once the registry exists.
	afterWire func(ctx context.Context, reg *relations.Registry) error
	close     func()
}

func (b *backend) Close() {
	if b.close != nil {
		b.close()
	}
}

type postgresSettings struct {
	DSN              string
	MaxConns         int32
	StatementTimeout time.Duration
}

func newPostgresBackend(ctx context.Context, s postgresSettings) (*backend, error) {
	poolCfg := postgres.DefaultPoolConfig(s.DSN)
	if s.MaxConns > 0 {
		poolCfg.MaxConns = s.MaxConns
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	txManager := postgres.NewTxManager(pool).WithStatementTimeout(s.StatementTimeout)
	aggregates := aggregate_repo.NewSet(txManager)

	return &backend{
		lookups:    aggregates.Lookups(),
		repos:      association_repo.Factory(txManager),
		stores:     aggregates.Stores(),
		ledgerRepo: ledger_repo.New(txManager),
		txManager:  txManager,
		pinger:     pool,
		poolStats:  pool.Stats,
		close:      pool.Close,
	}, nil
}

func newMemoryBackend(seed bool) (*backend, error) {
	store := memory.NewStore()
	b := &backend{
		lookups:    store.Lookups(),
		repos:      store.AssociationRepo,
		stores:     store.Aggregates(),
		ledgerRepo: store.Ledger,
		txManager:  store.Tx,
	}
	if !seed {
		return b, nil
	}

	ds, err := fixtures.Demo(fixtures.DefaultCost)
	if err != nil {
		return nil, err
	}
	fixtures.LoadMemory(store, ds)
	b.afterWire = func(ctx context.Context, reg *relations.Registry) error {
		_, err := fixtures.ApplyLinks(ctx, reg, ds.Links, nil)
		return err
	}
	return b, nil
}
