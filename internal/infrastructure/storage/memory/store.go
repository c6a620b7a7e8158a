package memory

import (
	"sync"

	"storefront/internal/domain/aggregate"
	"storefront/internal/domain/association"
	"storefront/internal/domain/relations"
)

// Store groups every in-memory repository under one TxManager.
type Store struct {
	Users       *AggregateStore[aggregate.User]
	Carts       *AggregateStore[aggregate.Cart]
	Items       *AggregateStore[aggregate.Item]
	Products    *AggregateStore[aggregate.Product]
	Categories  *AggregateStore[aggregate.Category]
	Inventories *AggregateStore[aggregate.Inventory]
	Orders      *AggregateStore[aggregate.Order]
	Payments    *AggregateStore[aggregate.Payment]

	Ledger *LedgerRepo
	Tx     *TxManager

	mu           sync.Mutex
	associations map[string]*AssociationRepo
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{
		Users:        NewAggregateStore[aggregate.User](aggregate.KindUser),
		Carts:        NewAggregateStore[aggregate.Cart](aggregate.KindCart),
		Items:        NewAggregateStore[aggregate.Item](aggregate.KindItem),
		Products:     NewAggregateStore[aggregate.Product](aggregate.KindProduct),
		Categories:   NewAggregateStore[aggregate.Category](aggregate.KindCategory),
		Inventories:  NewAggregateStore[aggregate.Inventory](aggregate.KindInventory),
		Orders:       NewAggregateStore[aggregate.Order](aggregate.KindOrder),
		Payments:     NewAggregateStore[aggregate.Payment](aggregate.KindPayment),
		Ledger:       NewLedgerRepo(),
		associations: make(map[string]*AssociationRepo),
	}
	s.Tx = NewTxManager(
		s.Users, s.Carts, s.Items, s.Products,
		s.Categories, s.Inventories, s.Orders, s.Payments,
		s.Ledger,
	)
	return s
}

// Lookups exposes the aggregate stores as relation lookups.
func (s *Store) Lookups() relations.Lookups {
	return relations.Lookups{
		Carts:       s.Carts,
		Items:       s.Items,
		Products:    s.Products,
		Categories:  s.Categories,
		Inventories: s.Inventories,
		Orders:      s.Orders,
		Payments:    s.Payments,
	}
}

// Aggregates returns the purge-capable store for every kind.
func (s *Store) Aggregates() map[aggregate.Kind]aggregate.Store {
	return map[aggregate.Kind]aggregate.Store{
		aggregate.KindUser:      s.Users,
		aggregate.KindCart:      s.Carts,
		aggregate.KindItem:      s.Items,
		aggregate.KindProduct:   s.Products,
		aggregate.KindCategory:  s.Categories,
		aggregate.KindInventory: s.Inventories,
		aggregate.KindOrder:     s.Orders,
		aggregate.KindPayment:   s.Payments,
	}
}

// AssociationRepo returns the repository for rel, creating and tracking it
// on first use. It satisfies relations.RepoFactory.
func (s *Store) AssociationRepo(rel association.Relation) association.Repository {
	s.mu.Lock()
	defer s.mu.Unlock()

	if repo, ok := s.associations[rel.Name]; ok {
		return repo
	}
	repo := NewAssociationRepo(rel.Name + " association")
	s.associations[rel.Name] = repo
	s.Tx.Track(repo)
	return repo
}
