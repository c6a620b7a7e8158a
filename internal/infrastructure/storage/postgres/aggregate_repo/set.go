package aggregate_repo

import (
	"storefront/internal/domain/aggregate"
	"storefront/internal/domain/relations"
	"storefront/internal/infrastructure/storage/postgres"
)

// Set holds one repository per aggregate kind.
type Set struct {
	Users       *Repo[aggregate.User]
	Carts       *Repo[aggregate.Cart]
	Items       *Repo[aggregate.Item]
	Products    *Repo[aggregate.Product]
	Categories  *Repo[aggregate.Category]
	Inventories *Repo[aggregate.Inventory]
	Orders      *Repo[aggregate.Order]
	Payments    *Repo[aggregate.Payment]
}

// NewSet creates the repositories for every aggregate table.
func NewSet(txManager *postgres.TxManager) *Set {
	return &Set{
		Users:       New[aggregate.User](txManager, aggregate.KindUser, "users"),
		Carts:       New[aggregate.Cart](txManager, aggregate.KindCart, "carts"),
		Items:       New[aggregate.Item](txManager, aggregate.KindItem, "items"),
		Products:    New[aggregate.Product](txManager, aggregate.KindProduct, "products"),
		Categories:  New[aggregate.Category](txManager, aggregate.KindCategory, "categories"),
		Inventories: New[aggregate.Inventory](txManager, aggregate.KindInventory, "inventories"),
		Orders:      New[aggregate.Order](txManager, aggregate.KindOrder, "orders"),
		Payments:    New[aggregate.Payment](txManager, aggregate.KindPayment, "payments"),
	}
}

// Lookups exposes the repositories as relation lookups.
func (s *Set) Lookups() relations.Lookups {
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

// Stores returns the purge-capable repository for every kind.
func (s *Set) Stores() map[aggregate.Kind]aggregate.Store {
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
