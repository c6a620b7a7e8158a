package relations

import (
	"fmt"

	"storefront/internal/core/tx"
	"storefront/internal/domain/aggregate"
	"storefront/internal/domain/association"
)

// Lookups bundles the aggregate lookups the relations depend on.
type Lookups struct {
	Carts       aggregate.Lookup[aggregate.Cart]
	Items       aggregate.Lookup[aggregate.Item]
	Products    aggregate.Lookup[aggregate.Product]
	Categories  aggregate.Lookup[aggregate.Category]
	Inventories aggregate.Lookup[aggregate.Inventory]
	Orders      aggregate.Lookup[aggregate.Order]
	Payments    aggregate.Lookup[aggregate.Payment]
}

// RepoFactory returns the record repository backing rel.
type RepoFactory func(rel association.Relation) association.Repository

// Registry holds one Manager per relation, built once at startup.
type Registry struct {
	CartItems          *association.Manager[aggregate.Cart, aggregate.Item]
	ItemInventories    *association.Manager[aggregate.Item, aggregate.Inventory]
	ProductInventories *association.Manager[aggregate.Product, aggregate.Inventory]
	ProductCategories  *association.Manager[aggregate.Product, aggregate.Category]
	OrderItems         *association.Manager[aggregate.Order, aggregate.Item]
	OrderProducts      *association.Manager[aggregate.Order, aggregate.Product]
	OrderPayments      *association.Manager[aggregate.Order, aggregate.Payment]

	services []association.Service
	bySlug   map[string]association.Service
}

// NewRegistry wires the seven managers.
func NewRegistry(
	lookups Lookups,
	repos RepoFactory,
	txManager tx.Manager,
	policy association.UpdatePolicy,
) *Registry {
	r := &Registry{
		CartItems: association.NewManager(association.Config[aggregate.Cart, aggregate.Item]{
			Relation: CartItem, Repo: repos(CartItem),
			Left: lookups.Carts, Right: lookups.Items,
			TxManager: txManager, Policy: policy,
		}),
		ItemInventories: association.NewManager(association.Config[aggregate.Item, aggregate.Inventory]{
			Relation: ItemInventory, Repo: repos(ItemInventory),
			Left: lookups.Items, Right: lookups.Inventories,
			TxManager: txManager, Policy: policy,
		}),
		ProductInventories: association.NewManager(association.Config[aggregate.Product, aggregate.Inventory]{
			Relation: ProductInventory, Repo: repos(ProductInventory),
			Left: lookups.Products, Right: lookups.Inventories,
			TxManager: txManager, Policy: policy,
		}),
		ProductCategories: association.NewManager(association.Config[aggregate.Product, aggregate.Category]{
			Relation: ProductCategory, Repo: repos(ProductCategory),
			Left: lookups.Products, Right: lookups.Categories,
			TxManager: txManager, Policy: policy,
		}),
		OrderItems: association.NewManager(association.Config[aggregate.Order, aggregate.Item]{
			Relation: OrderItem, Repo: repos(OrderItem),
			Left: lookups.Orders, Right: lookups.Items,
			TxManager: txManager, Policy: policy,
		}),
		OrderProducts: association.NewManager(association.Config[aggregate.Order, aggregate.Product]{
			Relation: OrderProduct, Repo: repos(OrderProduct),
			Left: lookups.Orders, Right: lookups.Products,
			TxManager: txManager, Policy: policy,
		}),
		OrderPayments: association.NewManager(association.Config[aggregate.Order, aggregate.Payment]{
			Relation: OrderPayment, Repo: repos(OrderPayment),
			Left: lookups.Orders, Right: lookups.Payments,
			TxManager: txManager, Policy: policy,
		}),
	}

	r.services = []association.Service{
		r.CartItems,
		r.ItemInventories,
		r.ProductInventories,
		r.ProductCategories,
		r.OrderItems,
		r.OrderProducts,
		r.OrderPayments,
	}
	r.bySlug = make(map[string]association.Service, len(r.services))
	for _, svc := range r.services {
		r.bySlug[svc.Relation().Slug] = svc
	}
	return r
}

// Services returns every manager in registration order.
func (r *Registry) Services() []association.Service {
	return r.services
}

// BySlug returns the manager serving the URL slug.
func (r *Registry) BySlug(slug string) (association.Service, bool) {
	svc, ok := r.bySlug[slug]
	return svc, ok
}

// MustByName returns the manager for a relation name and panics if unknown.
func (r *Registry) MustByName(name string) association.Service {
	for _, svc := range r.services {
		if svc.Relation().Name == name {
			return svc
		}
	}
	panic(fmt.Sprintf("relations: unknown relation %q", name))
}
