// Package fixtures builds the demo data set shared by cmd/seed and the
// memory-backed server.
package fixtures

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/core/id"
	"storefront/internal/domain/aggregate"
	"storefront/internal/domain/association"
	"storefront/internal/domain/relations"
)

const (
	// DemoPassword is the plaintext password of every demo user.
	DemoPassword = "Demo123!"

	// DefaultCost is the bcrypt cost used outside tests.
	DefaultCost = bcrypt.DefaultCost
)

// Link is one association to create once both sides exist.
type Link struct {
	Relation string
	Left     id.ID
	Right    id.ID
}

// Dataset is a self-consistent set of aggregates and links. Ids are local
// to the data set; stores that assign their own ids translate them with Remap.
type Dataset struct {
	Users       []aggregate.User
	Carts       []aggregate.Cart
	Items       []aggregate.Item
	Products    []aggregate.Product
	Categories  []aggregate.Category
	Inventories []aggregate.Inventory
	Orders      []aggregate.Order
	Payments    []aggregate.Payment
	Links       []Link
}

// Demo returns the demo data set. cost is the bcrypt cost for user password
// hashes; tests pass bcrypt.MinCost.
func Demo(cost int) (Dataset, error) {
	users := []aggregate.User{
		{ID: 1, Username: "alice", Email: "alice@storefront.local"},
		{ID: 2, Username: "bob", Email: "bob@storefront.local"},
	}
	for i := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
		if err != nil {
			return Dataset{}, fmt.Errorf("hash password for %s: %w", users[i].Username, err)
		}
		users[i].PasswordHash = string(hash)
	}

	placed := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	return Dataset{
		Users: users,
		Carts: []aggregate.Cart{
			{ID: 1, UserID: 1},
			{ID: 2, UserID: 2},
		},
		Items: []aggregate.Item{
			{ID: 1, Name: "Espresso cup", Quantity: 2},
			{ID: 2, Name: "Moka pot", Quantity: 1},
			{ID: 3, Name: "Coffee beans 1kg", Quantity: 3},
		},
		Products: []aggregate.Product{
			{ID: 1, Name: "Espresso cup", Price: decimal.RequireFromString("7.50")},
			{ID: 2, Name: "Moka pot", Price: decimal.RequireFromString("34.90")},
			{ID: 3, Name: "Coffee beans 1kg", Price: decimal.RequireFromString("18.00")},
		},
		Categories: []aggregate.Category{
			{ID: 1, Name: "Tableware"},
			{ID: 2, Name: "Brewing"},
			{ID: 3, Name: "Coffee"},
		},
		Inventories: []aggregate.Inventory{
			{ID: 1, Location: "WH-A1", Quantity: 120},
			{ID: 2, Location: "WH-B4", Quantity: 35},
		},
		Orders: []aggregate.Order{
			{ID: 1, UserID: 1, Status: "paid", CreatedAt: placed},
			{ID: 2, UserID: 2, Status: "new", CreatedAt: placed.Add(48 * time.Hour)},
		},
		Payments: []aggregate.Payment{
			{ID: 1, Amount: decimal.RequireFromString("25.50"), Method: "card"},
		},
		Links: []Link{
			{Relation: relations.CartItem.Name, Left: 1, Right: 1},
			{Relation: relations.CartItem.Name, Left: 1, Right: 3},
			{Relation: relations.CartItem.Name, Left: 2, Right: 2},
			{Relation: relations.ItemInventory.Name, Left: 1, Right: 1},
			{Relation: relations.ItemInventory.Name, Left: 2, Right: 2},
			{Relation: relations.ProductInventory.Name, Left: 1, Right: 1},
			{Relation: relations.ProductInventory.Name, Left: 3, Right: 2},
			{Relation: relations.ProductCategory.Name, Left: 1, Right: 1},
			{Relation: relations.ProductCategory.Name, Left: 2, Right: 2},
			{Relation: relations.ProductCategory.Name, Left: 3, Right: 3},
			{Relation: relations.OrderItem.Name, Left: 1, Right: 1},
			{Relation: relations.OrderItem.Name, Left: 1, Right: 3},
			{Relation: relations.OrderProduct.Name, Left: 1, Right: 1},
			{Relation: relations.OrderProduct.Name, Left: 1, Right: 3},
			{Relation: relations.OrderPayment.Name, Left: 1, Right: 1},
		},
	}, nil
}

// Remap translates data set ids to store ids per kind. Ids without an entry
// are used as is.
type Remap map[aggregate.Kind]map[id.ID]id.ID

// Set records that the data set id local of kind is stored as stored.
func (m Remap) Set(kind aggregate.Kind, local, stored id.ID) {
	if m[kind] == nil {
		m[kind] = make(map[id.ID]id.ID)
	}
	m[kind][local] = stored
}

// Resolve returns the store id for local.
func (m Remap) Resolve(kind aggregate.Kind, local id.ID) id.ID {
	if stored, ok := m[kind][local]; ok {
		return stored
	}
	return local
}

// ApplyLinks creates every link through the registry's managers, so each
// one is validated against the stores like any API call.
func ApplyLinks(ctx context.Context, reg *relations.Registry, links []Link, remap Remap) ([]association.Record, error) {
	created := make([]association.Record, 0, len(links))
	for _, l := range links {
		svc := reg.MustByName(l.Relation)
		rel := svc.Relation()

		rec, err := svc.Create(ctx, remap.Resolve(rel.Left, l.Left), remap.Resolve(rel.Right, l.Right))
		if err != nil {
			return created, fmt.Errorf("link %s %d-%d: %w", l.Relation, l.Left, l.Right, err)
		}
		created = append(created, rec)
	}
	return created, nil
}
