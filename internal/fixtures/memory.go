package fixtures

import (
	"storefront/internal/infrastructure/storage/memory"
)

// LoadMemory puts the data set's aggregates into store under their own ids.
// Links are not created; use ApplyLinks with a registry over the same store.
func LoadMemory(store *memory.Store, ds Dataset) {
	for _, v := range ds.Users {
		store.Users.Put(v.ID, v)
	}
	for _, v := range ds.Carts {
		store.Carts.Put(v.ID, v)
	}
	for _, v := range ds.Items {
		store.Items.Put(v.ID, v)
	}
	for _, v := range ds.Products {
		store.Products.Put(v.ID, v)
	}
	for _, v := range ds.Categories {
		store.Categories.Put(v.ID, v)
	}
	for _, v := range ds.Inventories {
		store.Inventories.Put(v.ID, v)
	}
	for _, v := range ds.Orders {
		store.Orders.Put(v.ID, v)
	}
	for _, v := range ds.Payments {
		store.Payments.Put(v.ID, v)
	}
}
