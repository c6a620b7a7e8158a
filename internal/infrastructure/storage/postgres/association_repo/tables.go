package association_repo

import (
	"fmt"

	"storefront/internal/domain/association"
	"storefront/internal/domain/relations"
	"storefront/internal/infrastructure/storage/postgres"
)

// Tables maps relation names to link tables.
var Tables = map[string]Table{
	relations.CartItem.Name:         {Name: "cart_items", LeftColumn: "cart_id", RightColumn: "item_id"},
	relations.ItemInventory.Name:    {Name: "item_inventories", LeftColumn: "item_id", RightColumn: "inventory_id"},
	relations.ProductInventory.Name: {Name: "product_inventories", LeftColumn: "product_id", RightColumn: "inventory_id"},
	relations.ProductCategory.Name:  {Name: "product_categories", LeftColumn: "product_id", RightColumn: "category_id"},
	relations.OrderItem.Name:        {Name: "order_items", LeftColumn: "order_id", RightColumn: "item_id"},
	relations.OrderProduct.Name:     {Name: "order_products", LeftColumn: "order_id", RightColumn: "product_id"},
	relations.OrderPayment.Name:     {Name: "order_payments", LeftColumn: "order_id", RightColumn: "payment_id"},
}

// Factory returns a relations.RepoFactory backed by txManager.
// It panics on a relation without a table, which is a wiring bug.
func Factory(txManager *postgres.TxManager) relations.RepoFactory {
	return func(rel association.Relation) association.Repository {
		table, ok := Tables[rel.Name]
		if !ok {
			panic(fmt.Sprintf("association_repo: no table for relation %q", rel.Name))
		}
		return New(txManager, table, rel.Name+" association")
	}
}
