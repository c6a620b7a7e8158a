// Package relations declares the seven concrete relation types and wires one
// association Manager per relation.
package relations

import (
	"storefront/internal/domain/aggregate"
	"storefront/internal/domain/association"
)

var (
	CartItem = association.Relation{
		Name:  "cart_item",
		Slug:  "cart-items",
		Left:  aggregate.KindCart,
		Right: aggregate.KindItem,
	}

	ItemInventory = association.Relation{
		Name:  "item_inventory",
		Slug:  "item-inventories",
		Left:  aggregate.KindItem,
		Right: aggregate.KindInventory,
	}

	ProductInventory = association.Relation{
		Name:  "product_inventory",
		Slug:  "product-inventories",
		Left:  aggregate.KindProduct,
		Right: aggregate.KindInventory,
	}

	ProductCategory = association.Relation{
		Name:        "product_category",
		Slug:        "product-categories",
		Left:        aggregate.KindProduct,
		Right:       aggregate.KindCategory,
		ReportEmpty: true,
	}

	OrderItem = association.Relation{
		Name:  "order_item",
		Slug:  "order-items",
		Left:  aggregate.KindOrder,
		Right: aggregate.KindItem,
	}

	OrderProduct = association.Relation{
		Name:  "order_product",
		Slug:  "order-products",
		Left:  aggregate.KindOrder,
		Right: aggregate.KindProduct,
	}

	OrderPayment = association.Relation{
		Name:        "order_payment",
		Slug:        "order-payments",
		Left:        aggregate.KindOrder,
		Right:       aggregate.KindPayment,
		ReportEmpty: true,
	}
)

// All returns every relation in registration order.
func All() []association.Relation {
	return []association.Relation{
		CartItem,
		ItemInventory,
		ProductInventory,
		ProductCategory,
		OrderItem,
		OrderProduct,
		OrderPayment,
	}
}

// Referencing returns the relations with at least one side of the given kind.
func Referencing(kind aggregate.Kind) []association.Relation {
	var out []association.Relation
	for _, rel := range All() {
		if left, right := rel.References(kind); left || right {
			out = append(out, rel)
		}
	}
	return out
}
