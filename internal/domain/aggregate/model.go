package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/core/id"
)

// Read models. Fields mirror the owning services' tables; only what the
// association core and the seed command touch is mapped.

type User struct {
	ID           id.ID  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
}

type Cart struct {
	ID     id.ID `db:"id" json:"id"`
	UserID id.ID `db:"user_id" json:"userId"`
}

type Item struct {
	ID       id.ID  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Quantity int    `db:"quantity" json:"quantity"`
}

type Product struct {
	ID    id.ID           `db:"id" json:"id"`
	Name  string          `db:"name" json:"name"`
	Price decimal.Decimal `db:"price" json:"price"`
}

type Category struct {
	ID   id.ID  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Inventory struct {
	ID       id.ID  `db:"id" json:"id"`
	Location string `db:"location" json:"location"`
	Quantity int    `db:"quantity" json:"quantity"`
}

type Order struct {
	ID        id.ID     `db:"id" json:"id"`
	UserID    id.ID     `db:"user_id" json:"userId"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type Payment struct {
	ID     id.ID           `db:"id" json:"id"`
	Amount decimal.Decimal `db:"amount" json:"amount"`
	Method string          `db:"method" json:"method"`
}
