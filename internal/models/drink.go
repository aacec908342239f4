package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Drink est l'entrée catalogue immuable. Le snapshot de sélection
// (variante, taille, toppings, note) vit dans CartItem / OrderItem,
// jamais ici.
type Drink struct {
	ID          gocql.UUID `json:"id" db:"drink_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Price       int64      `json:"price" db:"price"`               // en VND (pas de décimales)
	SalePercent int64      `json:"sale_percent" db:"sale_percent"` // 0-100
	CategoryID  gocql.UUID `json:"category_id" db:"category_id"`
	ImageURLs   []string   `json:"image_urls" db:"image_urls"`
	IsAvailable bool       `json:"is_available" db:"is_available"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type Topping struct {
	ID          gocql.UUID `json:"id" db:"topping_id"`
	Name        string     `json:"name" db:"name"`
	Price       int64      `json:"price" db:"price"`
	IsAvailable bool       `json:"is_available" db:"is_available"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
