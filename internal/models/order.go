package models

import (
	"time"

	"github.com/gocql/gocql"
)

// OrderItem est le snapshot d'une ligne au moment du checkout.
type OrderItem struct {
	DrinkID      string        `json:"drink_id"`
	Name         string        `json:"name"`
	ImageURL     string        `json:"image_url,omitempty"`
	Price        int64         `json:"price"`
	SalePercent  int64         `json:"sale_percent"`
	Variant      string        `json:"variant,omitempty"`
	Size         string        `json:"size,omitempty"`
	SugarPercent int           `json:"sugar_percent"`
	IcePercent   int           `json:"ice_percent"`
	Toppings     []CartTopping `json:"toppings,omitempty"`
	Note         string        `json:"note,omitempty"`
	Quantity     int64         `json:"quantity"`
	LineTotal    int64         `json:"line_total"`
}

type Order struct {
	ID            gocql.UUID  `json:"id"`
	UserID        string      `json:"user_id"`
	Email         string      `json:"email"`
	Items         []OrderItem `json:"items"`
	Subtotal      int64       `json:"subtotal"`
	VoucherCode   string      `json:"voucher_code,omitempty"`
	VoucherAmount int64       `json:"voucher_amount"`
	Total         int64       `json:"total"`
	PaymentMethod string      `json:"payment_method"` // "cash" | "card"
	StripeID      string      `json:"stripe_id,omitempty"`
	Status        int         `json:"status"` // codes dans internal/orderflow
	Address       Address     `json:"address"`
	Rating        int         `json:"rating,omitempty"` // 1-5, renseigné après COMPLETE
	Review        string      `json:"review,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type Feedback struct {
	ID        gocql.UUID `json:"id"`
	OrderID   gocql.UUID `json:"order_id"`
	UserID    string     `json:"user_id"`
	UserName  string     `json:"user_name"`
	Rating    int        `json:"rating"` // 1-5
	Comment   string     `json:"comment"`
	CreatedAt time.Time  `json:"created_at"`
}
