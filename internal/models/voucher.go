package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Voucher struct {
	ID              gocql.UUID `json:"id"`
	Code            string     `json:"code"`
	DiscountPercent int64      `json:"discount_percent"` // 1-100
	MinOrderAmount  int64      `json:"min_order_amount"` // panier minimum en VND
	ExpiresAt       time.Time  `json:"expires_at"`
	IsActive        bool       `json:"is_active"`
	CreatedBy       string     `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type VoucherValidation struct {
	IsValid      bool   `json:"is_valid"`
	ErrorMessage string `json:"error_message,omitempty"`
	Code         string `json:"code"`
	Discount     int64  `json:"discount"`
}
