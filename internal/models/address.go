package models

import "github.com/gocql/gocql"

type Address struct {
	ID        gocql.UUID `json:"id,omitempty"`
	UserID    string     `json:"user_id,omitempty"`
	Recipient string     `json:"recipient"`
	Phone     string     `json:"phone"`
	Street    string     `json:"street"`
	Ward      string     `json:"ward,omitempty"`
	District  string     `json:"district,omitempty"`
	City      string     `json:"city"`
	IsDefault bool       `json:"is_default"`
}
