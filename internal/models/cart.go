package models

// CartTopping est le snapshot prix/nom d'un topping au moment de l'ajout.
type CartTopping struct {
	ToppingID string `json:"topping_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
}

// CartItem est la ligne de panier stockée dans Redis. C'est un snapshot :
// si le prix catalogue change ensuite, la ligne garde le prix vu à l'ajout.
type CartItem struct {
	ItemID       string        `json:"item_id"` // identifie la ligne (même boisson, options différentes)
	DrinkID      string        `json:"drink_id"`
	Name         string        `json:"name"`
	ImageURL     string        `json:"image_url,omitempty"`
	Price        int64         `json:"price"`
	SalePercent  int64         `json:"sale_percent"`
	Variant      string        `json:"variant,omitempty"` // "hot" | "ice"
	Size         string        `json:"size,omitempty"`    // "S" | "M" | "L"
	SugarPercent int           `json:"sugar_percent"`
	IcePercent   int           `json:"ice_percent"`
	Toppings     []CartTopping `json:"toppings,omitempty"`
	Note         string        `json:"note,omitempty"`
	Quantity     int64         `json:"quantity"`
	LineTotal    int64         `json:"line_total"`
}
