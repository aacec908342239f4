package payment

import (
	"testing"

	"caphe_back_end/internal/models"
)

func TestToOrderItems(t *testing.T) {
	cart := []models.CartItem{
		{
			ItemID:      "i1",
			DrinkID:     "d1",
			Name:        "Cà phê sữa",
			Price:       40000,
			SalePercent: 10,
			Toppings: []models.CartTopping{
				{ToppingID: "t1", Name: "Trân châu", Price: 5000},
			},
			Quantity: 2,
		},
		{
			ItemID:   "i2",
			DrinkID:  "d2",
			Name:     "Trà đào",
			Price:    35000,
			Quantity: 1,
		},
	}

	items := toOrderItems(cart)
	if len(items) != 2 {
		t.Fatalf("attendu 2 lignes, obtenu %d", len(items))
	}

	// (40000 - 10%) + 5000 topping = 41000, ×2 = 82000
	if items[0].LineTotal != 82000 {
		t.Errorf("ligne 1: LineTotal = %d, attendu 82000", items[0].LineTotal)
	}
	if items[1].LineTotal != 35000 {
		t.Errorf("ligne 2: LineTotal = %d, attendu 35000", items[1].LineTotal)
	}

	if items[0].DrinkID != "d1" || items[0].Name != "Cà phê sữa" || items[0].Quantity != 2 {
		t.Errorf("le snapshot de la ligne 1 ne correspond pas: %+v", items[0])
	}
	if len(items[0].Toppings) != 1 || items[0].Toppings[0].Price != 5000 {
		t.Errorf("toppings non copiés: %+v", items[0].Toppings)
	}
}
