package user

import (
	"testing"

	"caphe_back_end/internal/models"
)

func baseItem() models.CartItem {
	return models.CartItem{
		DrinkID:      "d1",
		Variant:      "hot",
		Size:         "M",
		SugarPercent: 50,
		IcePercent:   0,
		Toppings: []models.CartTopping{
			{ToppingID: "t1", Name: "Trân châu", Price: 5000},
		},
		Quantity: 1,
	}
}

func TestSameSelection(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CartItem)
		want   bool
	}{
		{"identique", func(i *models.CartItem) {}, true},
		{"quantité différente fusionne quand même", func(i *models.CartItem) { i.Quantity = 3 }, true},
		{"autre boisson", func(i *models.CartItem) { i.DrinkID = "d2" }, false},
		{"autre taille", func(i *models.CartItem) { i.Size = "L" }, false},
		{"autre variante", func(i *models.CartItem) { i.Variant = "iced" }, false},
		{"autre sucre", func(i *models.CartItem) { i.SugarPercent = 100 }, false},
		{"autre glace", func(i *models.CartItem) { i.IcePercent = 50 }, false},
		{"note différente", func(i *models.CartItem) { i.Note = "sans paille" }, false},
		{"topping en plus", func(i *models.CartItem) {
			i.Toppings = append(i.Toppings, models.CartTopping{ToppingID: "t2"})
		}, false},
		{"autre topping", func(i *models.CartItem) { i.Toppings[0].ToppingID = "t9" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := baseItem()
			b := baseItem()
			tt.mutate(&b)
			if got := sameSelection(a, b); got != tt.want {
				t.Errorf("sameSelection = %v, attendu %v", got, tt.want)
			}
		})
	}
}
