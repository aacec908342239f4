package pricing

import (
	"testing"

	"caphe_back_end/internal/models"
)

func TestRealPrice(t *testing.T) {
	tests := []struct {
		name  string
		price int64
		sale  int64
		want  int64
	}{
		{"sans promo", 40000, 0, 40000},
		{"promo negative ignoree", 40000, -5, 40000},
		{"promo 10 pourcent", 40000, 10, 36000},
		{"promo 100 pourcent", 40000, 100, 0},
		{"division entiere", 33333, 10, 30000},
		{"prix zero", 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RealPrice(tt.price, tt.sale)
			if got != tt.want {
				t.Errorf("RealPrice(%d, %d) = %d, attendu %d", tt.price, tt.sale, got, tt.want)
			}
		})
	}
}

func TestRealPriceNeverExceedsPrice(t *testing.T) {
	for price := int64(0); price <= 100000; price += 7919 {
		for sale := int64(0); sale <= 100; sale += 13 {
			if got := RealPrice(price, sale); got > price {
				t.Fatalf("RealPrice(%d, %d) = %d depasse le prix de base", price, sale, got)
			}
		}
	}
}

func TestLineTotal(t *testing.T) {
	if got := LineTotal(36000, []int64{5000}, 2); got != 82000 {
		t.Errorf("LineTotal = %d, attendu 82000", got)
	}
	if got := LineTotal(36000, nil, 1); got != 36000 {
		t.Errorf("LineTotal sans topping = %d, attendu 36000", got)
	}
}

func TestLineTotalMonotone(t *testing.T) {
	// Le total ne doit jamais baisser quand on augmente la quantité
	// ou qu'on ajoute un topping.
	prev := int64(0)
	for q := int64(1); q <= 10; q++ {
		got := LineTotal(36000, []int64{5000}, q)
		if got < prev {
			t.Fatalf("LineTotal decroit a quantite %d: %d < %d", q, got, prev)
		}
		prev = got
	}

	toppings := []int64{}
	prev = LineTotal(36000, toppings, 2)
	for _, p := range []int64{3000, 5000, 7000} {
		toppings = append(toppings, p)
		got := LineTotal(36000, toppings, 2)
		if got < prev {
			t.Fatalf("LineTotal decroit avec %d toppings: %d < %d", len(toppings), got, prev)
		}
		prev = got
	}
}

func TestVoucherApplies(t *testing.T) {
	tests := []struct {
		name     string
		minimum  int64
		subtotal int64
		want     bool
	}{
		{"au dessus du seuil", 30000, 82000, true},
		{"exactement au seuil", 30000, 30000, true},
		{"sous le seuil", 30000, 29999, false},
		{"seuil zero", 0, 1000, true},
		{"seuil negatif", -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VoucherApplies(tt.minimum, tt.subtotal); got != tt.want {
				t.Errorf("VoucherApplies(%d, %d) = %v, attendu %v", tt.minimum, tt.subtotal, got, tt.want)
			}
		})
	}
}

func TestVoucherDiscount(t *testing.T) {
	v := models.Voucher{DiscountPercent: 10, MinOrderAmount: 30000}

	if got := VoucherDiscount(v, 82000); got != 8200 {
		t.Errorf("VoucherDiscount = %d, attendu 8200", got)
	}
	if got := VoucherDiscount(v, 20000); got != 0 {
		t.Errorf("VoucherDiscount sous le seuil = %d, attendu 0", got)
	}
}

// Scénario complet : café 40000 VND en promo -10%, quantité 2,
// un topping à 5000, voucher -10% avec minimum 30000.
func TestCheckoutScenario(t *testing.T) {
	item := models.CartItem{
		DrinkID:     "d1",
		Price:       40000,
		SalePercent: 10,
		Quantity:    2,
		Toppings:    []models.CartTopping{{ToppingID: "t1", Name: "Trân châu", Price: 5000}},
	}

	if got := RealPrice(item.Price, item.SalePercent); got != 36000 {
		t.Fatalf("RealPrice = %d, attendu 36000", got)
	}

	subtotal := CartSubtotal([]models.CartItem{item})
	if subtotal != 82000 {
		t.Fatalf("CartSubtotal = %d, attendu 82000", subtotal)
	}

	v := models.Voucher{DiscountPercent: 10, MinOrderAmount: 30000}
	discount := VoucherDiscount(v, subtotal)
	if discount != 8200 {
		t.Fatalf("VoucherDiscount = %d, attendu 8200", discount)
	}

	if total := OrderTotal(subtotal, discount); total != 73800 {
		t.Fatalf("OrderTotal = %d, attendu 73800", total)
	}
}

func TestOrderTotalNotClamped(t *testing.T) {
	// Le calcul pur ne plafonne pas à zéro, c'est le checkout qui le fait.
	if got := OrderTotal(1000, 2000); got != -1000 {
		t.Errorf("OrderTotal = %d, attendu -1000", got)
	}
}
