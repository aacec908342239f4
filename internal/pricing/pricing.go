package pricing

import "caphe_back_end/internal/models"

// Calculs de prix du panier et des commandes. Tout est en int64 VND
// (plus petite unité, pas de décimales) avec division entière.

// RealPrice applique la promo d'une boisson à son prix de base.
// sale <= 0 signifie pas de promo.
func RealPrice(price, salePercent int64) int64 {
	if salePercent <= 0 {
		return price
	}
	return price - price*salePercent/100
}

// LineTotal calcule le total d'une ligne : (prix promo + toppings) × quantité.
func LineTotal(realPrice int64, toppingPrices []int64, quantity int64) int64 {
	unit := realPrice
	for _, p := range toppingPrices {
		unit += p
	}
	return unit * quantity
}

// CartItemTotal recalcule le total d'une ligne de panier depuis son snapshot.
func CartItemTotal(item models.CartItem) int64 {
	prices := make([]int64, 0, len(item.Toppings))
	for _, t := range item.Toppings {
		prices = append(prices, t.Price)
	}
	return LineTotal(RealPrice(item.Price, item.SalePercent), prices, item.Quantity)
}

// CartSubtotal additionne les lignes du panier.
func CartSubtotal(items []models.CartItem) int64 {
	var subtotal int64
	for _, item := range items {
		subtotal += CartItemTotal(item)
	}
	return subtotal
}

// VoucherApplies vérifie le seuil de panier minimum d'un voucher.
func VoucherApplies(minOrderAmount, subtotal int64) bool {
	if minOrderAmount <= 0 {
		return true
	}
	return subtotal >= minOrderAmount
}

// VoucherDiscount calcule la remise d'un voucher applicable.
// Retourne 0 si le seuil minimum n'est pas atteint.
func VoucherDiscount(voucher models.Voucher, subtotal int64) int64 {
	if !VoucherApplies(voucher.MinOrderAmount, subtotal) {
		return 0
	}
	return subtotal * voucher.DiscountPercent / 100
}

// OrderTotal retourne subtotal - discount, sans plancher : le clamp à zéro
// est la responsabilité du checkout, pas du calcul pur.
func OrderTotal(subtotal, discount int64) int64 {
	return subtotal - discount
}
