package user

import (
	"net/http"

	"caphe_back_end/internal/cache"
	"caphe_back_end/internal/models"
	"caphe_back_end/internal/pricing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//
// 🟢 GET /api/cart
//
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	items, err := cache.GetCart(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    items,
		"subtotal": pricing.CartSubtotal(items),
	})
}

//
// 🟢 POST /api/cart
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		DrinkID      string   `json:"drinkId" binding:"required"`
		Variant      string   `json:"variant"`
		Size         string   `json:"size"`
		SugarPercent int      `json:"sugarPercent"`
		IcePercent   int      `json:"icePercent"`
		ToppingIDs   []string `json:"toppingIds"`
		Note         string   `json:"note"`
		Quantity     int64    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	// 🧩 Snapshot de la boisson au moment de l'ajout
	drink, err := cache.GetDrinkFromCache(input.DrinkID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boisson introuvable"})
		return
	}
	if !drink.IsAvailable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cette boisson n'est plus disponible"})
		return
	}

	// 🧩 Snapshot des toppings sélectionnés
	toppings := []models.CartTopping{}
	if len(input.ToppingIDs) > 0 {
		found, err := cache.GetToppingsFromCache(input.ToppingIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
			return
		}
		for _, id := range input.ToppingIDs {
			t, ok := found[id]
			if !ok || !t.IsAvailable {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Topping introuvable ou indisponible"})
				return
			}
			toppings = append(toppings, models.CartTopping{
				ToppingID: id,
				Name:      t.Name,
				Price:     t.Price,
			})
		}
	}

	// 🖼️ Première image pour l'aperçu panier
	imageURL := ""
	if len(drink.ImageURLs) > 0 {
		imageURL = drink.ImageURLs[0]
	}

	item := models.CartItem{
		ItemID:       uuid.NewString(),
		DrinkID:      input.DrinkID,
		Name:         drink.Name,
		ImageURL:     imageURL,
		Price:        drink.Price,
		SalePercent:  drink.SalePercent,
		Variant:      input.Variant,
		Size:         input.Size,
		SugarPercent: input.SugarPercent,
		IcePercent:   input.IcePercent,
		Toppings:     toppings,
		Note:         input.Note,
		Quantity:     input.Quantity,
	}
	item.LineTotal = pricing.CartItemTotal(item)

	cart, err := cache.GetCart(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	// 🔁 Même boisson, mêmes options : on cumule la quantité
	merged := false
	for i := range cart {
		if sameSelection(cart[i], item) {
			cart[i].Quantity += item.Quantity
			cart[i].LineTotal = pricing.CartItemTotal(cart[i])
			merged = true
			break
		}
	}
	if !merged {
		cart = append(cart, item)
	}

	if err := cache.SaveCart(userID, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Boisson ajoutée au panier",
		"items":    cart,
		"subtotal": pricing.CartSubtotal(cart),
	})
}

// sameSelection : deux lignes fusionnent si tout est identique sauf la quantité.
func sameSelection(a, b models.CartItem) bool {
	if a.DrinkID != b.DrinkID || a.Variant != b.Variant || a.Size != b.Size ||
		a.SugarPercent != b.SugarPercent || a.IcePercent != b.IcePercent || a.Note != b.Note {
		return false
	}
	if len(a.Toppings) != len(b.Toppings) {
		return false
	}
	for i := range a.Toppings {
		if a.Toppings[i].ToppingID != b.Toppings[i].ToppingID {
			return false
		}
	}
	return true
}

//
// 🔁 PUT /api/cart/:itemId
//
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	itemID := c.Param("itemId")

	var input struct {
		Quantity     int64   `json:"quantity" binding:"required"`
		SugarPercent *int    `json:"sugarPercent"`
		IcePercent   *int    `json:"icePercent"`
		Note         *string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	cart, err := cache.GetCart(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	found := false
	newCart := make([]models.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.ItemID != itemID {
			newCart = append(newCart, item)
			continue
		}
		found = true
		if input.Quantity <= 0 {
			// Quantité à zéro = suppression de la ligne
			continue
		}
		item.Quantity = input.Quantity
		if input.SugarPercent != nil {
			item.SugarPercent = *input.SugarPercent
		}
		if input.IcePercent != nil {
			item.IcePercent = *input.IcePercent
		}
		if input.Note != nil {
			item.Note = *input.Note
		}
		item.LineTotal = pricing.CartItemTotal(item)
		newCart = append(newCart, item)
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ligne de panier introuvable"})
		return
	}

	if err := cache.SaveCart(userID, newCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    newCart,
		"subtotal": pricing.CartSubtotal(newCart),
	})
}

//
// ❌ DELETE /api/cart/:itemId
//
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	itemID := c.Param("itemId")

	cart, err := cache.GetCart(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	newCart := []models.CartItem{}
	for _, item := range cart {
		if item.ItemID != itemID {
			newCart = append(newCart, item)
		}
	}

	if err := cache.SaveCart(userID, newCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Ligne supprimée du panier",
		"items":    newCart,
		"subtotal": pricing.CartSubtotal(newCart),
	})
}

//
// 🧹 DELETE /api/cart
//
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := cache.ClearCart(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}
