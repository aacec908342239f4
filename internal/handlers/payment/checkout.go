package payment

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"caphe_back_end/internal/cache"
	"caphe_back_end/internal/database"
	"caphe_back_end/internal/models"
	"caphe_back_end/internal/orderflow"
	"caphe_back_end/internal/pricing"
	"caphe_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// 🚀 POST /api/checkout
//
// Le panier Redis fait foi : on revérifie la disponibilité de chaque boisson,
// on recalcule les totaux côté serveur, puis on fige le tout en commande NEW.
func Checkout(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")

	var req struct {
		AddressID     string `json:"address_id" binding:"required"`
		PaymentMethod string `json:"payment_method" binding:"required,oneof=cash card"`
		VoucherCode   string `json:"voucher_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	items, err := cache.GetCart(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture du panier"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le panier est vide"})
		return
	}

	address, ok := loadOwnAddress(c, userID, req.AddressID)
	if !ok {
		return
	}

	// Chaque boisson du panier doit encore être commandable
	for _, item := range items {
		drink, err := cache.GetDrinkFromCache(item.DrinkID)
		if err != nil || !drink.IsAvailable {
			c.JSON(http.StatusConflict, gin.H{
				"error": "'" + item.Name + "' n'est plus disponible, retirez-le du panier",
			})
			return
		}
	}

	subtotal := pricing.CartSubtotal(items)

	var discount int64
	voucherCode := ""
	if req.VoucherCode != "" {
		validation := validateVoucher(req.VoucherCode, subtotal)
		if !validation.IsValid {
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.ErrorMessage})
			return
		}
		discount = validation.Discount
		voucherCode = validation.Code
	}

	total := pricing.OrderTotal(subtotal, discount)
	if total < 0 {
		total = 0
	}

	stripeID := ""
	if req.PaymentMethod == "card" {
		pi, err := paymentintent.New(&stripe.PaymentIntentParams{
			Amount:   stripe.Int64(total),
			Currency: stripe.String(string(stripe.CurrencyVND)),
			AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
				Enabled: stripe.Bool(true),
			},
			Metadata: map[string]string{"user_id": userID},
		})
		if err != nil {
			log.Printf("❌ Erreur Stripe PaymentIntent: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de l'initialisation du paiement"})
			return
		}
		stripeID = pi.ID
	}

	now := time.Now()
	order := models.Order{
		ID:            gocql.TimeUUID(),
		UserID:        userID,
		Email:         email,
		Items:         toOrderItems(items),
		Subtotal:      subtotal,
		VoucherCode:   voucherCode,
		VoucherAmount: discount,
		Total:         total,
		PaymentMethod: req.PaymentMethod,
		StripeID:      stripeID,
		Status:        orderflow.StatusNew,
		Address:       address,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	itemsJSON, _ := json.Marshal(order.Items)
	addressJSON, _ := json.Marshal(order.Address)

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`INSERT INTO orders (order_id, user_id, email, items, subtotal,
		voucher_code, voucher_amount, total, payment_method, stripe_id, status, address,
		rating, review, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, order.Email, string(itemsJSON), order.Subtotal,
		order.VoucherCode, order.VoucherAmount, order.Total, order.PaymentMethod,
		order.StripeID, order.Status, string(addressJSON),
		0, "", order.CreatedAt, order.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur création commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la commande"})
		return
	}

	if err := cache.ClearCart(userID); err != nil {
		log.Printf("⚠️ Panier non vidé pour %s: %v", userID, err)
	}
	cache.PublishOrderStatus(userID, order.ID.String(), order.Status)

	// Confirmation par mail, hors du chemin de réponse
	go func(o models.Order) {
		if err := utils.SendEmail(o.Email, "Votre commande est confirmée ☕",
			utils.GenerateOrderConfirmationHTML(o)); err != nil {
			log.Printf("⚠️ Email de confirmation non envoyé pour %s: %v", o.ID, err)
		}
	}(order)

	log.Printf("🚀 Commande %s créée (%s, %d ₫)", order.ID, order.PaymentMethod, order.Total)
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Commande créée avec succès",
		"order":       order,
		"status_name": orderflow.StatusName(order.Status),
	})
}

func toOrderItems(items []models.CartItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, models.OrderItem{
			DrinkID:      it.DrinkID,
			Name:         it.Name,
			ImageURL:     it.ImageURL,
			Price:        it.Price,
			SalePercent:  it.SalePercent,
			Variant:      it.Variant,
			Size:         it.Size,
			SugarPercent: it.SugarPercent,
			IcePercent:   it.IcePercent,
			Toppings:     it.Toppings,
			Note:         it.Note,
			Quantity:     it.Quantity,
			LineTotal:    pricing.CartItemTotal(it),
		})
	}
	return out
}

// loadOwnAddress charge l'adresse de livraison et vérifie qu'elle appartient
// à l'utilisateur. En cas d'échec la réponse HTTP est déjà écrite.
func loadOwnAddress(c *gin.Context, userID, addressID string) (models.Address, bool) {
	var addr models.Address

	aid, err := uuid.Parse(addressID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return addr, false
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return addr, false
	}

	if err := session.Query(`SELECT address_id, user_id, recipient, phone, street, ward,
		district, city, is_default FROM addresses WHERE address_id = ?`, gocql.UUID(aid)).
		Scan(&addr.ID, &addr.UserID, &addr.Recipient, &addr.Phone, &addr.Street,
			&addr.Ward, &addr.District, &addr.City, &addr.IsDefault); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Adresse introuvable"})
		return addr, false
	}

	if addr.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette adresse ne vous appartient pas"})
		return addr, false
	}
	return addr, true
}
