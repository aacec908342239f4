package user

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"time"

	"caphe_back_end/internal/cache"
	"caphe_back_end/internal/database"
	"caphe_back_end/internal/models"
	"caphe_back_end/internal/orderflow"
	"caphe_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// scanOrder reconstruit une commande depuis une ligne ScyllaDB (les lignes
// d'articles et l'adresse sont stockées en JSON).
func scanOrder(iter *gocql.Iter) (*models.Order, bool) {
	var order models.Order
	var itemsJSON, addressJSON string

	ok := iter.Scan(&order.ID, &order.UserID, &order.Email, &itemsJSON,
		&order.Subtotal, &order.VoucherCode, &order.VoucherAmount, &order.Total,
		&order.PaymentMethod, &order.StripeID, &order.Status, &addressJSON,
		&order.Rating, &order.Review, &order.CreatedAt, &order.UpdatedAt)
	if !ok {
		return nil, false
	}

	json.Unmarshal([]byte(itemsJSON), &order.Items)
	json.Unmarshal([]byte(addressJSON), &order.Address)
	return &order, true
}

const orderColumns = `order_id, user_id, email, items, subtotal, voucher_code,
	voucher_amount, total, payment_method, stripe_id, status, address,
	rating, review, created_at, updated_at`

// ✅ GET /api/orders — toutes les commandes de l'utilisateur connecté
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT `+orderColumns+` FROM orders WHERE user_id = ? ALLOW FILTERING`,
		userID).Iter()

	var orders []models.Order
	for {
		order, ok := scanOrder(iter)
		if !ok {
			break
		}
		orders = append(orders, *order)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	// Les plus récentes en premier
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	log.Printf("✅ %d commandes trouvées pour user %s", len(orders), userID)
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ✅ GET /api/orders/:id — une commande avec son QR de suivi
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	orderID := c.Param("id")

	order, _, err := loadOwnOrder(c, userID, orderID)
	if err != nil {
		return // réponse déjà envoyée
	}

	qr, err := utils.GenerateOrderQR(order.ID.String())
	if err != nil {
		log.Printf("⚠️ Erreur génération QR pour %s: %v", orderID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"order":       order,
		"status_name": orderflow.StatusName(order.Status),
		"qr_code":     qr,
		"can_receive": orderflow.CanReceive(order.Status) == nil,
		"can_rate":    orderflow.CanRate(order.Status) == nil && order.Rating == 0,
		"is_final":    orderflow.IsTerminal(order.Status),
	})
}

// loadOwnOrder charge une commande et vérifie qu'elle appartient bien à
// l'utilisateur connecté. En cas d'échec la réponse HTTP est déjà écrite.
func loadOwnOrder(c *gin.Context, userID, orderID string) (*models.Order, *gocql.Session, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return nil, nil, err
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return nil, nil, err
	}

	iter := session.Query(`SELECT `+orderColumns+` FROM orders WHERE order_id = ?`,
		gocql.UUID(oid)).Iter()
	order, ok := scanOrder(iter)
	iter.Close()

	if !ok || order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return nil, nil, gocql.ErrNotFound
	}
	return order, session, nil
}

// ✅ POST /api/orders/:id/receive — le client confirme la réception
// (ARRIVED → COMPLETE uniquement)
func ReceiveOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	orderID := c.Param("id")

	order, session, err := loadOwnOrder(c, userID, orderID)
	if err != nil {
		return
	}

	if err := orderflow.CanReceive(order.Status); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	if err := session.Query("UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ?",
		orderflow.StatusComplete, now, order.ID).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour statut commande %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour de la commande"})
		return
	}

	cache.PublishOrderStatus(userID, orderID, orderflow.StatusComplete)

	log.Printf("✅ Commande %s confirmée reçue par %s", orderID, userID)
	c.JSON(http.StatusOK, gin.H{
		"message":     "Commande confirmée, merci !",
		"status":      orderflow.StatusComplete,
		"status_name": orderflow.StatusName(orderflow.StatusComplete),
		"can_rate":    true,
	})
}

// ✅ POST /api/orders/:id/rate — notation unique après COMPLETE
func RateOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	orderID := c.Param("id")

	var input struct {
		Rating int    `json:"rating" binding:"required,min=1,max=5"`
		Review string `json:"review" binding:"max=500"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	order, session, err := loadOwnOrder(c, userID, orderID)
	if err != nil {
		return
	}

	if err := orderflow.CanRate(order.Status); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if order.Rating != 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Cette commande a déjà été notée"})
		return
	}

	now := time.Now()
	if err := session.Query("UPDATE orders SET rating = ?, review = ?, updated_at = ? WHERE order_id = ?",
		input.Rating, input.Review, now, order.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement de la note"})
		return
	}

	// Nom de l'utilisateur pour l'affichage back-office
	userName := ""
	if usersSession, err := database.GetUsersSession(); err == nil {
		if uid, err := uuid.Parse(userID); err == nil {
			usersSession.Query("SELECT name FROM users WHERE user_id = ?", gocql.UUID(uid)).Scan(&userName)
		}
	}

	if err := session.Query(`INSERT INTO feedback (feedback_id, order_id, user_id, user_name, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		gocql.TimeUUID(), order.ID, userID, userName, input.Rating, input.Review, now).Exec(); err != nil {
		log.Printf("⚠️ Erreur insertion feedback: %v", err)
	}

	log.Printf("✅ Commande %s notée %d/5", orderID, input.Rating)
	c.JSON(http.StatusOK, gin.H{"message": "Merci pour votre avis !"})
}
