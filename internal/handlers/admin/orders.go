package admin

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"caphe_back_end/internal/cache"
	"caphe_back_end/internal/database"
	"caphe_back_end/internal/models"
	"caphe_back_end/internal/orderflow"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const orderColumns = `order_id, user_id, email, items, subtotal, voucher_code,
	voucher_amount, total, payment_method, stripe_id, status, address,
	rating, review, created_at, updated_at`

func scanOrders(iter *gocql.Iter) ([]models.Order, error) {
	var orders []models.Order
	for {
		var order models.Order
		var itemsJSON, addressJSON string
		if !iter.Scan(&order.ID, &order.UserID, &order.Email, &itemsJSON,
			&order.Subtotal, &order.VoucherCode, &order.VoucherAmount, &order.Total,
			&order.PaymentMethod, &order.StripeID, &order.Status, &addressJSON,
			&order.Rating, &order.Review, &order.CreatedAt, &order.UpdatedAt) {
			break
		}
		json.Unmarshal([]byte(itemsJSON), &order.Items)
		json.Unmarshal([]byte(addressJSON), &order.Address)
		orders = append(orders, order)
	}
	return orders, iter.Close()
}

// 🔵 GET /api/admin/orders?status=1 — toutes les commandes, filtrables par statut
func GetAllOrders(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var iter *gocql.Iter
	if raw := c.Query("status"); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil || !orderflow.IsValid(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu"})
			return
		}
		iter = session.Query(`SELECT `+orderColumns+` FROM orders WHERE status = ? ALLOW FILTERING`,
			status).Iter()
	} else {
		iter = session.Query(`SELECT ` + orderColumns + ` FROM orders`).Iter()
	}

	orders, err := scanOrders(iter)
	if err != nil {
		log.Printf("❌ Erreur lecture commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	// Nom de statut lisible pour le back-office
	views := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		views = append(views, gin.H{"order": o, "status_name": orderflow.StatusName(o.Status)})
	}

	c.JSON(http.StatusOK, gin.H{"orders": views, "total": len(views)})
}

// 🔁 POST /api/admin/orders/:id/advance — fait passer la commande au statut
// suivant. Un seul pas à la fois, jamais en arrière.
func AdvanceOrderStatus(c *gin.Context) {
	oid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var userID string
	var status int
	if err := session.Query("SELECT user_id, status FROM orders WHERE order_id = ?",
		gocql.UUID(oid)).Scan(&userID, &status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	next, err := orderflow.Next(status)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	if err := session.Query("UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ?",
		next, time.Now(), gocql.UUID(oid)).Exec(); err != nil {
		log.Printf("❌ Erreur avancement commande %s: %v", oid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour de la commande"})
		return
	}

	cache.PublishOrderStatus(userID, oid.String(), next)

	log.Printf("✅ Commande %s: %s → %s", oid, orderflow.StatusName(status), orderflow.StatusName(next))
	c.JSON(http.StatusOK, gin.H{
		"message":     "Statut mis à jour",
		"status":      next,
		"status_name": orderflow.StatusName(next),
	})
}
