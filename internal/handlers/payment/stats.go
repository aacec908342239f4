package payment

import (
	"encoding/json"
	"log"
	"net/http"

	"caphe_back_end/internal/database"
	"caphe_back_end/internal/models"
	"caphe_back_end/internal/orderflow"

	"github.com/gin-gonic/gin"
)

// 📊 GET /api/admin/stats — tableau de bord back-office
func GetDashboardStats(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT order_id, total, status, items, created_at FROM orders`).Iter()

	var (
		totalOrders  int64
		revenue      int64
		drinksSold   int64
		byStatus     = map[string]int64{}
		byDay        = map[string]int64{}
		revenueByDay = map[string]int64{}
	)

	var o models.Order
	var items string
	for iter.Scan(&o.ID, &o.Total, &o.Status, &items, &o.CreatedAt) {
		totalOrders++
		byStatus[orderflow.StatusName(o.Status)]++

		day := o.CreatedAt.Format("2006-01-02")
		byDay[day]++

		// Seules les commandes terminées comptent dans le chiffre d'affaires
		if o.Status == orderflow.StatusComplete {
			revenue += o.Total
			revenueByDay[day] += o.Total
		}

		var orderItems []models.OrderItem
		if json.Unmarshal([]byte(items), &orderItems) == nil {
			for _, it := range orderItems {
				drinksSold += it.Quantity
			}
		}
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur calcul statistiques: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur calcul des statistiques"})
		return
	}

	var avgOrder int64
	if completed := byStatus[orderflow.StatusName(orderflow.StatusComplete)]; completed > 0 {
		avgOrder = revenue / completed
	}

	c.JSON(http.StatusOK, gin.H{
		"total_orders":        totalOrders,
		"revenue":             revenue,
		"average_order_value": avgOrder,
		"drinks_sold":         drinksSold,
		"orders_by_status":    byStatus,
		"orders_by_day":       byDay,
		"revenue_by_day":      revenueByDay,
	})
}
