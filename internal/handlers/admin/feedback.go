package admin

import (
	"log"
	"net/http"
	"sort"

	"caphe_back_end/internal/database"
	"caphe_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// 🔵 GET /api/admin/feedback — tous les avis clients, les plus récents d'abord
func GetAllFeedback(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT feedback_id, order_id, user_id, user_name, rating, comment, created_at
		FROM feedback`).Iter()

	var all []models.Feedback
	var f models.Feedback
	for iter.Scan(&f.ID, &f.OrderID, &f.UserID, &f.UserName, &f.Rating, &f.Comment, &f.CreatedAt) {
		all = append(all, f)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture feedback: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des avis"})
		return
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	var sum int
	for _, fb := range all {
		sum += fb.Rating
	}
	var avg float64
	if len(all) > 0 {
		avg = float64(sum) / float64(len(all))
	}

	c.JSON(http.StatusOK, gin.H{"feedback": all, "total": len(all), "average_rating": avg})
}
