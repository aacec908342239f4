package catalog

import (
	"log"
	"net/http"
	"time"

	"caphe_back_end/internal/cache"
	"caphe_back_end/internal/database"
	"caphe_back_end/internal/models"
	"caphe_back_end/internal/search"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

func scanToppings(iter *gocql.Iter) ([]models.Topping, error) {
	var toppings []models.Topping
	var t models.Topping
	for iter.Scan(&t.ID, &t.Name, &t.Price, &t.IsAvailable, &t.CreatedAt) {
		toppings = append(toppings, t)
	}
	return toppings, iter.Close()
}

// 🔵 GET /api/toppings — seulement les toppings disponibles
func GetToppings(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	toppings, err := scanToppings(session.Query(
		"SELECT topping_id, name, price, is_available, created_at FROM toppings").Iter())
	if err != nil {
		log.Printf("❌ Erreur lecture toppings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération toppings"})
		return
	}

	available := make([]models.Topping, 0, len(toppings))
	for _, t := range toppings {
		if t.IsAvailable {
			available = append(available, t)
		}
	}

	c.JSON(http.StatusOK, gin.H{"toppings": available, "total": len(available)})
}

// 🔍 GET /api/admin/toppings/search?q=...
func SearchToppings(c *gin.Context) {
	keyword := c.Query("q")

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	toppings, err := scanToppings(session.Query(
		"SELECT topping_id, name, price, is_available, created_at FROM toppings").Iter())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var matches []models.Topping
	for _, t := range toppings {
		if search.Matches(keyword, t.Name) {
			matches = append(matches, t)
		}
	}

	c.JSON(http.StatusOK, gin.H{"toppings": matches, "total": len(matches)})
}

// 🟢 POST /api/admin/toppings
func CreateTopping(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Price       int64  `json:"price" binding:"required"`
		IsAvailable *bool  `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix doit être positif"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	toppingID := gocql.TimeUUID()
	if err := session.Query(`INSERT INTO toppings (topping_id, name, price, is_available, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		toppingID, input.Name, input.Price, available, time.Now()).Exec(); err != nil {
		log.Printf("❌ Erreur création topping: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création topping"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": toppingID.String(), "message": "Topping créé avec succès"})
}

// 🔁 PUT /api/admin/toppings/:id
func UpdateTopping(c *gin.Context) {
	toppingID := c.Param("id")
	tid, err := uuid.Parse(toppingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID topping invalide"})
		return
	}

	var input struct {
		Name        string `json:"name" binding:"required"`
		Price       int64  `json:"price" binding:"required"`
		IsAvailable *bool  `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var existingAvailable bool
	if err := session.Query("SELECT is_available FROM toppings WHERE topping_id = ?", gocql.UUID(tid)).
		Scan(&existingAvailable); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Topping introuvable"})
		return
	}

	available := existingAvailable
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	if err := session.Query("UPDATE toppings SET name = ?, price = ?, is_available = ? WHERE topping_id = ?",
		input.Name, input.Price, available, gocql.UUID(tid)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour topping"})
		return
	}

	cache.InvalidateToppingCache(toppingID)

	c.JSON(http.StatusOK, gin.H{"message": "Topping mis à jour"})
}

// ❌ DELETE /api/admin/toppings/:id
func DeleteTopping(c *gin.Context) {
	toppingID := c.Param("id")
	tid, err := uuid.Parse(toppingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID topping invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("DELETE FROM toppings WHERE topping_id = ?", gocql.UUID(tid)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression topping"})
		return
	}

	cache.InvalidateToppingCache(toppingID)

	c.JSON(http.StatusOK, gin.H{"message": "Topping supprimé"})
}
