package catalog

import (
	"encoding/json"
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

const categoriesCacheKey = "categories:all"

// 🔵 GET /api/categories
func GetAllCategories(c *gin.Context) {
	// Cache Redis
	if val, err := cache.GetCache(categoriesCacheKey); err == nil {
		var cached []models.Category
		if json.Unmarshal([]byte(val), &cached) == nil {
			c.JSON(http.StatusOK, gin.H{"categories": cached})
			return
		}
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT category_id, name, image_url, created_at FROM categories").Iter()

	var cats []models.Category
	var cat models.Category
	for iter.Scan(&cat.ID, &cat.Name, &cat.ImageURL, &cat.CreatedAt) {
		cats = append(cats, cat)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture catégories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération catégories"})
		return
	}

	data, _ := json.Marshal(cats)
	cache.SetCache(categoriesCacheKey, data, time.Hour)

	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

// 🔍 GET /api/admin/categories/search?q=... — insensible aux accents
func SearchCategories(c *gin.Context) {
	keyword := c.Query("q")

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT category_id, name, image_url, created_at FROM categories").Iter()

	var matches []models.Category
	var cat models.Category
	for iter.Scan(&cat.ID, &cat.Name, &cat.ImageURL, &cat.CreatedAt) {
		if search.Matches(keyword, cat.Name) {
			matches = append(matches, cat)
		}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": matches, "total": len(matches)})
}

// 🟢 POST /api/admin/categories
func CreateCategory(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		ImageURL string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'name' est obligatoire"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	categoryID := gocql.TimeUUID()
	now := time.Now()
	if err := session.Query(`INSERT INTO categories (category_id, name, image_url, created_at)
		VALUES (?, ?, ?, ?)`, categoryID, input.Name, input.ImageURL, now).Exec(); err != nil {
		log.Printf("❌ Erreur création catégorie: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création catégorie"})
		return
	}

	cache.DeleteCache(categoriesCacheKey)

	log.Printf("✅ Catégorie créée: %s", input.Name)
	c.JSON(http.StatusCreated, gin.H{"id": categoryID.String(), "message": "Catégorie créée avec succès"})
}

// 🔁 PUT /api/admin/categories/:id
func UpdateCategory(c *gin.Context) {
	cid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	var input struct {
		Name     string `json:"name" binding:"required"`
		ImageURL string `json:"image_url"`
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

	var existing string
	if err := session.Query("SELECT name FROM categories WHERE category_id = ?", gocql.UUID(cid)).
		Scan(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	if err := session.Query("UPDATE categories SET name = ?, image_url = ? WHERE category_id = ?",
		input.Name, input.ImageURL, gocql.UUID(cid)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour catégorie"})
		return
	}

	cache.DeleteCache(categoriesCacheKey)

	c.JSON(http.StatusOK, gin.H{"message": "Catégorie mise à jour"})
}

// ❌ DELETE /api/admin/categories/:id
func DeleteCategory(c *gin.Context) {
	cid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Refuse la suppression si des boissons y sont encore rattachées
	var drinkID gocql.UUID
	err = session.Query("SELECT drink_id FROM drinks WHERE category_id = ? LIMIT 1 ALLOW FILTERING",
		gocql.UUID(cid)).Scan(&drinkID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Des boissons sont encore rattachées à cette catégorie"})
		return
	}

	if err := session.Query("DELETE FROM categories WHERE category_id = ?", gocql.UUID(cid)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression catégorie"})
		return
	}

	cache.DeleteCache(categoriesCacheKey)

	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée"})
}
