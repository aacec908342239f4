package catalog

import (
	"log"
	"net/http"
	"time"

	"caphe_back_end/internal/cache"
	"caphe_back_end/internal/database"
	"caphe_back_end/internal/models"
	"caphe_back_end/internal/pricing"
	"caphe_back_end/internal/search"
	"caphe_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// drinkView enrichit une boisson avec son prix promo calculé.
type drinkView struct {
	models.Drink
	RealPrice int64 `json:"real_price"`
}

func toView(d models.Drink) drinkView {
	return drinkView{Drink: d, RealPrice: pricing.RealPrice(d.Price, d.SalePercent)}
}

const drinkColumns = `drink_id, name, description, price, sale_percent, category_id,
	image_urls, is_available, created_at, updated_at`

func scanDrinks(iter *gocql.Iter) ([]models.Drink, error) {
	var drinks []models.Drink
	var d models.Drink
	for iter.Scan(&d.ID, &d.Name, &d.Description, &d.Price, &d.SalePercent,
		&d.CategoryID, &d.ImageURLs, &d.IsAvailable, &d.CreatedAt, &d.UpdatedAt) {
		drinks = append(drinks, d)
	}
	return drinks, iter.Close()
}

// 🔵 GET /api/drinks?category=...
func GetDrinks(c *gin.Context) {
	categoryID := c.Query("category")

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var iter *gocql.Iter
	if categoryID != "" {
		cid, err := uuid.Parse(categoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
			return
		}
		iter = session.Query(`SELECT `+drinkColumns+` FROM drinks WHERE category_id = ? ALLOW FILTERING`,
			gocql.UUID(cid)).Iter()
	} else {
		iter = session.Query(`SELECT ` + drinkColumns + ` FROM drinks`).Iter()
	}

	drinks, err := scanDrinks(iter)
	if err != nil {
		log.Printf("❌ Erreur lecture boissons: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération boissons"})
		return
	}

	// Le client ne voit que les boissons disponibles
	views := make([]drinkView, 0, len(drinks))
	for _, d := range drinks {
		if d.IsAvailable {
			views = append(views, toView(d))
		}
	}

	c.JSON(http.StatusOK, gin.H{"drinks": views, "total": len(views)})
}

// 🔵 GET /api/drinks/:id
func GetDrinkByID(c *gin.Context) {
	drink, err := cache.GetDrinkFromCache(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boisson introuvable"})
		return
	}

	c.JSON(http.StatusOK, toView(*drink))
}

// availableHits retire les boissons masquées des résultats Elasticsearch.
// L'index peut contenir des documents en retard sur le catalogue, le filtre
// côté requête ne suffit pas.
func availableHits(results []map[string]interface{}) []map[string]interface{} {
	visible := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		if avail, ok := r["is_available"].(bool); ok && avail {
			visible = append(visible, r)
		}
	}
	return visible
}

// 🔍 GET /api/drinks/search?q=... — Elasticsearch d'abord, fallback sur la
// recherche normalisée (sans accents) en base
func SearchDrinks(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mot-clé requis"})
		return
	}

	if results, err := services.SearchDrinks(keyword); err == nil {
		results = availableHits(results)
		c.JSON(http.StatusOK, gin.H{"drinks": results, "total": len(results), "source": "elastic"})
		return
	}

	// Fallback : scan + containment insensible casse/diacritiques
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	drinks, err := scanDrinks(session.Query(`SELECT ` + drinkColumns + ` FROM drinks`).Iter())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var matches []drinkView
	for _, d := range drinks {
		if d.IsAvailable && search.Matches(keyword, d.Name) {
			matches = append(matches, toView(d))
		}
	}

	c.JSON(http.StatusOK, gin.H{"drinks": matches, "total": len(matches), "source": "scan"})
}

// 🔍 GET /api/admin/drinks/search?q=... — recherche back-office, boissons
// masquées comprises
func AdminSearchDrinks(c *gin.Context) {
	keyword := c.Query("q")

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	drinks, err := scanDrinks(session.Query(`SELECT ` + drinkColumns + ` FROM drinks`).Iter())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var matches []models.Drink
	for _, d := range drinks {
		if search.Matches(keyword, d.Name) {
			matches = append(matches, d)
		}
	}

	c.JSON(http.StatusOK, gin.H{"drinks": matches, "total": len(matches)})
}

// 🟢 POST /api/admin/drinks
func CreateDrink(c *gin.Context) {
	var input struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Price       int64    `json:"price" binding:"required"`
		SalePercent int64    `json:"sale_percent"`
		CategoryID  string   `json:"category_id" binding:"required"`
		ImageURLs   []string `json:"image_urls"`
		IsAvailable *bool    `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	if input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix doit être positif"})
		return
	}
	if input.SalePercent < 0 || input.SalePercent > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La promo doit être entre 0 et 100"})
		return
	}

	cid, err := uuid.Parse(input.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// La catégorie doit exister
	var catName string
	if err := session.Query("SELECT name FROM categories WHERE category_id = ?", gocql.UUID(cid)).
		Scan(&catName); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	now := time.Now()
	drink := models.Drink{
		ID:          gocql.TimeUUID(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		SalePercent: input.SalePercent,
		CategoryID:  gocql.UUID(cid),
		ImageURLs:   input.ImageURLs,
		IsAvailable: available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := session.Query(`INSERT INTO drinks (drink_id, name, description, price, sale_percent,
		category_id, image_urls, is_available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		drink.ID, drink.Name, drink.Description, drink.Price, drink.SalePercent,
		drink.CategoryID, drink.ImageURLs, drink.IsAvailable, drink.CreatedAt, drink.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur création boisson: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création boisson"})
		return
	}

	services.IndexDrink(drink)

	log.Printf("✅ Boisson créée: %s", drink.Name)
	c.JSON(http.StatusCreated, gin.H{"id": drink.ID.String(), "message": "Boisson créée avec succès"})
}

// 🔁 PUT /api/admin/drinks/:id
func UpdateDrink(c *gin.Context) {
	drinkID := c.Param("id")
	did, err := uuid.Parse(drinkID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID boisson invalide"})
		return
	}

	var input struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Price       int64    `json:"price" binding:"required"`
		SalePercent int64    `json:"sale_percent"`
		CategoryID  string   `json:"category_id" binding:"required"`
		ImageURLs   []string `json:"image_urls"`
		IsAvailable *bool    `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Price < 0 || input.SalePercent < 0 || input.SalePercent > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix ou promo invalide"})
		return
	}

	cid, err := uuid.Parse(input.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var existing models.Drink
	if err := session.Query(`SELECT `+drinkColumns+` FROM drinks WHERE drink_id = ?`, gocql.UUID(did)).
		Scan(&existing.ID, &existing.Name, &existing.Description, &existing.Price, &existing.SalePercent,
			&existing.CategoryID, &existing.ImageURLs, &existing.IsAvailable,
			&existing.CreatedAt, &existing.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boisson introuvable"})
		return
	}

	available := existing.IsAvailable
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	now := time.Now()
	if err := session.Query(`UPDATE drinks SET name = ?, description = ?, price = ?, sale_percent = ?,
		category_id = ?, image_urls = ?, is_available = ?, updated_at = ? WHERE drink_id = ?`,
		input.Name, input.Description, input.Price, input.SalePercent,
		gocql.UUID(cid), input.ImageURLs, available, now, gocql.UUID(did)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour boisson"})
		return
	}

	cache.InvalidateDrinkCache(drinkID)

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Price = input.Price
	existing.SalePercent = input.SalePercent
	existing.CategoryID = gocql.UUID(cid)
	existing.ImageURLs = input.ImageURLs
	existing.IsAvailable = available
	existing.UpdatedAt = now
	services.IndexDrink(existing)

	c.JSON(http.StatusOK, gin.H{"message": "Boisson mise à jour"})
}

// ❌ DELETE /api/admin/drinks/:id
func DeleteDrink(c *gin.Context) {
	drinkID := c.Param("id")
	did, err := uuid.Parse(drinkID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID boisson invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("DELETE FROM drinks WHERE drink_id = ?", gocql.UUID(did)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression boisson"})
		return
	}

	cache.InvalidateDrinkCache(drinkID)
	services.RemoveDrinkFromIndex(drinkID)

	c.JSON(http.StatusOK, gin.H{"message": "Boisson supprimée"})
}
