package user

import (
	"log"
	"net/http"

	"caphe_back_end/internal/database"
	"caphe_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// GET /api/addresses
func GetMyAddresses(c *gin.Context) {
	userID := c.GetString("user_id")

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT address_id, recipient, phone, street, ward, district, city, is_default
		FROM addresses WHERE user_id = ? ALLOW FILTERING`, userID).Iter()

	var addresses []models.Address
	var addr models.Address
	for iter.Scan(&addr.ID, &addr.Recipient, &addr.Phone, &addr.Street,
		&addr.Ward, &addr.District, &addr.City, &addr.IsDefault) {
		addr.UserID = userID
		addresses = append(addresses, addr)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture adresses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération adresses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// POST /api/addresses
func CreateAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Recipient string `json:"recipient" binding:"required"`
		Phone     string `json:"phone" binding:"required"`
		Street    string `json:"street" binding:"required"`
		Ward      string `json:"ward"`
		District  string `json:"district"`
		City      string `json:"city" binding:"required"`
		IsDefault bool   `json:"is_default"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	addressID := gocql.TimeUUID()
	if err := session.Query(`INSERT INTO addresses (address_id, user_id, recipient, phone, street, ward, district, city, is_default)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		addressID, userID, input.Recipient, input.Phone, input.Street,
		input.Ward, input.District, input.City, input.IsDefault).Exec(); err != nil {
		log.Printf("❌ Erreur création adresse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création adresse"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Adresse créée", "id": addressID.String()})
}

// PUT /api/addresses/:id
func UpdateAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	addressID := c.Param("id")

	aid, err := uuid.Parse(addressID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return
	}

	var input struct {
		Recipient string `json:"recipient" binding:"required"`
		Phone     string `json:"phone" binding:"required"`
		Street    string `json:"street" binding:"required"`
		Ward      string `json:"ward"`
		District  string `json:"district"`
		City      string `json:"city" binding:"required"`
		IsDefault bool   `json:"is_default"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// L'adresse doit appartenir à l'utilisateur connecté
	var ownerID string
	if err := session.Query("SELECT user_id FROM addresses WHERE address_id = ?", gocql.UUID(aid)).
		Scan(&ownerID); err != nil || ownerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Adresse introuvable ou non autorisée"})
		return
	}

	if err := session.Query(`UPDATE addresses SET recipient = ?, phone = ?, street = ?, ward = ?,
		district = ?, city = ?, is_default = ? WHERE address_id = ?`,
		input.Recipient, input.Phone, input.Street, input.Ward,
		input.District, input.City, input.IsDefault, gocql.UUID(aid)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour adresse"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Adresse mise à jour"})
}

// DELETE /api/addresses/:id
func DeleteAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	addressID := c.Param("id")

	aid, err := uuid.Parse(addressID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var ownerID string
	if err := session.Query("SELECT user_id FROM addresses WHERE address_id = ?", gocql.UUID(aid)).
		Scan(&ownerID); err != nil || ownerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Adresse introuvable ou non autorisée"})
		return
	}

	if err := session.Query("DELETE FROM addresses WHERE address_id = ?", gocql.UUID(aid)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression adresse"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Adresse supprimée"})
}
