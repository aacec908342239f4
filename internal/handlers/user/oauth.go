package user

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"caphe_back_end/internal/database"
	"caphe_back_end/internal/models"
	"caphe_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/markbates/goth/gothic"
)

type ctxKey string

const ProviderKey ctxKey = "provider"

// GET /api/auth/:provider — démarre le flow OAuth (Google)
func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// GET /api/auth/:provider/callback — termine le flow et émet notre JWT
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	email := strings.ToLower(gothUser.Email)

	// Compte existant ou création à la volée
	var userID gocql.UUID
	err = session.Query("SELECT user_id FROM users_by_email WHERE email = ?", email).Scan(&userID)
	if err != nil {
		userID = gocql.TimeUUID()
		now := time.Now()

		if err := session.Query(`INSERT INTO users (user_id, name, email, password, role, provider, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			userID, gothUser.Name, email, "", "customer", provider, now).Exec(); err != nil {
			log.Printf("❌ Erreur création compte OAuth: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
			return
		}
		if err := session.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`,
			email, userID).Exec(); err != nil {
			log.Printf("⚠️ Erreur insertion users_by_email: %v", err)
		}
		log.Printf("✅ Compte %s créé via %s", email, provider)
	}

	user := models.User{
		ID:       userID.String(),
		Name:     gothUser.Name,
		Email:    email,
		Role:     "customer",
		Provider: provider,
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"refreshToken": issueRefreshToken(user.ID),
		"provider":     user.Provider,
		"email":        user.Email,
		"userId":       user.ID,
	})
}
