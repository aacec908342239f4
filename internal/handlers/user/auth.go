package user

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"caphe_back_end/internal/cache"
	"caphe_back_end/internal/database"
	"caphe_back_end/internal/middleware"
	"caphe_back_end/internal/models"
	"caphe_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ================== AUTH LOCALE ==================

const refreshTokenTTL = 30 * 24 * time.Hour

// issueRefreshToken génère et stocke un refresh token opaque (rotation à
// chaque utilisation).
func issueRefreshToken(userID string) string {
	token := uuid.NewString()
	if err := cache.StoreRefreshToken(userID, token, refreshTokenTTL); err != nil {
		log.Printf("⚠️ Erreur stockage refresh token: %v", err)
		return ""
	}
	return token
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
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

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// email déjà pris pour un compte local ?
	var existingID gocql.UUID
	err = session.Query("SELECT user_id FROM users_by_email WHERE email = ?", email).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	userID := gocql.TimeUUID()
	now := time.Now()

	user := models.User{
		ID:       userID.String(),
		Name:     input.Name,
		Email:    email,
		Password: hashedPassword,
		Role:     "customer",
		Provider: "local",
	}

	if err := session.Query(`INSERT INTO users (user_id, name, email, password, role, provider, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, user.Name, user.Email, user.Password, user.Role, user.Provider, now).Exec(); err != nil {
		log.Printf("❌ Erreur création utilisateur: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	// Table miroir pour le login par email
	if err := session.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`,
		email, userID).Exec(); err != nil {
		log.Printf("⚠️ Erreur insertion users_by_email: %v", err)
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Nouveau compte créé: %s", email)
	c.JSON(http.StatusCreated, gin.H{
		"token":        token,
		"refreshToken": issueRefreshToken(user.ID),
		"userId":       user.ID,
		"email":        user.Email,
		"name":         user.Name,
		"role":         user.Role,
	})
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
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

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var userID gocql.UUID
	if err := session.Query("SELECT user_id FROM users_by_email WHERE email = ?", email).Scan(&userID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	var user models.User
	var storedPassword string
	err = session.Query(`SELECT name, email, password, role, provider FROM users WHERE user_id = ?`, userID).
		Scan(&user.Name, &user.Email, &storedPassword, &user.Role, &user.Provider)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}
	user.ID = userID.String()

	if user.Provider != "local" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ce compte utilise une connexion Google"})
		return
	}

	valid, err := utils.VerifyPassword(input.Password, storedPassword)
	if err != nil || !valid {
		resp := gin.H{"error": "Email ou mot de passe incorrect"}
		if attempts, err := cache.GetRateLimit("login_attempts:" + email); err == nil {
			if left := int64(middleware.LoginMaxAttempts) - attempts; left > 0 {
				resp["attempts_left"] = left
			}
		}
		c.JSON(http.StatusUnauthorized, resp)
		return
	}

	// Migration transparente des anciens hashs bcrypt vers Argon2id
	if !utils.IsArgon2Hash(storedPassword) {
		if rehashed, err := utils.HashPassword(input.Password); err == nil {
			if err := session.Query("UPDATE users SET password = ? WHERE user_id = ?",
				rehashed, userID).Exec(); err != nil {
				log.Printf("⚠️ Erreur migration hash pour %s: %v", email, err)
			}
		}
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	// Tentatives de login remises à zéro après un succès
	cache.DeleteCache("login_attempts:" + email)

	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"refreshToken": issueRefreshToken(user.ID),
		"userId":       user.ID,
		"email":        user.Email,
		"name":         user.Name,
		"role":         user.Role,
	})
}

// POST /api/auth/refresh — échange un refresh token valide contre un
// nouveau couple access/refresh (rotation)
func RefreshToken(c *gin.Context) {
	var input struct {
		UserID       string `json:"userId" binding:"required"`
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	stored, err := cache.GetRefreshToken(input.UserID)
	if err != nil || stored != input.RefreshToken {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token invalide ou expiré"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	uid, err := uuid.Parse(input.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID utilisateur invalide"})
		return
	}

	var user models.User
	if err := session.Query(`SELECT name, email, role, provider FROM users WHERE user_id = ?`, gocql.UUID(uid)).
		Scan(&user.Name, &user.Email, &user.Role, &user.Provider); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
		return
	}
	user.ID = input.UserID

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"refreshToken": issueRefreshToken(user.ID),
	})
}

// POST /api/auth/logout — révoque le token courant via la blacklist
func Logout(c *gin.Context) {
	jti := c.GetString("jti")
	if jti != "" {
		if err := cache.BlacklistToken(jti, utils.AccessTokenTTL); err != nil {
			log.Printf("⚠️ Erreur blacklist token: %v", err)
		}
	}
	cache.DeleteRefreshToken(c.GetString("user_id"))

	c.JSON(http.StatusOK, gin.H{"message": "Déconnexion réussie"})
}

// GET /api/me
func Me(c *gin.Context) {
	userID := c.GetString("user_id")

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID utilisateur invalide"})
		return
	}

	var user models.User
	err = session.Query(`SELECT name, email, role, provider FROM users WHERE user_id = ?`, gocql.UUID(uid)).
		Scan(&user.Name, &user.Email, &user.Role, &user.Provider)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}
	user.ID = userID

	c.JSON(http.StatusOK, user)
}

// ================== RESET DE MOT DE PASSE ==================

// POST /api/auth/forgot-password
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email requis"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var userID gocql.UUID
	err = session.Query("SELECT user_id FROM users_by_email WHERE email = ?", email).Scan(&userID)
	if err != nil {
		// Ne pas révéler si l'email existe ou non
		c.JSON(http.StatusOK, gin.H{"message": "Si un compte existe, un email a été envoyé"})
		return
	}

	// Token opaque à usage unique, 30 minutes
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}
	resetToken := base64.RawURLEncoding.EncodeToString(raw)

	if err := cache.StoreResetToken(resetToken, userID.String(), 30*time.Minute); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur stockage token"})
		return
	}

	resetLink := os.Getenv("APP_RESET_URL") + "?token=" + resetToken
	go func() {
		if err := utils.SendEmail(email, "Réinitialisation de votre mot de passe",
			utils.GenerateResetPasswordHTML(resetLink)); err != nil {
			log.Printf("❌ Erreur envoi email reset à %s: %v", email, err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"message": "Si un compte existe, un email a été envoyé"})
}

// POST /api/auth/reset-password
func ResetPassword(c *gin.Context) {
	var input struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	userID, err := cache.ConsumeResetToken(input.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token invalide ou expiré"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du changement de mot de passe"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID utilisateur invalide"})
		return
	}

	if err := session.Query("UPDATE users SET password = ? WHERE user_id = ?",
		hashedPassword, gocql.UUID(uid)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	log.Printf("✅ Mot de passe réinitialisé pour user %s", userID)
	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe réinitialisé avec succès"})
}

// ================== CHANGE PASSWORD (connecté) ==================

// POST /api/me/change-password
func ChangePassword(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8"`
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

	uid, err := uuid.Parse(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID utilisateur invalide"})
		return
	}
	userUUID := gocql.UUID(uid)

	var password, provider string
	if err := session.Query("SELECT password, provider FROM users WHERE user_id = ?", userUUID).
		Scan(&password, &provider); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	// Vérifie que c'est un compte local (pas OAuth)
	if provider != "local" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les comptes OAuth ne peuvent pas changer de mot de passe ici"})
		return
	}

	valid, err := utils.VerifyPassword(input.OldPassword, password)
	if err != nil || !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Ancien mot de passe incorrect"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du changement de mot de passe"})
		return
	}

	if err := session.Query("UPDATE users SET password = ? WHERE user_id = ?",
		hashedPassword, userUUID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe changé avec succès"})
}
