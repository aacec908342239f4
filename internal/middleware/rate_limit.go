package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"caphe_back_end/internal/cache"
	"caphe_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	// Limites par endpoint
	LoginMaxAttempts          = 5
	RegisterMaxAttempts       = 3
	ForgotPasswordMaxAttempts = 3
	APIMaxRequests            = 100 // Par minute pour les endpoints généraux

	// Durées de cooldown
	LoginCooldown          = 15 * time.Minute
	RegisterCooldown       = 30 * time.Minute
	ForgotPasswordCooldown = 10 * time.Minute
	APICooldown            = 1 * time.Minute
)

// emailFromBody lit l'email du body JSON sans le consommer pour les
// handlers suivants.
func emailFromBody(c *gin.Context) string {
	bodyBytes, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	var input struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(bodyBytes, &input); err != nil {
		return ""
	}
	return input.Email
}

// LoginRateLimit limite les tentatives de connexion par email
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := emailFromBody(c)
		if email == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		cooldownKey := "login_cooldown:" + email
		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Réessayez dans %d minutes", int(ttl.Minutes())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		attempts, err := cache.IncrementRateLimit("login_attempts:"+email, LoginCooldown)
		if err == nil && attempts > LoginMaxAttempts {
			database.Redis.Set(ctx, cooldownKey, "1", LoginCooldown)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Trop de tentatives de connexion, compte temporairement bloqué",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RegisterRateLimit limite les créations de compte par IP
func RegisterRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "register_attempts:" + c.ClientIP()

		attempts, err := cache.IncrementRateLimit(key, RegisterCooldown)
		if err == nil && attempts > RegisterMaxAttempts {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Trop de créations de compte depuis cette adresse, réessayez plus tard",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ForgotPasswordRateLimit limite les demandes de réinitialisation par email
func ForgotPasswordRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := emailFromBody(c)
		if email == "" {
			c.Next()
			return
		}

		attempts, err := cache.IncrementRateLimit("forgot_attempts:"+email, ForgotPasswordCooldown)
		if err == nil && attempts > ForgotPasswordMaxAttempts {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Trop de demandes de réinitialisation, réessayez plus tard",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// APIRateLimit limite globale par IP pour les endpoints publics
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "api_requests:" + c.ClientIP()

		requests, err := cache.IncrementRateLimit(key, APICooldown)
		if err == nil && requests > APIMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Trop de requêtes, ralentissez",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
