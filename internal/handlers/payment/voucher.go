package payment

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"caphe_back_end/internal/database"
	"caphe_back_end/internal/models"
	"caphe_back_end/internal/pricing"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// normalizeCode : les codes sont stockés et cherchés en majuscules,
// espaces enlevés. Toutes les routes voucher passent par ici.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// validateVoucher applique les règles d'éligibilité : code connu, actif,
// non expiré, panier au-dessus du minimum.
func validateVoucher(code string, subtotal int64) models.VoucherValidation {
	code = normalizeCode(code)
	invalid := func(msg string) models.VoucherValidation {
		return models.VoucherValidation{IsValid: false, ErrorMessage: msg, Code: code}
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return invalid("Erreur connexion base de données")
	}

	var v models.Voucher
	err = session.Query(`SELECT voucher_id, code, discount_percent, min_order_amount, expires_at,
		is_active, created_by, created_at, updated_at FROM vouchers WHERE code = ?`, code).
		Scan(&v.ID, &v.Code, &v.DiscountPercent, &v.MinOrderAmount, &v.ExpiresAt,
			&v.IsActive, &v.CreatedBy, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return invalid("Code voucher inconnu")
	}

	if !v.IsActive {
		return invalid("Ce voucher n'est plus actif")
	}
	if time.Now().After(v.ExpiresAt) {
		return invalid("Ce voucher a expiré")
	}
	if !pricing.VoucherApplies(v.MinOrderAmount, subtotal) {
		return invalid("Le montant minimum de commande n'est pas atteint")
	}

	return models.VoucherValidation{
		IsValid:  true,
		Code:     v.Code,
		Discount: pricing.VoucherDiscount(v, subtotal),
	}
}

// GET /api/vouchers/validate?code=...&subtotal=... — côté client, avant checkout
func ValidateVoucher(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code voucher requis"})
		return
	}

	subtotal, err := strconv.ParseInt(c.Query("subtotal"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant du panier invalide"})
		return
	}

	c.JSON(http.StatusOK, validateVoucher(code, subtotal))
}

// POST /api/admin/vouchers
func CreateVoucher(c *gin.Context) {
	var req struct {
		Code            string    `json:"code" binding:"required"`
		DiscountPercent int64     `json:"discount_percent" binding:"required"`
		MinOrderAmount  int64     `json:"min_order_amount"`
		ExpiresAt       time.Time `json:"expires_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if req.DiscountPercent <= 0 || req.DiscountPercent > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pourcentage doit être entre 1 et 100"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	code := normalizeCode(req.Code)

	// Le code doit être unique
	var existing string
	if err := session.Query("SELECT code FROM vouchers WHERE code = ?", code).Scan(&existing); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Ce code voucher existe déjà"})
		return
	}

	now := time.Now()
	voucher := models.Voucher{
		ID:              gocql.TimeUUID(),
		Code:            code,
		DiscountPercent: req.DiscountPercent,
		MinOrderAmount:  req.MinOrderAmount,
		ExpiresAt:       req.ExpiresAt,
		IsActive:        true,
		CreatedBy:       c.GetString("user_id"),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := session.Query(`INSERT INTO vouchers (voucher_id, code, discount_percent, min_order_amount,
		expires_at, is_active, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		voucher.ID, voucher.Code, voucher.DiscountPercent, voucher.MinOrderAmount,
		voucher.ExpiresAt, voucher.IsActive, voucher.CreatedBy,
		voucher.CreatedAt, voucher.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur création voucher: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du voucher"})
		return
	}

	log.Printf("✅ Voucher créé: %s", voucher.Code)
	c.JSON(http.StatusCreated, gin.H{"message": "Voucher créé avec succès", "voucher": voucher})
}

// GET /api/admin/vouchers
func GetAllVouchers(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT voucher_id, code, discount_percent, min_order_amount, expires_at,
		is_active, created_by, created_at, updated_at FROM vouchers`).Iter()

	var vouchers []models.Voucher
	var v models.Voucher
	for iter.Scan(&v.ID, &v.Code, &v.DiscountPercent, &v.MinOrderAmount, &v.ExpiresAt,
		&v.IsActive, &v.CreatedBy, &v.CreatedAt, &v.UpdatedAt) {
		vouchers = append(vouchers, v)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération vouchers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vouchers": vouchers, "total": len(vouchers)})
}

// PUT /api/admin/vouchers/:code — activation/désactivation et ajustements
func UpdateVoucher(c *gin.Context) {
	code := normalizeCode(c.Param("code"))

	var req struct {
		DiscountPercent int64     `json:"discount_percent" binding:"required"`
		MinOrderAmount  int64     `json:"min_order_amount"`
		ExpiresAt       time.Time `json:"expires_at" binding:"required"`
		IsActive        bool      `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if req.DiscountPercent <= 0 || req.DiscountPercent > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pourcentage doit être entre 1 et 100"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var existing string
	if err := session.Query("SELECT code FROM vouchers WHERE code = ?", code).Scan(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Voucher introuvable"})
		return
	}

	if err := session.Query(`UPDATE vouchers SET discount_percent = ?, min_order_amount = ?,
		expires_at = ?, is_active = ?, updated_at = ? WHERE code = ?`,
		req.DiscountPercent, req.MinOrderAmount, req.ExpiresAt, req.IsActive,
		time.Now(), code).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour voucher"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Voucher mis à jour"})
}

// DELETE /api/admin/vouchers/:code
func DeleteVoucher(c *gin.Context) {
	code := normalizeCode(c.Param("code"))

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("DELETE FROM vouchers WHERE code = ?", code).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression voucher"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Voucher supprimé"})
}
