package catalog

import (
	"net/http"
	"time"

	"caphe_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// 🖼️ POST /api/admin/images — upload d'une image boisson/catégorie vers MinIO
func UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier 'image' requis"})
		return
	}

	// 5 MB max
	if file.Size > 5*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image trop lourde (max 5 MB)"})
		return
	}

	url, err := services.UploadImage(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

// 🖼️ GET /api/admin/images/:object/url — URL signée temporaire (bucket privé)
func GetImageURL(c *gin.Context) {
	objectName := c.Param("object")
	if objectName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom d'objet requis"})
		return
	}

	url, err := services.PresignedImageURL(objectName, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération URL signée"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "expires_in": int((15 * time.Minute).Seconds())})
}
