package cache

import (
	"encoding/json"
	"time"

	"caphe_back_end/internal/database"
	"caphe_back_end/internal/models"

	"github.com/redis/go-redis/v9"
)

// Le panier vit uniquement dans Redis : une clé par utilisateur qui porte
// la liste des lignes en JSON. Il est détruit au checkout.
const CartTTL = 30 * 24 * time.Hour

func cartKey(userID string) string {
	return "cart:" + userID
}

// GetCart récupère le panier d'un utilisateur. Panier absent = panier vide,
// mais une panne Redis remonte en erreur : sinon un SaveCart derrière
// écraserait le vrai panier.
func GetCart(userID string) ([]models.CartItem, error) {
	data, err := database.Redis.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil || (err == nil && data == "") {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveCart écrit le panier et notifie les clients websocket abonnés.
func SaveCart(userID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := database.Redis.Set(ctx, cartKey(userID), data, CartTTL).Err(); err != nil {
		return err
	}
	database.Redis.Publish(ctx, cartKey(userID), "updated")
	return nil
}

// ClearCart vide le panier (checkout réussi ou vidage explicite).
func ClearCart(userID string) error {
	if err := database.Redis.Del(ctx, cartKey(userID)).Err(); err != nil {
		return err
	}
	database.Redis.Publish(ctx, cartKey(userID), "cleared")
	return nil
}

// PublishOrderStatus notifie le suivi de commande temps réel d'un client.
func PublishOrderStatus(userID, orderID string, status int) {
	payload, _ := json.Marshal(map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	database.Redis.Publish(ctx, "orders:"+userID, payload)
}
