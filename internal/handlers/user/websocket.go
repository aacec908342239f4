package user

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"caphe_back_end/internal/cache"
	"caphe_back_end/internal/database"
	"caphe_back_end/internal/pricing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket pousse le panier à chaque modification (multi-appareils).
// Le canal Redis "cart:<user>" reçoit "updated" / "cleared" depuis les
// handlers panier.
func CartWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, "cart:"+userID)
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	for msg := range ch {
		if msg.Payload != "updated" && msg.Payload != "cleared" {
			continue
		}

		items, err := cache.GetCart(userID)
		if err != nil {
			continue
		}

		payload := map[string]interface{}{
			"type":     "cart_updated",
			"items":    items,
			"subtotal": pricing.CartSubtotal(items),
			"count":    len(items),
		}
		if err := conn.WriteJSON(payload); err != nil {
			// Client parti, on arrête la boucle
			return
		}
	}
}

// OrderWebSocket pousse les changements de statut des commandes du client
// (la "notification" côté app mobile). Les transitions sont publiées sur
// "orders:<user>" par les handlers admin et checkout.
func OrderWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, "orders:"+userID)
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Suivi de commande activé",
	})

	for msg := range ch {
		var update map[string]interface{}
		if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
			continue
		}
		update["type"] = "order_status"
		if err := conn.WriteJSON(update); err != nil {
			return
		}
	}
}
