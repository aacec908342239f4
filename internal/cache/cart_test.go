package cache

import (
	"testing"

	"caphe_back_end/internal/database"

	"github.com/redis/go-redis/v9"
)

// Une panne Redis ne doit pas passer pour un panier vide : le handler
// d'ajout relirait un panier "vide" puis sauverait par-dessus le vrai.
func TestGetCartPropagatesRedisFailure(t *testing.T) {
	old := database.Redis
	// Port 1 : connexion refusée immédiatement, pas de serveur requis
	database.Redis = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer func() { database.Redis = old }()

	items, err := GetCart("user-1")
	if err == nil {
		t.Fatalf("GetCart devrait remonter la panne Redis, obtenu un panier de %d lignes", len(items))
	}
	if items != nil {
		t.Errorf("GetCart ne doit pas retourner de panier en cas d'erreur, obtenu %v", items)
	}
}
