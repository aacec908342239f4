package cache

import (
	"encoding/json"
	"time"

	"caphe_back_end/internal/database"
	"caphe_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const (
	DrinkCacheTTL   = 10 * time.Minute
	ToppingCacheTTL = 10 * time.Minute
)

// GetDrinkFromCache récupère une boisson depuis Redis ou ScyllaDB
func GetDrinkFromCache(drinkID string) (*models.Drink, error) {
	key := "drink:" + drinkID

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var drink models.Drink
		if json.Unmarshal([]byte(data), &drink) == nil {
			return &drink, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	did, err := uuid.Parse(drinkID)
	if err != nil {
		return nil, err
	}

	var drink models.Drink
	err = session.Query(`SELECT drink_id, name, description, price, sale_percent, category_id,
		image_urls, is_available, created_at, updated_at
		FROM drinks WHERE drink_id = ?`, gocql.UUID(did)).Scan(
		&drink.ID, &drink.Name, &drink.Description, &drink.Price, &drink.SalePercent,
		&drink.CategoryID, &drink.ImageURLs, &drink.IsAvailable, &drink.CreatedAt, &drink.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(drink)
	database.Redis.Set(ctx, key, jsonData, DrinkCacheTTL)

	return &drink, nil
}

// InvalidateDrinkCache invalide le cache d'une boisson
func InvalidateDrinkCache(drinkID string) {
	database.Redis.Del(ctx, "drink:"+drinkID)
}

// GetToppingsFromCache récupère les toppings demandés, Redis d'abord
func GetToppingsFromCache(toppingIDs []string) (map[string]models.Topping, error) {
	result := make(map[string]models.Topping)
	missingIDs := []string{}

	for _, id := range toppingIDs {
		data, err := database.Redis.Get(ctx, "topping:"+id).Result()
		if err == nil {
			var t models.Topping
			if json.Unmarshal([]byte(data), &t) == nil {
				result[id] = t
				continue
			}
		}
		missingIDs = append(missingIDs, id)
	}

	if len(missingIDs) == 0 {
		return result, nil
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	for _, id := range missingIDs {
		tid, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		var t models.Topping
		err = session.Query(`SELECT topping_id, name, price, is_available, created_at
			FROM toppings WHERE topping_id = ?`, gocql.UUID(tid)).Scan(
			&t.ID, &t.Name, &t.Price, &t.IsAvailable, &t.CreatedAt)
		if err != nil {
			continue
		}
		result[id] = t
		jsonData, _ := json.Marshal(t)
		database.Redis.Set(ctx, "topping:"+id, jsonData, ToppingCacheTTL)
	}

	return result, nil
}

// InvalidateToppingCache invalide le cache d'un topping
func InvalidateToppingCache(toppingID string) {
	database.Redis.Del(ctx, "topping:"+toppingID)
}
