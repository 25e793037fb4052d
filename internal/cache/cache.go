package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"vendorhub_back_end/internal/models"
	"vendorhub_back_end/internal/store"
)

const UserCacheTTL = 5 * time.Minute

// UserCache décore le UserStore avec un cache Redis sur les lectures par
// id (résolution de session à chaque requête). Les autres opérations
// passent directement au stockage.
type UserCache struct {
	*store.UserStore
	redis *redis.Client
}

func NewUserCache(rdb *redis.Client, users *store.UserStore) *UserCache {
	return &UserCache{UserStore: users, redis: rdb}
}

// FindByID lit depuis Redis, ou depuis ScyllaDB en cas de miss (le
// résultat est alors mis en cache). L'identité cachée ne contient jamais
// le hash du mot de passe.
func (c *UserCache) FindByID(ctx context.Context, userID string) (*models.User, error) {
	key := "user:" + userID

	data, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	user, err := c.UserStore.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cached := *user
	cached.Password = ""
	if jsonData, err := json.Marshal(&cached); err == nil {
		c.redis.Set(ctx, key, jsonData, UserCacheTTL)
	}

	return &cached, nil
}

// InvalidateUser invalide le cache d'un utilisateur (après mise à jour)
func (c *UserCache) InvalidateUser(ctx context.Context, userID string) {
	c.redis.Del(ctx, "user:"+userID)
}
