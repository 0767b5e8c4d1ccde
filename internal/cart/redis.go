package cart

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/redis/go-redis/v9"

	"tastybites-web/internal/domain"
)

// RedisStorage persists each user's cart as a single JSON blob under
// cart:user:<id>. Slots are written without expiry; only ClearCart or an
// order removes them.
type RedisStorage struct {
	Client *redis.Client
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{Client: client}
}

func (r *RedisStorage) key(userID int) string {
	return "cart:user:" + strconv.Itoa(userID)
}

func (r *RedisStorage) Load(ctx context.Context, userID int) ([]domain.CartLine, error) {
	data, err := r.Client.Get(ctx, r.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(data), &lines); err != nil {
		// Treat an unreadable slot as an empty cart.
		return nil, err
	}
	return lines, nil
}

func (r *RedisStorage) Save(ctx context.Context, userID int, lines []domain.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, r.key(userID), data, 0).Err()
}

func (r *RedisStorage) Delete(ctx context.Context, userID int) error {
	return r.Client.Del(ctx, r.key(userID)).Err()
}

var _ Storage = (*RedisStorage)(nil)
