// Package slots кеширует списки слотов на дату в Redis.
// Кеш опционален: при отключенном Redis usecase работает напрямую с БД.
package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kappsme/appo/internal/domain"
)

// ErrCacheMiss возвращается, когда слоты на дату в кеше отсутствуют
var ErrCacheMiss = errors.New("slots.cache: cache miss")

// Cache кеш списков слотов поверх go-redis
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient создает и проверяет подключение к Redis
func NewClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("slots.cache: ping redis: %w", err)
	}

	return rdb, nil
}

// New создает кеш слотов с заданным TTL
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func key(date time.Time) string {
	return "slots:" + date.Format(domain.DateFormat)
}

// Get возвращает закешированные слоты на дату
func (c *Cache) Get(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	data, err := c.client.Get(ctx, key(date)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("slots.cache: get %s: %w", key(date), err)
	}

	var slots []domain.Slot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("slots.cache: unmarshal %s: %w", key(date), err)
	}

	return slots, nil
}

// Set сохраняет слоты на дату с TTL кеша
func (c *Cache) Set(ctx context.Context, date time.Time, slots []domain.Slot) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("slots.cache: marshal %s: %w", key(date), err)
	}

	if err := c.client.Set(ctx, key(date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("slots.cache: set %s: %w", key(date), err)
	}

	return nil
}

// Invalidate сбрасывает кеш по датам. Вызывается после создания или
// отмены записей, чтобы не отдавать устаревшую занятость слотов.
func (c *Cache) Invalidate(ctx context.Context, dates ...time.Time) error {
	if len(dates) == 0 {
		return nil
	}

	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = key(d)
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("slots.cache: invalidate: %w", err)
	}

	return nil
}
