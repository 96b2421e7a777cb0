package session

import (
	"context"
	"fmt"

	"courier-agent/internal/entities"
	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "courier-session"

// RedisStore: каждый ключ сессии - отдельный redis-ключ, SET/DEL атомарны сами по себе.
type RedisStore struct {
	client   redis.Cmdable
	deviceID string
}

func NewRedisStore(client redis.Cmdable, deviceID string) *RedisStore {
	return &RedisStore{
		client:   client,
		deviceID: deviceID,
	}
}

func (s *RedisStore) key(name string) string {
	return fmt.Sprintf("%s:%s:%s", redisKeyPrefix, s.deviceID, name)
}

func (s *RedisStore) Load(ctx context.Context) (entities.SessionSnapshot, error) {
	keys := make([]string, len(recordKeys))
	for i, name := range recordKeys {
		keys[i] = s.key(name)
	}

	// MGET читает оба ключа одной командой
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return entities.SessionSnapshot{}, fmt.Errorf("unexpected session redis load error: %w", err)
	}

	records := make(map[string]string, len(recordKeys))
	for i, value := range values {
		if value == nil {
			continue
		}
		str, ok := value.(string)
		if !ok {
			return entities.SessionSnapshot{}, fmt.Errorf("%w: %s has type %T", ErrMalformedRecord, recordKeys[i], value)
		}
		records[recordKeys[i]] = str
	}

	return toSnapshot(records)
}

func (s *RedisStore) SaveCourier(ctx context.Context, courier entities.Courier) error {
	value, err := encodeCourier(courier)
	if err != nil {
		return err
	}
	return s.put(ctx, keyCourier, value)
}

func (s *RedisStore) ClearCourier(ctx context.Context) error {
	return s.delete(ctx, keyCourier)
}

func (s *RedisStore) SaveOrderID(ctx context.Context, orderID string) error {
	return s.put(ctx, keyOrderID, orderID)
}

func (s *RedisStore) ClearOrderID(ctx context.Context) error {
	return s.delete(ctx, keyOrderID)
}

func (s *RedisStore) put(ctx context.Context, name, value string) error {
	// без TTL: сессия живет до явного unregister
	if err := s.client.Set(ctx, s.key(name), value, 0).Err(); err != nil {
		return fmt.Errorf("unexpected session redis put %s error: %w", name, err)
	}
	return nil
}

func (s *RedisStore) delete(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, s.key(name)).Err(); err != nil {
		return fmt.Errorf("unexpected session redis delete %s error: %w", name, err)
	}
	return nil
}
