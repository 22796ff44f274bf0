package services

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"vikendica/constants"
	"vikendica/models"
	"vikendica/services/logger"
)

const reservationKeyPrefix = "reservations:"

// GetFromRedis decodes the value at key into target. It reports false on a miss.
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) (bool, error) {
	cachedData, err := rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(cachedData, target); err != nil {
		return false, err
	}
	return true, nil
}

// SetToRedis stores value as JSON under key for ttl
func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, dataJSON, ttl).Err()
}

// DeleteFromRedis removes the given keys
func DeleteFromRedis(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}

// DeleteByPattern removes every key matching pattern, scanning in batches
func DeleteByPattern(ctx context.Context, rdb *redis.Client, pattern string) error {
	iter := rdb.Scan(ctx, 0, pattern, 100).Iterator()
	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := rdb.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return DeleteFromRedis(ctx, rdb, batch...)
}

// UserListKey is the cache key of a user's reservation list for one group
func UserListKey(username, group string) string {
	return reservationKeyPrefix + "user:" + username + ":" + group
}

// CottageListKey is the cache key of a cottage's reservation list
func CottageListKey(cottageID string) string {
	return reservationKeyPrefix + "cottage:" + cottageID
}

// userListKeys returns the keys of every group of the user's lists
func userListKeys(username string) []string {
	return []string{
		UserListKey(username, constants.GroupAll),
		UserListKey(username, constants.GroupCurrent),
		UserListKey(username, constants.GroupArchived),
	}
}

// ReservationCache is a read-through cache of reservation lists. Implementations never fail
// the caller; a broken cache degrades to a miss.
type ReservationCache interface {
	GetList(ctx context.Context, key string) ([]models.Reservation, bool)
	SetList(ctx context.Context, key string, reservations []models.Reservation)
	Invalidate(ctx context.Context, keys ...string)
	InvalidateAll(ctx context.Context)
}

// RedisReservationCache keeps reservation lists in Redis as JSON.
type RedisReservationCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisReservationCache(rdb *redis.Client, ttl time.Duration, log logger.Logger) *RedisReservationCache {
	if log == nil {
		log = logger.NewDiscardLogger()
	}
	return &RedisReservationCache{rdb: rdb, ttl: ttl, logger: log}
}

func (c *RedisReservationCache) GetList(ctx context.Context, key string) ([]models.Reservation, bool) {
	var reservations []models.Reservation
	found, err := GetFromRedis(ctx, c.rdb, key, &reservations)
	if err != nil {
		c.logger.Warn("cache read %s failed: %v", key, err)
		return nil, false
	}
	return reservations, found
}

func (c *RedisReservationCache) SetList(ctx context.Context, key string, reservations []models.Reservation) {
	if err := SetToRedis(ctx, c.rdb, key, reservations, c.ttl); err != nil {
		c.logger.Warn("cache write %s failed: %v", key, err)
	}
}

func (c *RedisReservationCache) Invalidate(ctx context.Context, keys ...string) {
	if err := DeleteFromRedis(ctx, c.rdb, keys...); err != nil {
		c.logger.Warn("cache invalidate %v failed: %v", keys, err)
	}
}

func (c *RedisReservationCache) InvalidateAll(ctx context.Context) {
	if err := DeleteByPattern(ctx, c.rdb, reservationKeyPrefix+"*"); err != nil {
		c.logger.Warn("cache flush failed: %v", err)
	}
}

type noopCache struct{}

func (noopCache) GetList(context.Context, string) ([]models.Reservation, bool) { return nil, false }
func (noopCache) SetList(context.Context, string, []models.Reservation) {}
func (noopCache) Invalidate(context.Context, ...string) {}
func (noopCache) InvalidateAll(context.Context) {}
