package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"giftbasket_server/config"
	"giftbasket_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	redisCtx    = context.Background()
)

// CacheService provides Redis caching and the engine's durable key-value
// state (recently-viewed lists, wishlist mirrors, product record cache)
// with connection pooling and retry logic.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(),
	}
}

// getRedisClient returns a singleton Redis client with proper connection pooling
func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			// Connection pool settings
			PoolSize:        cfg.Cache.PoolSize,
			MinIdleConns:    cfg.Cache.MinIdleConns,
			MaxIdleConns:    cfg.Cache.MaxIdleConns,
			PoolTimeout:     cfg.Cache.PoolTimeout,
			ConnMaxIdleTime: cfg.Cache.IdleTimeout,

			// Timeouts
			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,

			// Retry settings
			MaxRetries:      cfg.Cache.MaxRetries,
			MinRetryBackoff: cfg.Cache.MinRetryBackoff,
			MaxRetryBackoff: cfg.Cache.MaxRetryBackoff,
		})
	})
	return redisClient
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// Health pings Redis.
func (cs *CacheService) Health() error {
	ctx, cancel := context.WithTimeout(redisCtx, 3*time.Second)
	defer cancel()
	return cs.client.Ping(ctx).Err()
}

// withRetry executes a Redis operation with exponential backoff retry logic
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't retry on the last attempt
		if attempt == maxRetries {
			break
		}

		// Only retry on network/connection errors, not on logical errors like key not found
		if !isRetryableCacheError(err) {
			return err
		}

		maxBackoff := 2000 // max 2000ms = 2s
		base := 100        // 100ms base

		backoff := base * (1 << attempt) // exponential
		backoff = min(backoff, maxBackoff)

		// add jitter ±50%
		jitterBytes := make([]byte, 4)
		_, err = rand.Read(jitterBytes)
		if err != nil {
			// fallback to no jitter if random fails
			time.Sleep(time.Duration(backoff) * time.Millisecond)
			continue
		}
		jitter := int(uint32(jitterBytes[0])<<24 | uint32(jitterBytes[1])<<16 | uint32(jitterBytes[2])<<8 | uint32(jitterBytes[3]))

		jitter = jitter % (backoff/2 + 1)
		backoffWithJitter := backoff/2 + jitter

		time.Sleep(time.Duration(backoffWithJitter) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

// isRetryableCacheError determines if an error is worth retrying
func isRetryableCacheError(err error) bool {
	if err == nil {
		return false
	}

	// Don't retry on nil results (key not found)
	if err == redis.Nil {
		return false
	}

	// Retry on network/connection errors
	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

// Set sets a key with TTL and automatic retry logic
func (cs *CacheService) Set(key string, value any, ttl time.Duration) error {
	return cs.withRetry(func() error {
		return cs.client.Set(redisCtx, key, value, ttl).Err()
	}, 3)
}

// Get retrieves a key with automatic retry logic. A missing key returns an
// empty string, not an error.
func (cs *CacheService) Get(key string) (string, error) {
	var result string

	err := cs.withRetry(func() error {
		val, err := cs.client.Get(redisCtx, key).Result()
		if err == redis.Nil {
			result = ""
			return nil // Don't retry on key not found
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)

	if err != nil {
		return "", err
	}

	return result, nil
}

// Delete removes a key with automatic retry logic
func (cs *CacheService) Delete(key string) error {
	return cs.withRetry(func() error {
		return cs.client.Del(redisCtx, key).Err()
	}, 3)
}

// Exists checks if a key exists with automatic retry logic
func (cs *CacheService) Exists(key string) (bool, error) {
	var result bool

	err := cs.withRetry(func() error {
		count, err := cs.client.Exists(redisCtx, key).Result()
		if err != nil {
			return err
		}
		result = count > 0
		return nil
	}, 3)

	return result, err
}

// Product record cache

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

// SetProduct caches a canonical product record with the configured TTL.
func (cs *CacheService) SetProduct(p *structs.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return cs.Set(productKey(p.ID), data, cs.config.Cache.ProductTTL)
}

// GetProduct returns a cached product record, or nil on a miss.
func (cs *CacheService) GetProduct(id int64) (*structs.Product, error) {
	val, err := cs.Get(productKey(id))
	if err != nil || val == "" {
		return nil, err
	}

	var p structs.Product
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		// A corrupt cache entry is treated as a miss.
		cs.logger.Warn("Dropping corrupt product cache entry", gecho.Field("id", id), gecho.Field("error", err))
		_ = cs.Delete(productKey(id))
		return nil, nil
	}
	return &p, nil
}

// Recently-viewed storage: one bounded JSON array per owner, replaced
// whole on every write (no partial-write visibility).

func recentKey(owner string) string {
	return fmt.Sprintf("recent:%s", owner)
}

// GetRecentlyViewed loads the owner's recently-viewed product ids. A
// malformed stored value degrades to an empty list.
func (cs *CacheService) GetRecentlyViewed(owner string) ([]int64, error) {
	val, err := cs.Get(recentKey(owner))
	if err != nil {
		return nil, err
	}
	if val == "" {
		return nil, nil
	}

	var ids []int64
	if err := json.Unmarshal([]byte(val), &ids); err != nil {
		cs.logger.Warn("Dropping corrupt recently-viewed entry", gecho.Field("owner", owner), gecho.Field("error", err))
		return nil, nil
	}
	return ids, nil
}

// SetRecentlyViewed replaces the owner's recently-viewed list.
func (cs *CacheService) SetRecentlyViewed(owner string, ids []int64) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return cs.Set(recentKey(owner), data, 0)
}

// Wishlist mirror: a per-user set of product ids kept in sync with the
// upstream wishlist.

func wishlistKey(owner string) string {
	return fmt.Sprintf("wishlist:%s", owner)
}

// ReplaceWishlist atomically swaps the mirrored membership set.
func (cs *CacheService) ReplaceWishlist(owner string, ids []int64) error {
	return cs.withRetry(func() error {
		members := make([]any, len(ids))
		for i, id := range ids {
			members[i] = id
		}

		pipe := cs.client.TxPipeline()
		pipe.Del(redisCtx, wishlistKey(owner))
		if len(members) > 0 {
			pipe.SAdd(redisCtx, wishlistKey(owner), members...)
		}
		_, err := pipe.Exec(redisCtx)
		return err
	}, 3)
}

// AddWishlisted adds one product id to the mirror.
func (cs *CacheService) AddWishlisted(owner string, productID int64) error {
	return cs.withRetry(func() error {
		return cs.client.SAdd(redisCtx, wishlistKey(owner), productID).Err()
	}, 3)
}

// RemoveWishlisted removes one product id from the mirror.
func (cs *CacheService) RemoveWishlisted(owner string, productID int64) error {
	return cs.withRetry(func() error {
		return cs.client.SRem(redisCtx, wishlistKey(owner), productID).Err()
	}, 3)
}

// IsWishlisted is an O(1) membership check against the mirror; it never
// reaches the upstream API.
func (cs *CacheService) IsWishlisted(owner string, productID int64) (bool, error) {
	var result bool
	err := cs.withRetry(func() error {
		member, err := cs.client.SIsMember(redisCtx, wishlistKey(owner), productID).Result()
		if err != nil {
			return err
		}
		result = member
		return nil
	}, 3)
	return result, err
}

// WishlistMembers returns the mirrored membership set.
func (cs *CacheService) WishlistMembers(owner string) ([]int64, error) {
	var ids []int64
	err := cs.withRetry(func() error {
		vals, err := cs.client.SMembers(redisCtx, wishlistKey(owner)).Result()
		if err != nil {
			return err
		}
		ids = ids[:0]
		for _, v := range vals {
			var id int64
			if _, err := fmt.Sscanf(v, "%d", &id); err == nil {
				ids = append(ids, id)
			}
		}
		return nil
	}, 3)
	return ids, err
}

// IncrementRateLimit increments the sliding-window counter for an ip +
// endpoint pair and returns the current count.
func (cs *CacheService) IncrementRateLimit(ip, endpoint string, window time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	var count int
	err := cs.withRetry(func() error {
		pipe := cs.client.TxPipeline()
		incr := pipe.Incr(redisCtx, key)
		pipe.Expire(redisCtx, key, window)
		if _, err := pipe.Exec(redisCtx); err != nil {
			return err
		}
		count = int(incr.Val())
		return nil
	}, 1)

	return count, err
}

// ClearAll flushes the current Redis database. Debug use only.
func (cs *CacheService) ClearAll() error {
	return cs.withRetry(func() error {
		return cs.client.FlushDB(redisCtx).Err()
	}, 1)
}
