package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"graph-embedder/internal/domain"
)

// EmbedCache es una cache de lectura para resoluciones de tokens. Los
// registros son inmutables, así que una entrada nunca queda obsoleta; el
// TTL de cache solo limita memoria.
type EmbedCache interface {
	Get(token string) (domain.EmbedToken, bool, error)
	Store(record domain.EmbedToken) error
}

const cacheTTLCap = 15 * time.Minute

type memoryEmbedCache struct {
	mu    sync.Mutex
	items map[string]memoryCacheEntry
}

type memoryCacheEntry struct {
	record  domain.EmbedToken
	expires time.Time
}

func NewMemoryEmbedCache() EmbedCache {
	return &memoryEmbedCache{
		items: make(map[string]memoryCacheEntry),
	}
}

func (c *memoryEmbedCache) Get(token string) (domain.EmbedToken, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[token]
	if !ok {
		return domain.EmbedToken{}, false, nil
	}
	if time.Now().UTC().After(entry.expires) {
		delete(c.items, token)
		return domain.EmbedToken{}, false, nil
	}
	return entry.record, true, nil
}

func (c *memoryEmbedCache) Store(record domain.EmbedToken) error {
	if strings.TrimSpace(record.Token) == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[record.Token] = memoryCacheEntry{
		record:  record,
		expires: time.Now().UTC().Add(cacheTTL(record)),
	}
	return nil
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type redisEmbedCache struct {
	client redisKV
	prefix string
}

func NewRedisEmbedCache(client *redis.Client) EmbedCache {
	if client == nil {
		return nil
	}
	return &redisEmbedCache{
		client: client,
		prefix: "embed:token:",
	}
}

func (c *redisEmbedCache) Get(token string) (domain.EmbedToken, bool, error) {
	if strings.TrimSpace(token) == "" {
		return domain.EmbedToken{}, false, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	payload, err := c.client.Get(ctx, c.prefix+token).Result()
	if err == redis.Nil {
		return domain.EmbedToken{}, false, nil
	}
	if err != nil {
		return domain.EmbedToken{}, false, err
	}
	var record domain.EmbedToken
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return domain.EmbedToken{}, false, err
	}
	return record, true, nil
}

func (c *redisEmbedCache) Store(record domain.EmbedToken) error {
	if strings.TrimSpace(record.Token) == "" {
		return nil
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+record.Token, payload, cacheTTL(record)).Err()
}

// cacheTTL acota la vida de la entrada: nunca más allá de la expiración del
// token (con margen mínimo) ni más que el tope global.
func cacheTTL(record domain.EmbedToken) time.Duration {
	ttl := time.Until(record.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}
	if ttl > cacheTTLCap {
		ttl = cacheTTLCap
	}
	return ttl
}
