package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CompatibilityCache guarda puntajes pareados ya calculados. Nunca es fuente de verdad:
// un fallo equivale a un miss.
type CompatibilityCache interface {
	// Get devuelve también el ticket con las generaciones leídas; Set escribe bajo ese ticket,
	// así un puntaje calculado antes de un Invalidate queda inalcanzable.
	Get(ctx context.Context, viewerID, targetID string) (float64, CacheTicket, bool)
	Set(ctx context.Context, ticket CacheTicket, score float64)
	// Invalidate descarta todos los pares donde participa userID.
	Invalidate(ctx context.Context, userID string)
}

// CacheTicket fija un par viewer -> target en las generaciones vigentes al leerlo.
type CacheTicket struct {
	viewerID  string
	targetID  string
	viewerGen int
	targetGen int
	key       string
}

type redisCompatibilityCache struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

// NewRedisCompatibilityCache versiona las claves con una generación por usuario;
// invalidar es un INCR y las claves viejas expiran por TTL.
func NewRedisCompatibilityCache(client redis.Cmdable, ttl time.Duration) CompatibilityCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisCompatibilityCache{
		client: client,
		ttl:    ttl,
		prefix: "compat:",
	}
}

func (c *redisCompatibilityCache) genKey(userID string) string {
	return c.prefix + "gen:" + strings.TrimSpace(userID)
}

func (c *redisCompatibilityCache) ticket(ctx context.Context, viewerID, targetID string) (CacheTicket, bool) {
	gens, err := c.client.MGet(ctx, c.genKey(viewerID), c.genKey(targetID)).Result()
	if err != nil || len(gens) != 2 {
		return CacheTicket{}, false
	}
	parts := make([]string, 2)
	for i, g := range gens {
		s, _ := g.(string)
		if s == "" {
			s = "0"
		}
		parts[i] = s
	}
	return CacheTicket{
		viewerID: viewerID,
		targetID: targetID,
		key:      c.prefix + "score:" + viewerID + ":" + parts[0] + ":" + targetID + ":" + parts[1],
	}, true
}

func (c *redisCompatibilityCache) Get(ctx context.Context, viewerID, targetID string) (float64, CacheTicket, bool) {
	if c == nil || c.client == nil {
		return 0, CacheTicket{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	t, ok := c.ticket(ctx, viewerID, targetID)
	if !ok {
		return 0, CacheTicket{}, false
	}
	raw, err := c.client.Get(ctx, t.key).Result()
	if err != nil {
		return 0, t, false
	}
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, t, false
	}
	return score, t, true
}

func (c *redisCompatibilityCache) Set(ctx context.Context, t CacheTicket, score float64) {
	if c == nil || c.client == nil || t.key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	_ = c.client.Set(ctx, t.key, strconv.FormatFloat(score, 'g', -1, 64), c.ttl).Err()
}

func (c *redisCompatibilityCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	_ = c.client.Incr(ctx, c.genKey(userID)).Err()
}

type memoryCompatEntry struct {
	score     float64
	viewerGen int
	targetGen int
	expires   time.Time
}

type memoryCompatibilityCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	gens  map[string]int
	items map[[2]string]memoryCompatEntry
}

func NewMemoryCompatibilityCache(ttl time.Duration) CompatibilityCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &memoryCompatibilityCache{
		ttl:   ttl,
		gens:  make(map[string]int),
		items: make(map[[2]string]memoryCompatEntry),
	}
}

func (c *memoryCompatibilityCache) Get(_ context.Context, viewerID, targetID string) (float64, CacheTicket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := CacheTicket{
		viewerID:  viewerID,
		targetID:  targetID,
		viewerGen: c.gens[viewerID],
		targetGen: c.gens[targetID],
	}
	key := [2]string{viewerID, targetID}
	e, ok := c.items[key]
	if !ok {
		return 0, t, false
	}
	if time.Now().After(e.expires) || e.viewerGen != t.viewerGen || e.targetGen != t.targetGen {
		delete(c.items, key)
		return 0, t, false
	}
	return e.score, t, true
}

// Set descarta el puntaje si alguna generación cambió desde el Get que emitió el ticket.
func (c *memoryCompatibilityCache) Set(_ context.Context, t CacheTicket, score float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.viewerID == "" || c.gens[t.viewerID] != t.viewerGen || c.gens[t.targetID] != t.targetGen {
		return
	}
	c.items[[2]string{t.viewerID, t.targetID}] = memoryCompatEntry{
		score:     score,
		viewerGen: t.viewerGen,
		targetGen: t.targetGen,
		expires:   time.Now().Add(c.ttl),
	}
}

func (c *memoryCompatibilityCache) Invalidate(_ context.Context, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[userID]++
}
