package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// QuotaDecision es el resultado de consumir una escritura de la cuota de un usuario.
type QuotaDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter reparte una cuota de escrituras por usuario y acción
// (recompute, refresh, quiz) en ventanas fijas.
type RateLimiter interface {
	Allow(ctx context.Context, userID, action string) QuotaDecision
}

func quotaKey(userID, action string) (string, bool) {
	userID = strings.TrimSpace(userID)
	action = strings.ToLower(strings.TrimSpace(action))
	if userID == "" || action == "" {
		return "", false
	}
	return action + ":" + userID, true
}

type quotaWindow struct {
	used    int
	resetAt time.Time
}

// memoryRateLimiter barre ventanas vencidas al superar sweepAt entradas.
type memoryRateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	windows map[string]*quotaWindow
	sweepAt int
}

// NewMemoryRateLimiter aplica la misma ventana fija que la versión Redis, dentro del proceso.
func NewMemoryRateLimiter(window time.Duration, limit int) RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &memoryRateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		windows: make(map[string]*quotaWindow),
		sweepAt: 1024,
	}
}

func (l *memoryRateLimiter) Allow(_ context.Context, userID, action string) QuotaDecision {
	key, ok := quotaKey(userID, action)
	if !ok {
		return QuotaDecision{RetryAfter: l.window}
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	w, found := l.windows[key]
	if !found || !now.Before(w.resetAt) {
		if len(l.windows) >= l.sweepAt {
			l.sweep(now)
		}
		w = &quotaWindow{resetAt: now.Add(l.window)}
		l.windows[key] = w
	}
	if w.used >= l.limit {
		return QuotaDecision{RetryAfter: w.resetAt.Sub(now)}
	}
	w.used++
	return QuotaDecision{Allowed: true, Remaining: l.limit - w.used}
}

func (l *memoryRateLimiter) sweep(now time.Time) {
	for k, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, k)
		}
	}
}

// quotaScript devuelve {usadas, ms hasta el fin de la ventana}.
const quotaScript = `
local used = redis.call("INCR", KEYS[1])
local ttl = redis.call("PTTL", KEYS[1])
if used == 1 or ttl < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {used, ttl}
`

type quotaEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisRateLimiter struct {
	client quotaEvaler
	limit  int
	window time.Duration
	prefix string
	logger *zap.Logger
}

// NewRedisRateLimiter comparte la cuota entre réplicas. Si Redis falla la escritura pasa.
func NewRedisRateLimiter(client quotaEvaler, window time.Duration, limit int, logger *zap.Logger) RateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if limit <= 0 {
		limit = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "personality:quota:",
		logger: logger,
	}
}

func (l *redisRateLimiter) Allow(ctx context.Context, userID, action string) QuotaDecision {
	key, ok := quotaKey(userID, action)
	if !ok {
		return QuotaDecision{RetryAfter: l.window}
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	res, err := l.client.Eval(ctx, quotaScript, []string{l.prefix + key}, l.window.Milliseconds()).Int64Slice()
	if err != nil || len(res) != 2 {
		l.logger.Warn("write quota unavailable, allowing",
			zap.String("user_id", userID),
			zap.String("action", action),
			zap.Error(err),
		)
		return QuotaDecision{Allowed: true}
	}
	used, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond
	if used > l.limit {
		return QuotaDecision{RetryAfter: ttl}
	}
	return QuotaDecision{Allowed: true, Remaining: l.limit - used}
}
